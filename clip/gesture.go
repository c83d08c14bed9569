// seehuhn.de/go/inkcell - clipped inking for raster coloring pages
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package clip

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inkcell"
	"seehuhn.de/go/inkcell/ink"
)

// MinManufacturedLength is the default for [Gesture.MinLength].
const MinManufacturedLength = 2.0

// Cells gives the cell id for a position.  Id 0 denotes outlines and
// everything outside the image.  [*region.Map] implements this interface.
type Cells interface {
	CellIDAt(p vec.Vec2) uint32
}

// Update describes what a batch of input does to the ink on the page.
type Update struct {
	// Wet are points to append to the live stroke, which is drawn while
	// the pointer moves.
	Wet []ink.Point

	// Completed indicates that the live stroke ends after Wet has been
	// appended.  Points in later updates start a new live stroke.
	Completed bool

	// Manufactured are finished strokes which did not become part of a
	// live stroke.  They must be built outside the input path.
	Manufactured [][]ink.Point
}

// Gesture clips the input of one pointer to the cell in which the
// pointer went down.
//
// Input arrives in batches.  A stroke which starts at the end of one
// batch may continue in the next one; such a stroke is retained until the
// next batch shows whether it can be joined to the live stroke.
//
// A Gesture is not safe for concurrent use.
type Gesture struct {
	// MinLength is the minimal distance between the end points of a
	// manufactured stroke.  Shorter strokes are dropped.
	MinLength float64

	cells    Cells
	active   uint32
	down     bool // input is accepted
	fresh    bool // the next batch starts a new gesture
	last     ink.Point
	retained []ink.Point

	liveOpen bool     // the live stroke continues into the next update
	liveEnd  vec.Vec2 // last position of the live stroke
}

// NewGesture returns a Gesture which clips input to the cells of the
// given map.
func NewGesture(cells Cells) *Gesture {
	return &Gesture{
		MinLength: MinManufacturedLength,
		cells:     cells,
	}
}

// ActiveCell returns the id of the cell which input is clipped to, or 0
// if no gesture has started yet.
func (g *Gesture) ActiveCell() uint32 {
	return g.active
}

// Within reports whether p lies in the active cell.
func (g *Gesture) Within(p vec.Vec2) bool {
	return g.active != 0 && g.cells.CellIDAt(p) == g.active
}

func (g *Gesture) onBoundary(p vec.Vec2) bool {
	return g.cells.CellIDAt(p) == 0
}

// PointerDown starts a new gesture.  The active cell is taken from the
// first point of the next batch.
//
// Points retained from a previous gesture which was not ended by
// [Gesture.PointerUp] are returned as manufactured strokes.
func (g *Gesture) PointerDown() Update {
	var u Update
	g.flush(&u)
	g.down = true
	g.fresh = true
	return u
}

// PointerUp ends the current gesture.  Retained points are returned as a
// manufactured stroke.
func (g *Gesture) PointerUp() Update {
	u := Update{Completed: true}
	g.flush(&u)
	g.down = false
	g.liveOpen = false
	return u
}

// Reset discards all state, including the active cell.
func (g *Gesture) Reset() {
	*g = Gesture{MinLength: g.MinLength, cells: g.cells}
}

// Process clips a batch of input points.
//
// If the first batch of a gesture starts on an outline, the gesture is
// ignored until the next call to [Gesture.PointerDown].
func (g *Gesture) Process(batch []ink.Point) Update {
	var u Update
	if !g.down || len(batch) == 0 {
		return u
	}

	if g.fresh {
		g.fresh = false
		first := batch[0]
		id := g.cells.CellIDAt(first.Pos)
		if id == 0 {
			inkcell.Logger().Debug("gesture starts on an outline", "x", first.Pos.X, "y", first.Pos.Y)
			g.down = false
			u.Completed = true
			return u
		}
		g.active = id
		g.last = first
		g.liveOpen = false
	}

	strokes := Split(batch, g.last, g.Within, g.onBoundary)
	joinAt := g.last.Pos
	g.last = batch[len(batch)-1]

	// A stroke retained from the previous batch becomes the start of the
	// new live stroke if it ends where this batch begins.  Retained points
	// all come from Split and the active cell only changes in PointerDown,
	// which flushes them, so they lie inside the active cell.
	if r := g.retained; len(r) > 0 {
		g.retained = nil
		if r[len(r)-1].Pos == joinAt {
			u.Wet = r
		} else {
			g.manufacture(&u, r)
		}
	}

	if len(strokes) == 0 && len(u.Wet) == 0 {
		u.Completed = true
	}

	for _, s := range strokes {
		if s[0].Pos == joinAt && !u.Completed {
			if len(u.Wet) == 0 && g.liveOpen && s[0].Pos == g.liveEnd {
				// already part of the live stroke
				s = s[1:]
			}
			u.Wet = joinPoints(u.Wet, s)
		} else {
			u.Completed = true
			if r := g.retained; len(r) > 0 {
				if r[len(r)-1].Pos == s[0].Pos {
					s = joinPoints(r, s)
				} else {
					g.manufacture(&u, r)
				}
			}
			g.retained = s
		}
		if len(s) > 0 {
			joinAt = s[len(s)-1].Pos
		}
	}

	if len(u.Wet) > 0 {
		g.liveEnd = u.Wet[len(u.Wet)-1].Pos
	}
	g.liveOpen = !u.Completed
	return u
}

// flush turns the retained points into a manufactured stroke.
func (g *Gesture) flush(u *Update) {
	if len(g.retained) > 0 {
		g.manufacture(u, g.retained)
	}
	g.retained = nil
}

// manufacture adds points to the manufactured strokes of u, unless the
// stroke is too short.
func (g *Gesture) manufacture(u *Update, points []ink.Point) {
	a, b := points[0].Pos, points[len(points)-1].Pos
	if d := b.Sub(a).Length(); d < g.MinLength {
		inkcell.Logger().Debug("dropping short stroke", "points", len(points), "length", d)
		return
	}
	u.Manufactured = append(u.Manufactured, points)
}

// joinPoints appends b to a.  If b starts where a ends, the repeated
// point is skipped.
func joinPoints(a, b []ink.Point) []ink.Point {
	if len(a) > 0 && len(b) > 0 && a[len(a)-1].Pos == b[0].Pos {
		b = b[1:]
	}
	return append(a, b...)
}
