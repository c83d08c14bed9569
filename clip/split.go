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

	"seehuhn.de/go/inkcell/ink"
)

// Split converts a batch of input points into strokes which lie inside
// the active cell.
//
// The line from prev to the first point of the batch is included, so that
// consecutive batches of one gesture connect.  within reports whether a
// position lies in the active cell, onBoundary whether it lies on an
// outline.
//
// Points where a stroke meets an outline are synthesised; their pressure
// is interpolated between the surrounding input points.  No stroke
// contains the same position twice in a row.
func Split(batch []ink.Point, prev ink.Point, within, onBoundary func(vec.Vec2) bool) [][]ink.Point {
	var strokes [][]ink.Point
	var cur []ink.Point
	flush := func() {
		if len(cur) > 0 {
			strokes = append(strokes, cur)
			cur = nil
		}
	}

	for _, next := range batch {
		start := prev
		prev = next

		// Within one input segment, a position is never added twice.
		var lastAdded vec.Vec2
		added := false
		add := func(p ink.Point) {
			if added && p.Pos == lastAdded {
				return
			}
			cur = append(cur, p)
			lastAdded = p.Pos
			added = true
		}

		marks := transitions(Line(start.Pos, next.Pos), onBoundary)
		segs := segments(start.Pos, next.Pos, marks, within)
		for _, s := range segs {
			from := interpolate(start, next, s.from)
			to := interpolate(start, next, s.to)
			switch {
			case s.fromBoundary && s.toBoundary:
				// a self-contained piece crossing the cell
				flush()
				add(from)
				add(to)
				flush()
			case s.fromBoundary:
				// re-entering the cell
				flush()
				add(from)
				add(to)
			case s.toBoundary:
				// leaving the cell
				if len(cur) == 0 || cur[len(cur)-1].Pos != from.Pos {
					add(from)
				}
				add(to)
				flush()
			}
		}
		if len(segs) > 0 {
			continue
		}

		inStart, inNext := within(start.Pos), within(next.Pos)
		if inStart && inNext {
			if len(cur) == 0 || cur[len(cur)-1] != start {
				add(start)
			}
			add(next)
		} else {
			flush()
			if inStart {
				add(start)
			}
			if inNext {
				add(next)
			}
		}
	}
	flush()

	return strokes
}

// interpolate returns a point at position p on the segment from a to b.
// The pressure is interpolated according to the distance of p from a.
func interpolate(a, b ink.Point, p vec.Vec2) ink.Point {
	total := b.Pos.Sub(a.Pos).Length()
	if total == 0 {
		return ink.Point{Pos: p, Pressure: a.Pressure}
	}
	t := min(p.Sub(a.Pos).Length()/total, 1)
	return ink.Point{Pos: p, Pressure: a.Pressure + t*(b.Pressure-a.Pressure)}
}
