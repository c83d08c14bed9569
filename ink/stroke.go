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

// Package ink holds freehand strokes.
//
// Strokes are identified by their address: two [*Stroke] values refer to
// the same stroke if and only if they are equal.
package ink

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Point is a sample of pointer input.
type Point struct {
	Pos      vec.Vec2
	Pressure float64 // in the range [0, 1]
}

// Tool selects the appearance of a stroke.
type Tool int

// These are the supported drawing tools.
const (
	Pen Tool = iota
	Pencil
)

func (t Tool) String() string {
	switch t {
	case Pen:
		return "pen"
	case Pencil:
		return "pencil"
	default:
		return "unknown"
	}
}

// DefaultWidth is the stroke width used by [DefaultAttributes].
const DefaultWidth = 3

// Attributes describe how a stroke is drawn.
type Attributes struct {
	Color color.NRGBA
	Width float64 // line width (>0)
	Tool  Tool
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle
}

// DefaultAttributes returns the attributes for a new stroke drawn with the
// given tool and colour.
func DefaultAttributes(tool Tool, c color.NRGBA) Attributes {
	return Attributes{
		Color: c,
		Width: DefaultWidth,
		Tool:  tool,
		Cap:   graphics.LineCapRound,
		Join:  graphics.LineJoinRound,
	}
}

// Stroke is a finished freehand stroke.
type Stroke struct {
	Points   []Point
	Attr     Attributes
	Selected bool
}

// NewStroke creates a stroke from a copy of points.
func NewStroke(points []Point, attr Attributes) *Stroke {
	return &Stroke{
		Points: append([]Point(nil), points...),
		Attr:   attr,
	}
}

// Clone returns a new, unselected stroke with the same points and
// attributes as s.
func (s *Stroke) Clone() *Stroke {
	return NewStroke(s.Points, s.Attr)
}

// Start returns the position of the first point of the stroke.
func (s *Stroke) Start() (vec.Vec2, bool) {
	if len(s.Points) == 0 {
		return vec.Vec2{}, false
	}
	return s.Points[0].Pos, true
}

// Bounds returns the area covered by the stroke, including the line width.
func (s *Stroke) Bounds() rect.Rect {
	if len(s.Points) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range s.Points {
		r.LLx = min(r.LLx, p.Pos.X)
		r.LLy = min(r.LLy, p.Pos.Y)
		r.URx = max(r.URx, p.Pos.X)
		r.URy = max(r.URy, p.Pos.Y)
	}
	d := s.Attr.Width / 2
	r.LLx -= d
	r.LLy -= d
	r.URx += d
	r.URy += d
	return r
}

// Path returns the centre line of the stroke.
func (s *Stroke) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, p := range s.Points {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{p.Pos}) {
				return
			}
		}
	}
}

// Hits reports whether the stroke passes within half its line width of
// the segment from a to b.
func (s *Stroke) Hits(a, b vec.Vec2) bool {
	tol := s.Attr.Width / 2
	switch len(s.Points) {
	case 0:
		return false
	case 1:
		return distToSegment(s.Points[0].Pos, a, b) <= tol
	}
	for i := 1; i < len(s.Points); i++ {
		if segmentDist(s.Points[i-1].Pos, s.Points[i].Pos, a, b) <= tol {
			return true
		}
	}
	return false
}

// segmentDist returns the distance between the segments p0-p1 and q0-q1.
func segmentDist(p0, p1, q0, q1 vec.Vec2) float64 {
	if segmentsCross(p0, p1, q0, q1) {
		return 0
	}
	return min(
		distToSegment(p0, q0, q1),
		distToSegment(p1, q0, q1),
		distToSegment(q0, p0, p1),
		distToSegment(q1, p0, p1),
	)
}

// distToSegment returns the distance of p from the segment a-b.
func distToSegment(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := max(0, min(1, p.Sub(a).Dot(d)/l2))
	return p.Sub(a.Add(d.Mul(t))).Length()
}

func segmentsCross(p0, p1, q0, q1 vec.Vec2) bool {
	d1 := cross(q1.Sub(q0), p0.Sub(q0))
	d2 := cross(q1.Sub(q0), p1.Sub(q0))
	d3 := cross(p1.Sub(p0), q0.Sub(p0))
	d4 := cross(p1.Sub(p0), q1.Sub(p0))
	return (d1 > 0) != (d2 > 0) && (d3 > 0) != (d4 > 0) &&
		d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
