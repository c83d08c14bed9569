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

// Package clip splits freehand pointer input into strokes which stay
// inside a single cell.
//
// The active cell is chosen when a gesture starts.  Whenever the pointer
// leaves the active cell, the current stroke ends at the last position
// inside the cell; when the pointer comes back, a new stroke starts at
// the first position inside the cell.  Positions along the way are found
// by sampling the straight line between consecutive input points with a
// spacing of at most one pixel.
package clip

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Line returns sample positions along the segment from a to b.
//
// The first sample is a and the last sample is b.  Samples are spaced at
// most one pixel apart along the major axis.  Whenever two consecutive
// samples fall into pixels which differ both in row and in column, an
// extra sample is inserted in the corner pixel which the segment passes
// through, so that the pixels of consecutive samples are always
// 4-adjacent.  If the segment runs exactly through a pixel corner, the
// extra sample uses the old x and the new y.  If a and b coincide, the
// result is just b.
func Line(a, b vec.Vec2) []vec.Vec2 {
	d := b.Sub(a)
	l := max(math.Abs(d.X), math.Abs(d.Y))
	if l == 0 {
		return []vec.Vec2{b}
	} else if math.IsNaN(l) || math.IsInf(l, 0) {
		return []vec.Vec2{a, b}
	}

	n := int(math.Ceil(l))
	res := make([]vec.Vec2, 0, 2*n+1)
	res = append(res, a)
	prev := a
	for i := 1; i <= n; i++ {
		p := b
		if i < n {
			p = a.Add(d.Mul(float64(i) / float64(n)))
		}
		if math.Floor(p.X) != math.Floor(prev.X) && math.Floor(p.Y) != math.Floor(prev.Y) {
			if crossing(prev.X, p.X) < crossing(prev.Y, p.Y) {
				res = append(res, vec.Vec2{X: p.X, Y: prev.Y})
			} else {
				res = append(res, vec.Vec2{X: prev.X, Y: p.Y})
			}
		}
		res = append(res, p)
		prev = p
	}
	return res
}

// crossing returns the fraction of the way from u to v at which the
// coordinate first crosses an integer grid line.  The caller must ensure
// that u and v lie in different pixels.
func crossing(u, v float64) float64 {
	grid := math.Floor(u)
	if v > u {
		grid++
	}
	return (grid - u) / (v - u)
}

// A transition marks a place where a sampled line crosses an outline.
type transition struct {
	at vec.Vec2

	// inside is true if the line runs into a cell after this mark, and
	// false if it runs into an outline.
	inside bool
}

// transitions finds the places where the samples enter and leave outlines.
// When the samples run into an outline, the mark is placed at the last
// sample before the outline.  When they run out of an outline, the mark is
// placed at the first sample after it.
func transitions(samples []vec.Vec2, onBoundary func(vec.Vec2) bool) []transition {
	var res []transition
	was := len(samples) > 0 && onBoundary(samples[0])
	for i := 1; i < len(samples); i++ {
		is := onBoundary(samples[i])
		switch {
		case is && !was:
			res = append(res, transition{at: samples[i-1], inside: false})
		case was && !is:
			res = append(res, transition{at: samples[i], inside: true})
		}
		was = is
	}
	return res
}

// A segment is a part of an input segment which lies in the active cell.
type segment struct {
	from, to vec.Vec2

	fromBoundary bool // from is next to an outline
	toBoundary   bool // to is next to an outline
}

// segments returns the parts of the segment from start to end which lie
// inside the active cell.  The result is nil if the segment does not cross
// any outline.
func segments(start, end vec.Vec2, marks []transition, within func(vec.Vec2) bool) []segment {
	if len(marks) == 0 {
		return nil
	}

	// The end points are treated like marks: the start point opens a
	// segment if it is inside the cell, the end point closes one if it is
	// inside the cell.
	all := make([]transition, 0, len(marks)+2)
	all = append(all, transition{at: start, inside: within(start)})
	all = append(all, marks...)
	all = append(all, transition{at: end, inside: !within(end)})

	var res []segment
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if !prev.inside || cur.inside || !within(cur.at) {
			continue
		}
		res = append(res, segment{
			from:         prev.at,
			to:           cur.at,
			fromBoundary: i > 1,
			toBoundary:   i < len(all)-1,
		})
	}
	return res
}
