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

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Round pages have anti-aliased edges.  Markers keep a distance of at
// least two pixels from every edge.
var roundPages = []Page{
	{
		Name:    "ring",
		Ink:     ring(32, 32, 28.8, 19.2),
		Width:   64,
		Height:  64,
		Cells:   2,
		Markers: []Marker{
			{pt(2, 2), 1}, {pt(61, 61), 1},
			{pt(32, 32), 2}, {pt(40, 30), 2},
			{pt(32, 8), 0}, {pt(56, 32), 0},
		},
	},
	{
		Name:    "triangle",
		Ink:     join(
			triangle(8, 56, 32, 8, 56, 56),
			triangle(48, 50, 32, 20, 16, 50),
		),
		Width:   64,
		Height:  64,
		Cells:   0, // sharp corners may leave single-pixel cells
		Markers: []Marker{
			{pt(2, 2), 1}, {pt(60, 30), 1},
			{pt(32, 40), 2},
			{pt(32, 53), 0},
		},
	},
	{
		Name:    "rings",
		Ink:     join(
			ring(20, 20, 14, 9),
			ring(60, 20, 14, 9),
			ring(40, 54, 14, 9),
		),
		Width:   80,
		Height:  72,
		Cells:   4,
		Markers: []Marker{
			{pt(2, 2), 1}, {pt(40, 36), 1},
			{pt(20, 20), 2}, {pt(60, 20), 3}, {pt(40, 54), 4},
		},
	},
}

// Ring returns a page of size*size pixels, showing a single "O".  The
// page has two cells: the paper around the "O" and the hole in its
// middle.
func Ring(size int) Page {
	c := float64(size) / 2
	return Page{
		Name:    "ring",
		Ink:     ring(c, c, float64(size)*0.40, float64(size)*0.25),
		Width:   size,
		Height:  size,
		Cells:   2,
		Markers: []Marker{
			{pt(2, 2), 1},
			{pt(c, c), 2},
		},
	}
}

// ring builds an "O" shape.  The outer circle is counter-clockwise and
// the inner circle is clockwise.
func ring(cx, cy, outerR, innerR float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !circle(yield, cx, cy, outerR, false) {
			return
		}
		circle(yield, cx, cy, innerR, true)
	}
}

// circle adds a circle made of four cubic Bézier curves.
func circle(yield func(path.Command, []vec.Vec2) bool, cx, cy, r float64, clockwise bool) bool {
	// Magic number for circular arc approximation with cubic Bézier
	const k = 0.5522847498
	kr := k * r

	// s flips the direction of travel
	s := 1.0
	if clockwise {
		s = -1
	}

	if !moveTo(yield, cx, cy-r) {
		return false
	}
	segments := [4][3]vec.Vec2{
		{pt(cx+s*kr, cy-r), pt(cx+s*r, cy-kr), pt(cx+s*r, cy)},
		{pt(cx+s*r, cy+kr), pt(cx+s*kr, cy+r), pt(cx, cy+r)},
		{pt(cx-s*kr, cy+r), pt(cx-s*r, cy+kr), pt(cx-s*r, cy)},
		{pt(cx-s*r, cy-kr), pt(cx-s*kr, cy-r), pt(cx, cy-r)},
	}
	for i := range segments {
		if !yield(path.CmdCubeTo, segments[i][:]) {
			return false
		}
	}
	return closePath(yield)
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, x1, y1) {
			return
		}
		if !lineTo(yield, x2, y2) {
			return
		}
		if !lineTo(yield, x3, y3) {
			return
		}
		closePath(yield)
	}
}
