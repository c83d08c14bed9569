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

// Grid pages only use integer coordinates, so that every pixel is either
// fully inked or blank.
var gridPages = []Page{
	{
		Name:    "three_by_three",
		Ink:     join(
			frame(0, 0, 64, 64, 2),
			rectangle(21, 0, 23, 64),
			rectangle(42, 0, 44, 64),
			rectangle(0, 21, 64, 23),
			rectangle(0, 42, 64, 44),
		),
		Width:   64,
		Height:  64,
		Cells:   9,
		Markers: []Marker{
			{pt(11, 11), 1}, {pt(32, 11), 2}, {pt(52, 11), 3},
			{pt(11, 32), 4}, {pt(32, 32), 5}, {pt(52, 32), 6},
			{pt(11, 52), 7}, {pt(32, 52), 8}, {pt(52, 52), 9},
			{pt(22, 11), 0}, {pt(11, 43), 0}, {pt(0.5, 30), 0},
		},
	},
	{
		Name:    "target",
		Ink:     join(
			frame(0, 0, 48, 48, 2),
			frame(10, 10, 38, 38, 2),
			rectangle(22, 22, 26, 26),
		),
		Width:   48,
		Height:  48,
		Cells:   2,
		Markers: []Marker{
			{pt(5, 5), 1}, {pt(44, 30), 1},
			{pt(15, 15), 2}, {pt(30, 30), 2},
			{pt(24, 24), 0}, {pt(11, 20), 0},
		},
	},
	{
		Name:    "open",
		Ink:     rectangle(0, 0, 0, 0),
		Width:   16,
		Height:  12,
		Cells:   1,
		Markers: []Marker{
			{pt(1, 1), 1}, {pt(14.9, 10.9), 1},
			{pt(0, 5), 0}, {pt(15, 5), 0}, {pt(5, 11), 0},
		},
	},
}

// Grid returns a page of size*size pixels, divided into n*n square cells
// by lines of width 2.  Cells are numbered row by row.
func Grid(size, n int) Page {
	var parts []path.Path
	parts = append(parts, frame(0, 0, float64(size), float64(size), 2))
	for i := 1; i < n; i++ {
		pos := float64(i*size/n - 1)
		parts = append(parts,
			rectangle(pos, 0, pos+2, float64(size)),
			rectangle(0, pos, float64(size), pos+2))
	}
	return Page{
		Name:   "grid",
		Ink:    join(parts...),
		Width:  size,
		Height: size,
		Cells:  n * n,
	}
}

// rectangle builds a clockwise rectangle.
func rectangle(x1, y1, x2, y2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !moveTo(yield, x1, y1) {
			return
		}
		if !lineTo(yield, x2, y1) {
			return
		}
		if !lineTo(yield, x2, y2) {
			return
		}
		if !lineTo(yield, x1, y2) {
			return
		}
		closePath(yield)
	}
}

// frame builds a rectangular border of thickness t.  The inner
// rectangle runs counter-clockwise, so that it is cut out of the outer
// one.
func frame(x1, y1, x2, y2, t float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, pts := range rectangle(x1, y1, x2, y2) {
			if !yield(cmd, pts) {
				return
			}
		}
		if !moveTo(yield, x1+t, y1+t) {
			return
		}
		if !lineTo(yield, x1+t, y2-t) {
			return
		}
		if !lineTo(yield, x2-t, y2-t) {
			return
		}
		if !lineTo(yield, x2-t, y1+t) {
			return
		}
		closePath(yield)
	}
}

// join concatenates paths.
func join(parts ...path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range parts {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}
}

func moveTo(yield func(path.Command, []vec.Vec2) bool, x, y float64) bool {
	return yield(path.CmdMoveTo, []vec.Vec2{{X: x, Y: y}})
}

func lineTo(yield func(path.Command, []vec.Vec2) bool, x, y float64) bool {
	return yield(path.CmdLineTo, []vec.Vec2{{X: x, Y: y}})
}

func closePath(yield func(path.Command, []vec.Vec2) bool) bool {
	return yield(path.CmdClose, nil)
}
