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

// Package testcases contains synthetic coloring pages for tests and
// benchmarks.
package testcases

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Page is a synthetic outline image.
type Page struct {
	Name    string    // lowercase a-z and _ only
	Ink     path.Path // the outline, filled using the non-zero winding rule
	Width   int       // page width in pixels
	Height  int       // page height in pixels
	Cells   int       // number of cells, or 0 if not known exactly
	Markers []Marker  // sample locations with known cell ids
}

// Marker is a location on a page together with a label for the cell it
// lies in.  Markers with equal labels must be in the same cell, markers
// with different labels in different cells.  Label 0 marks outline
// pixels.  On pages with Cells > 0 the label is also the cell id.
type Marker struct {
	At   vec.Vec2
	Cell uint32
}

// Render draws the page as black ink on white paper.
func (p Page) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r := vector.NewRasterizer(p.Width, p.Height)
	for cmd, pts := range p.Ink {
		switch cmd {
		case path.CmdMoveTo:
			r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdLineTo:
			r.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case path.CmdQuadTo:
			r.QuadTo(float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y))
		case path.CmdCubeTo:
			r.CubeTo(float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y))
		case path.CmdClose:
			r.ClosePath()
		}
	}
	r.Draw(img, img.Bounds(), image.Black, image.Point{})
	return img
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
