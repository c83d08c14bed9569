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


// Package compose flattens a coloring into a single image: paper, cell
// colours, ink and finally the outlines of the template on top.
package compose

import (
	"image"
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/inkcell/ink"
	"seehuhn.de/go/inkcell/region"
)

// Layers are the parts of a coloring, from bottom to top.
type Layers struct {
	Fills    *image.NRGBA // cell colours, as kept by [fill.Engine]
	Strokes  []*ink.Stroke
	Template image.Image // the outline image; only its dark pixels are used
}

// Image renders the layers onto white paper.  The result has the bounds
// of the template, or of the fills if there is no template.
func Image(l Layers) *image.RGBA {
	var b image.Rectangle
	switch {
	case l.Template != nil:
		b = l.Template.Bounds()
	case l.Fills != nil:
		b = l.Fills.Bounds()
	default:
		return image.NewRGBA(image.Rectangle{})
	}

	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)

	if l.Fills != nil {
		draw.Draw(dst, b, l.Fills, l.Fills.Bounds().Min, draw.Over)
	}

	if len(l.Strokes) > 0 {
		r := NewRasterizer(rect.Rect{
			LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
			URx: float64(b.Max.X), URy: float64(b.Max.Y),
		})
		for _, s := range l.Strokes {
			DrawStroke(dst, r, s)
		}
	}

	if l.Template != nil {
		outline := region.Outline(l.Template)
		draw.Draw(dst, b, outline, outline.Bounds().Min, draw.Over)
	}
	return dst
}

// DrawStroke paints s onto dst, using the colour and line style of the
// stroke.  The clip rectangle of r should lie inside the bounds of dst.
func DrawStroke(dst *image.RGBA, r *Rasterizer, s *ink.Stroke) {
	if len(s.Points) == 0 || s.Attr.Width <= 0 || s.Attr.Color.A == 0 {
		return
	}
	r.Width = s.Attr.Width
	r.Cap = s.Attr.Cap
	r.Join = s.Attr.Join
	r.Stroke(s.Path(), func(y, xMin int, coverage []float32) {
		paintRow(dst, y, xMin, coverage, s.Attr.Color)
	})
}

// paintRow composites the colour c over one row of dst, scaling its
// alpha by the coverage values.
func paintRow(dst *image.RGBA, y, xMin int, coverage []float32, c color.NRGBA) {
	alpha := float32(c.A) / 255
	off := dst.PixOffset(xMin, y)
	for _, cov := range coverage {
		a := cov * alpha
		if a > 0 {
			pix := dst.Pix[off : off+4 : off+4]
			pix[0] = blend(pix[0], c.R, a)
			pix[1] = blend(pix[1], c.G, a)
			pix[2] = blend(pix[2], c.B, a)
			pix[3] = blend(pix[3], 255, a)
		}
		off += 4
	}
}

// blend returns src*a + dst*(1-a), rounded to the nearest integer.
func blend(dst, src uint8, a float32) uint8 {
	return uint8(float32(src)*a + float32(dst)*(1-a) + 0.5)
}
