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

package region

import (
	"image"
	"image/color"
)

// Outline converts an outline drawing into black ink on a transparent
// background.  The opacity of each output pixel is the darkness of the
// corresponding input pixel, so white paper becomes fully transparent.
// The result can be placed on top of the filled cells.
func Outline(img image.Image) *image.NRGBA {
	b := img.Bounds()
	res := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		row := res.Pix[y*res.Stride:]
		for x := range b.Dx() {
			n := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			mean := float64(int(n.R)+int(n.G)+int(n.B)) / 3
			row[4*x+3] = uint8((255 - mean) * float64(n.A) / 255)
		}
	}
	return res
}
