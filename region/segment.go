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

// DefaultThreshold is the darkness above which a pixel is considered to be
// part of an outline.
const DefaultThreshold = 175

// Segmenter labels the cells of an outline image.
type Segmenter struct {
	// Threshold is compared to (255 - gray) * alpha, where gray is the
	// integer mean of the red, green and blue channels and alpha is the
	// opacity in the range [0, 1].  Pixels with a larger value are outline
	// pixels.
	Threshold float64
}

// NewSegmenter returns a Segmenter which uses [DefaultThreshold].
func NewSegmenter() *Segmenter {
	return &Segmenter{Threshold: DefaultThreshold}
}

// Segment labels the cells of img using [DefaultThreshold].
func Segment(img image.Image) *Map {
	return NewSegmenter().Segment(img)
}

// IsBoundary reports whether a pixel of colour c is an outline pixel.
func (s *Segmenter) IsBoundary(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	gray := (int(n.R) + int(n.G) + int(n.B)) / 3
	darkness := float64(255-gray) * float64(n.A) / 255
	return darkness > s.Threshold
}

// Segment labels the cells of img.  The returned map has the size of
// img, with the top-left pixel of img at (0, 0).
func (s *Segmenter) Segment(img image.Image) *Map {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// open[i] is true for pixels which still need a cell id.  The frame
	// is never open, so the four neighbours of an open pixel are always
	// inside the grid.
	open := make([]bool, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			open[y*w+x] = !s.IsBoundary(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}

	cells := make([]uint32, w*h)
	var stack []int
	next := uint32(1)
	for seed := range open {
		if !open[seed] {
			continue
		}

		open[seed] = false
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cells[i] = next

			for _, j := range [4]int{i - w, i - 1, i + 1, i + w} {
				if open[j] {
					open[j] = false
					stack = append(stack, j)
				}
			}
		}
		next++
	}

	return newMap(w, h, cells)
}
