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

// Package region divides an outline image into cells.
//
// A cell is a maximal 4-connected set of pixels which are not part of an
// outline.  Cells are numbered 1, 2, 3, ... in the order in which a
// row-major scan first reaches them.  Outline pixels, and all pixels on
// the 1-pixel frame around the image, belong to no cell and have id 0.
//
// Segmentation is expensive and is done once per image, ahead of time.
// The result is stored as a sequence of runs (see [Run], [WriteRuns]) and
// expanded again at run time by [Load].
package region
