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
	"errors"
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrMalformed is returned when region data does not describe a grid of
// the expected size.
var ErrMalformed = errors.New("malformed region data")

// BoundingBox is the smallest axis-aligned rectangle which contains all
// pixels of a cell.  All coordinates are inclusive.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY int
}

// Rect returns the area covered by the pixels in b.
func (b BoundingBox) Rect() rect.Rect {
	return rect.Rect{
		LLx: float64(b.MinX),
		LLy: float64(b.MinY),
		URx: float64(b.MaxX + 1),
		URy: float64(b.MaxY + 1),
	}
}

func (b *BoundingBox) extend(x, y int) {
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
}

// Map gives the cell id of every pixel of an outline image.
//
// All methods can be called on a nil Map; a nil Map reports id 0 for every
// location.
type Map struct {
	width, height int
	cells         []uint32 // row-major
	boxes         map[uint32]BoundingBox
}

func newMap(width, height int, cells []uint32) *Map {
	m := &Map{
		width:  width,
		height: height,
		cells:  cells,
		boxes:  make(map[uint32]BoundingBox),
	}
	for y := range height {
		row := cells[y*width : (y+1)*width]
		for x, id := range row {
			if id == 0 {
				continue
			}
			b, ok := m.boxes[id]
			if !ok {
				b = BoundingBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
			}
			b.extend(x, y)
			m.boxes[id] = b
		}
	}
	return m
}

// Load expands runs into a Map of the given size.  The runs must cover
// exactly width*height pixels, otherwise an error wrapping
// [ErrMalformed] is returned.
func Load(runs []Run, width, height int) (*Map, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrMalformed, width, height)
	}

	n := uint64(width) * uint64(height)
	var total uint64
	for _, r := range runs {
		total += uint64(r.Length)
	}
	if total != n {
		return nil, fmt.Errorf("%w: runs cover %d pixels, expected %d",
			ErrMalformed, total, n)
	}

	cells := make([]uint32, n)
	pos := 0
	for _, r := range runs {
		fillRun(cells[pos:pos+int(r.Length)], r.CellID)
		pos += int(r.Length)
	}
	return newMap(width, height, cells), nil
}

// fillRun sets all elements of dst to id, doubling the copied range in
// every step.
func fillRun(dst []uint32, id uint32) {
	if len(dst) == 0 || id == 0 {
		return
	}
	dst[0] = id
	for n := 1; n < len(dst); n *= 2 {
		copy(dst[n:], dst[:n])
	}
}

// Width returns the width of the map in pixels.
func (m *Map) Width() int {
	if m == nil {
		return 0
	}
	return m.width
}

// Height returns the height of the map in pixels.
func (m *Map) Height() int {
	if m == nil {
		return 0
	}
	return m.height
}

// At returns the cell id of pixel (x, y).  Pixels outside the image and
// on its outermost row or column have id 0.
func (m *Map) At(x, y int) uint32 {
	if m == nil || x <= 0 || y <= 0 || x >= m.width-1 || y >= m.height-1 {
		return 0
	}
	return m.cells[y*m.width+x]
}

// CellIDAt returns the id of the cell which contains p.  The result is 0
// if p lies on an outline, on the outer frame of the image, or outside
// the image.
func (m *Map) CellIDAt(p vec.Vec2) uint32 {
	// The negated comparisons also reject NaN.
	if m == nil || !(p.X >= 0 && p.Y >= 0) ||
		!(p.X < float64(m.width) && p.Y < float64(m.height)) {
		return 0
	}
	return m.At(int(p.X), int(p.Y))
}

// IsOnBoundary reports whether p lies on an outline or outside all cells.
func (m *Map) IsOnBoundary(p vec.Vec2) bool {
	return m.CellIDAt(p) == 0
}

// Bounds returns the bounding box of the cell with the given id.
// The second return value is false if there is no such cell.
func (m *Map) Bounds(id uint32) (BoundingBox, bool) {
	if m == nil {
		return BoundingBox{}, false
	}
	b, ok := m.boxes[id]
	return b, ok
}

// CellIDs returns the ids of all cells, in increasing order.
func (m *Map) CellIDs() []uint32 {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.boxes))
}

// Runs returns the run-length encoding of the map.
func (m *Map) Runs() []Run {
	if m == nil {
		return nil
	}
	return Compress(m.cells)
}
