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

// Package fill paints cells of a region map into a pixel buffer.
//
// The [Engine] keeps a pixel buffer together with a cache which records
// the colour of every filled cell.  After every method call the buffer
// and the cache agree: each pixel of a cell has the cached colour of the
// cell, or is transparent if the cell is not in the cache.
package fill

import (
	"image"
	"image/color"
	"maps"
	"slices"

	"seehuhn.de/go/inkcell"
	"seehuhn.de/go/inkcell/region"
)

// Clear is the colour of cells which have not been filled.
var Clear = color.NRGBA{}

// Cache maps cell ids to the colours of filled cells.  Cells without an
// entry are not filled.
type Cache map[uint32]color.NRGBA

// Engine paints cells into a pixel buffer.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	cells *region.Map
	pix   *image.NRGBA
	cache Cache
}

// New returns an Engine for the given region map.  Initially no cell is
// filled and all pixels are transparent.
func New(cells *region.Map) *Engine {
	return &Engine{
		cells: cells,
		pix:   image.NewNRGBA(image.Rect(0, 0, cells.Width(), cells.Height())),
		cache: make(Cache),
	}
}

// FillCell sets the colour of a cell.  Filling with [Clear] erases the
// cell.  The return value tells whether any pixels were changed; calls
// which would not change the state of the engine do nothing.
func (e *Engine) FillCell(id uint32, c color.NRGBA) bool {
	old, filled := e.cache[id]
	if filled && old == c || !filled && c == Clear {
		return false
	}
	return e.ForceFill(id, c)
}

// ForceFill is like [Engine.FillCell], but always repaints the pixels of
// the cell.  It returns false if the map has no cell with the given id.
func (e *Engine) ForceFill(id uint32, c color.NRGBA) bool {
	b, ok := e.cells.Bounds(id)
	if !ok {
		return false
	}

	for y := b.MinY; y <= b.MaxY; y++ {
		row := e.pix.Pix[y*e.pix.Stride:]
		for x := b.MinX; x <= b.MaxX; x++ {
			if e.cells.At(x, y) != id {
				continue
			}
			px := row[4*x : 4*x+4 : 4*x+4]
			px[0] = c.R
			px[1] = c.G
			px[2] = c.B
			px[3] = c.A
		}
	}

	if c == Clear {
		delete(e.cache, id)
	} else {
		e.cache[id] = c
	}
	return true
}

// EraseCell removes the colour from a cell.
func (e *Engine) EraseCell(id uint32) bool {
	return e.FillCell(id, Clear)
}

// EraseAllCells removes the colour from all cells.  The previous contents
// of the cache are returned, so that they can later be restored using
// [Engine.ApplyFilledCells].
func (e *Engine) EraseAllCells() Cache {
	prev := e.cache
	e.cache = make(Cache)
	clear(e.pix.Pix)
	return prev
}

// ApplyFilledCells replaces the state of the engine: all cells listed in
// cache are filled, all other cells are cleared.  Entries for cells which
// do not exist in the region map are ignored.  The engine does not retain
// cache.
func (e *Engine) ApplyFilledCells(cache Cache) {
	e.cache = make(Cache, len(cache))
	clear(e.pix.Pix)
	for _, id := range slices.Sorted(maps.Keys(cache)) {
		c := cache[id]
		if c == Clear {
			continue
		}
		if !e.ForceFill(id, c) {
			inkcell.Logger().Debug("ignoring colour of unknown cell", "cell", id)
		}
	}
}

// ColorOf returns the colour of a cell, or [Clear] if the cell is not
// filled.
func (e *Engine) ColorOf(id uint32) color.NRGBA {
	return e.cache[id]
}

// HasFilledCells reports whether at least one cell is filled.
func (e *Engine) HasFilledCells() bool {
	return len(e.cache) > 0
}

// Cache returns a copy of the colour cache.
func (e *Engine) Cache() Cache {
	return maps.Clone(e.cache)
}

// Pixels returns the pixel buffer.  The buffer is modified in place by
// all filling operations.
func (e *Engine) Pixels() *image.NRGBA {
	return e.pix
}

// Cells returns the region map used by the engine.
func (e *Engine) Cells() *region.Map {
	return e.cells
}
