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


// Package session ties the parts of inkcell together into a coloring:
// a segmented template image, the colours of its cells, the ink drawn on
// it and the undo history.
//
// A [Coloring] is driven from two contexts.  Pointer input is clipped on
// the input side by [Coloring.PenDown], [Coloring.PenMove] and
// [Coloring.PenUp].  All other methods belong to the interaction side,
// which owns the page state.  Strokes which the clipper finishes on the
// input side are handed over through a queue and turned into ink by
// [Coloring.DrainManufactured].
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inkcell"
	"seehuhn.de/go/inkcell/clip"
	"seehuhn.de/go/inkcell/compose"
	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/ink"
	"seehuhn.de/go/inkcell/region"
	"seehuhn.de/go/inkcell/store"
	"seehuhn.de/go/inkcell/undo"
)

// ErrPreprocessingMissing is returned by [Open] when no region map has
// been stored for the template image.
var ErrPreprocessingMissing = errors.New("template image has not been preprocessed")

var errNoStore = errors.New("coloring has no store")

// Coloring is one coloring of a template image.
type Coloring struct {
	name  string
	st    store.Store
	cells *region.Map
	fill  *fill.Engine
	ink   *ink.Container
	log   *undo.Log

	// Attr are the attributes of new strokes.
	Attr ink.Attributes

	mu      sync.Mutex // guards the fields below
	gesture *clip.Gesture
	pending [][]ink.Point
}

// New returns an empty coloring of the given region map, with a freshly
// generated name.  The coloring is not attached to a store.
func New(cells *region.Map) *Coloring {
	return newColoring(uuid.NewString(), nil, cells)
}

func newColoring(name string, st store.Store, cells *region.Map) *Coloring {
	return &Coloring{
		name:    name,
		st:      st,
		cells:   cells,
		fill:    fill.New(cells),
		ink:     &ink.Container{},
		log:     undo.New(undo.DefaultCapacity),
		Attr:    ink.DefaultAttributes(ink.Pen, color.NRGBA{A: 255}),
		gesture: clip.NewGesture(cells),
	}
}

// Open loads a coloring of the template image with the given size.
//
// The region map of the image must be present in st.  If name is empty,
// a new coloring with a generated name is started.  Otherwise the cell
// colours stored under name are restored; if they are missing or
// unreadable, the coloring starts out empty.
func Open(ctx context.Context, st store.Store, image string, width, height int, name string) (*Coloring, error) {
	runs, err := st.RegionMap(ctx, image)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", image, ErrPreprocessingMissing)
	} else if err != nil {
		return nil, err
	}
	cells, err := region.Load(runs, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", image, err)
	}

	if name == "" {
		name = uuid.NewString()
	}
	c := newColoring(name, st, cells)

	cache, err := st.Cells(ctx, name)
	switch {
	case err == nil:
		c.fill.ApplyFilledCells(cache)
	case errors.Is(err, store.ErrNotFound):
		// new coloring
	default:
		inkcell.Logger().Warn("ignoring unreadable cell colours",
			"coloring", name, "error", err)
	}

	inkcell.Logger().Info("coloring opened",
		"image", image, "coloring", name, "cells", len(cells.CellIDs()))
	return c, nil
}

// Name returns the name under which the coloring is saved.
func (c *Coloring) Name() string {
	return c.name
}

// Cells returns the region map of the template image.
func (c *Coloring) Cells() *region.Map {
	return c.cells
}

// Fill returns the cell fill engine.
func (c *Coloring) Fill() *fill.Engine {
	return c.fill
}

// Ink returns the finished strokes of the coloring.
func (c *Coloring) Ink() *ink.Container {
	return c.ink
}

// Image renders the coloring, with the outlines of template on top.
func (c *Coloring) Image(template image.Image) *image.RGBA {
	return compose.Image(compose.Layers{
		Fills:    c.fill.Pixels(),
		Strokes:  c.ink.Strokes(),
		Template: template,
	})
}

// Save ends the open undo transaction and stores the cell colours.
func (c *Coloring) Save(ctx context.Context) error {
	c.log.EndTransaction()
	if c.st == nil {
		return errNoStore
	}
	err := c.st.PutCells(ctx, c.name, c.fill.Cache())
	if err != nil {
		return err
	}
	inkcell.Logger().Info("coloring saved", "coloring", c.name)
	return nil
}

// FillCellAt fills a cell with colour col.  first is where the fill
// gesture started and current where it ended; nothing happens unless
// both lie in the same cell.  Ink inside the cell is erased.
// The return value tells whether anything was changed.
//
// Strokes collected since the last transaction ended are closed off
// first, so that the fill is undone on its own.
func (c *Coloring) FillCellAt(first, current vec.Vec2, col color.NRGBA) bool {
	id := c.cells.CellIDAt(current)
	if id == 0 || id != c.cells.CellIDAt(first) {
		return false
	}

	c.log.EndTransaction()
	changed := c.eraseInkWithin(id)
	prev := c.fill.ColorOf(id)
	if c.fill.FillCell(id, col) {
		c.log.Insert(undo.FillCell, undo.Args{
			Cells:     c.fill,
			CellID:    id,
			NewColor:  col,
			PrevColor: prev,
		})
		changed = true
	}
	c.log.EndTransaction()
	return changed
}

// EraseCellAt clears the colour of a cell, subject to the same rules as
// [Coloring.FillCellAt].
func (c *Coloring) EraseCellAt(first, current vec.Vec2) bool {
	id := c.cells.CellIDAt(current)
	if id == 0 || id != c.cells.CellIDAt(first) {
		return false
	}

	c.log.EndTransaction()
	changed := c.eraseInkWithin(id)
	prev := c.fill.ColorOf(id)
	if c.fill.EraseCell(id) {
		c.log.Insert(undo.EraseCell, undo.Args{
			Cells:     c.fill,
			CellID:    id,
			PrevColor: prev,
		})
		changed = true
	}
	c.log.EndTransaction()
	return changed
}

// eraseInkWithin removes all strokes which start in cell id.
// Clipped strokes never leave their cell, so the first point suffices.
func (c *Coloring) eraseInkWithin(id uint32) bool {
	box, ok := c.cells.Bounds(id)
	if !ok {
		return false
	}
	var erased []*ink.Stroke
	for _, s := range c.ink.Overlapping(box.Rect()) {
		start, ok := s.Start()
		if ok && c.cells.CellIDAt(start) == id {
			erased = append(erased, s)
		}
	}
	if len(erased) == 0 {
		return false
	}
	c.ink.Delete(erased...)
	c.log.Insert(undo.EraseStrokes, undo.Args{
		Strokes:  c.ink,
		Modified: erased,
	})
	return true
}

// ClearAll erases all ink and all cell colours, as one transaction.
func (c *Coloring) ClearAll() {
	c.log.EndTransaction()
	if strokes := c.ink.Clear(); len(strokes) > 0 {
		c.log.Insert(undo.EraseAllStrokes, undo.Args{
			Strokes:  c.ink,
			Modified: strokes,
		})
	}
	if c.fill.HasFilledCells() {
		prev := c.fill.EraseAllCells()
		c.log.Insert(undo.EraseAllCells, undo.Args{
			Cells: c.fill,
			Cache: prev,
		})
	}
	c.log.EndTransaction()
}

// CollectStrokes adds finished live strokes to the coloring.
func (c *Coloring) CollectStrokes(strokes ...*ink.Stroke) {
	if len(strokes) == 0 {
		return
	}
	c.ink.Add(strokes...)
	c.log.Insert(undo.AddStrokes, undo.Args{
		Strokes:  c.ink,
		Modified: strokes,
	})
}

// EraseAlong erases all strokes hit by the segment from prev to cur and
// returns them.  Strokes which were selected before, but are not hit,
// stay on the page.
func (c *Coloring) EraseAlong(prev, cur vec.Vec2) []*ink.Stroke {
	erased := c.ink.SelectWithLine(prev, cur)
	c.ink.Delete(erased...)
	for _, s := range erased {
		s.Selected = false
	}
	if len(erased) > 0 {
		c.log.Insert(undo.EraseStrokes, undo.Args{
			Strokes:  c.ink,
			Modified: erased,
		})
	}
	return erased
}

// Undo reverts the most recent transaction.
func (c *Coloring) Undo() bool {
	return c.log.Undo()
}

// Redo re-applies the most recently undone transaction.
func (c *Coloring) Redo() bool {
	return c.log.Redo()
}

// CanUndo reports whether there is a transaction to undo.
func (c *Coloring) CanUndo() bool {
	return c.log.CanUndo()
}

// CanRedo reports whether there is a transaction to redo.
func (c *Coloring) CanRedo() bool {
	return c.log.CanRedo()
}

// EndTransaction closes the open undo transaction.
func (c *Coloring) EndTransaction() {
	c.log.EndTransaction()
}
