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

package undo

import (
	"image/color"

	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/ink"
)

// Kind selects the type of an operation passed to [Log.Insert].
type Kind int

// These are the supported kinds of operations.
const (
	None Kind = iota
	AddStrokes
	EraseStrokes
	EraseAllStrokes
	FillCell
	EraseCell
	EraseAllCells
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case AddStrokes:
		return "add strokes"
	case EraseStrokes:
		return "erase strokes"
	case EraseAllStrokes:
		return "erase all strokes"
	case FillCell:
		return "fill cell"
	case EraseCell:
		return "erase cell"
	case EraseAllCells:
		return "erase all cells"
	default:
		return "unknown"
	}
}

// StrokeContainer is where stroke operations add and remove strokes.
// [*ink.Container] implements this interface.
type StrokeContainer interface {
	Add(strokes ...*ink.Stroke)
	Delete(strokes ...*ink.Stroke) int
}

// CellPainter is what cell operations act on.  [*fill.Engine] implements
// this interface.
type CellPainter interface {
	FillCell(id uint32, c color.NRGBA) bool
	EraseCell(id uint32) bool
	EraseAllCells() fill.Cache
	ApplyFilledCells(cache fill.Cache)
}

// Args describe an edit which has been applied and is to be recorded.
// Which fields are used depends on the [Kind].
type Args struct {
	Strokes  StrokeContainer // stroke kinds
	Modified []*ink.Stroke   // stroke kinds: the added or erased strokes

	Cells     CellPainter // cell kinds
	CellID    uint32      // FillCell, EraseCell
	NewColor  color.NRGBA // FillCell
	PrevColor color.NRGBA // FillCell, EraseCell
	Cache     fill.Cache  // EraseAllCells: the cache before erasing
}

// Operation is an entry in the undo log.
// This is one of [*StrokesAdded], [*StrokesErased], [*AllStrokesErased],
// [*CellFilled], [*CellErased] or [*AllCellsErased].
type Operation interface {
	// Kind returns the kind of edit this operation records.
	Kind() Kind

	// Transaction returns the id of the transaction this operation
	// belongs to.
	Transaction() uint64

	undo()
	redo()
	release(m *StrokeManager)
}

type strokeOp struct {
	tx     uint64
	ids    []StrokeID
	target StrokeContainer
	m      *StrokeManager
}

func (o *strokeOp) Transaction() uint64 { return o.tx }

// restore puts clones of the strokes back into the container.
func (o *strokeOp) restore() {
	for _, id := range o.ids {
		if s := o.m.CloneAndUpdate(id); s != nil {
			o.target.Add(s)
		}
	}
}

// remove deletes the strokes from the container.
func (o *strokeOp) remove() {
	strokes := make([]*ink.Stroke, 0, len(o.ids))
	for _, id := range o.ids {
		if s, ok := o.m.Stroke(id); ok {
			strokes = append(strokes, s)
		}
	}
	o.target.Delete(strokes...)
}

func (o *strokeOp) release(m *StrokeManager) {
	for _, id := range o.ids {
		m.RemoveRef(id)
	}
}

// StrokesAdded records that strokes were drawn.
type StrokesAdded struct{ strokeOp }

func (*StrokesAdded) Kind() Kind { return AddStrokes }
func (o *StrokesAdded) undo()    { o.remove() }
func (o *StrokesAdded) redo()    { o.restore() }

// StrokesErased records that strokes were erased.
type StrokesErased struct{ strokeOp }

func (*StrokesErased) Kind() Kind { return EraseStrokes }
func (o *StrokesErased) undo()    { o.restore() }
func (o *StrokesErased) redo()    { o.remove() }

// AllStrokesErased records that all strokes of a coloring were erased.
type AllStrokesErased struct{ strokeOp }

func (*AllStrokesErased) Kind() Kind { return EraseAllStrokes }
func (o *AllStrokesErased) undo()    { o.restore() }
func (o *AllStrokesErased) redo()    { o.remove() }

type cellOp struct {
	tx     uint64
	target CellPainter
}

func (o *cellOp) Transaction() uint64    { return o.tx }
func (o *cellOp) release(*StrokeManager) {}

// CellFilled records that a cell was filled.
type CellFilled struct {
	cellOp
	Cell      uint32
	Prev, New color.NRGBA
}

func (*CellFilled) Kind() Kind { return FillCell }
func (o *CellFilled) undo()    { o.target.FillCell(o.Cell, o.Prev) }
func (o *CellFilled) redo()    { o.target.FillCell(o.Cell, o.New) }

// CellErased records that the colour was removed from a cell.
type CellErased struct {
	cellOp
	Cell uint32
	Prev color.NRGBA
}

func (*CellErased) Kind() Kind { return EraseCell }
func (o *CellErased) undo()    { o.target.FillCell(o.Cell, o.Prev) }
func (o *CellErased) redo()    { o.target.EraseCell(o.Cell) }

// AllCellsErased records that the colour was removed from all cells.
type AllCellsErased struct {
	cellOp
	cache fill.Cache
}

func (*AllCellsErased) Kind() Kind { return EraseAllCells }
func (o *AllCellsErased) undo()    { o.target.ApplyFilledCells(o.cache) }
func (o *AllCellsErased) redo()    { o.target.EraseAllCells() }
