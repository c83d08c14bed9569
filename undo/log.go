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

// Package undo implements a transactional undo/redo log.
//
// Edits are recorded as operations.  Operations recorded between two
// calls to [Log.EndTransaction] form a transaction, and are undone and
// redone together.  The log keeps a bounded number of transactions;
// when the limit is reached, the oldest transaction is dropped.
package undo

import (
	"maps"
	"slices"

	"seehuhn.de/go/inkcell"
)

// DefaultCapacity is the number of transactions kept by a log created
// with capacity 0.
const DefaultCapacity = 100

// Log records edits for undo and redo.
//
// A Log is not safe for concurrent use.
type Log struct {
	capacity int
	strokes  *StrokeManager

	undo []Operation // in the order of recording
	redo []Operation // in the order of recording, most recent group last

	tx     uint64 // id of the open transaction
	txUsed bool   // the open transaction has operations
	active int    // number of completed transactions on the undo stack
}

// New returns an empty log which keeps up to capacity transactions.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		strokes:  NewStrokeManager(),
	}
}

// Strokes returns the stroke manager of the log.
func (l *Log) Strokes() *StrokeManager {
	return l.strokes
}

// StartTransaction marks the start of a transaction.  Transactions open
// implicitly, so this does nothing; it exists to make call sites read
// symmetrically.
func (l *Log) StartTransaction() {}

// EndTransaction closes the open transaction.  If no operations have been
// recorded since the last call, nothing happens.
func (l *Log) EndTransaction() {
	if !l.txUsed {
		return
	}
	l.tx++
	l.active++
	l.txUsed = false
}

// Insert records an edit which has already been applied.  Recording an
// edit clears the redo stack.  Operations of kind [None] are ignored.
func (l *Log) Insert(kind Kind, args Args) {
	op := l.newOperation(kind, args)
	if op == nil {
		return
	}

	if l.active >= l.capacity {
		l.evict()
	}
	l.undo = append(l.undo, op)
	l.txUsed = true

	l.discard(l.redo)
	l.redo = nil
}

func (l *Log) newOperation(kind Kind, args Args) Operation {
	switch kind {
	case AddStrokes, EraseStrokes, EraseAllStrokes:
		base := strokeOp{
			tx:     l.tx,
			ids:    make([]StrokeID, len(args.Modified)),
			target: args.Strokes,
			m:      l.strokes,
		}
		for i, s := range args.Modified {
			id := l.strokes.Intern(s)
			l.strokes.AddRef(id)
			base.ids[i] = id
		}
		switch kind {
		case AddStrokes:
			return &StrokesAdded{base}
		case EraseStrokes:
			return &StrokesErased{base}
		default:
			return &AllStrokesErased{base}
		}

	case FillCell:
		return &CellFilled{
			cellOp: cellOp{tx: l.tx, target: args.Cells},
			Cell:   args.CellID,
			Prev:   args.PrevColor,
			New:    args.NewColor,
		}
	case EraseCell:
		return &CellErased{
			cellOp: cellOp{tx: l.tx, target: args.Cells},
			Cell:   args.CellID,
			Prev:   args.PrevColor,
		}
	case EraseAllCells:
		return &AllCellsErased{
			cellOp: cellOp{tx: l.tx, target: args.Cells},
			cache:  maps.Clone(args.Cache),
		}
	}
	return nil
}

// evict drops the oldest transaction.
func (l *Log) evict() {
	if len(l.undo) == 0 {
		return
	}
	tx := l.undo[0].Transaction()
	n := 0
	for n < len(l.undo) && l.undo[n].Transaction() == tx {
		n++
	}
	inkcell.Logger().Debug("undo log full, dropping transaction", "operations", n)
	l.discard(l.undo[:n])
	l.undo = slices.Delete(l.undo, 0, n)
	l.active--
}

// discard releases the stroke references held by ops.
func (l *Log) discard(ops []Operation) {
	for _, op := range ops {
		op.release(l.strokes)
	}
}

// Undo reverts the most recent transaction.  An open transaction is
// closed first.  The return value is false if there is nothing to undo.
func (l *Log) Undo() bool {
	l.EndTransaction()
	if len(l.undo) == 0 {
		return false
	}

	n := groupSize(l.undo)
	group := l.undo[len(l.undo)-n:]
	for i := len(group) - 1; i >= 0; i-- {
		group[i].undo()
	}
	l.redo = append(l.redo, group...)
	l.undo = l.undo[:len(l.undo)-n]
	l.active--
	return true
}

// Redo repeats the most recently undone transaction.  The return value is
// false if there is nothing to redo.
func (l *Log) Redo() bool {
	if len(l.redo) == 0 {
		return false
	}

	n := groupSize(l.redo)
	group := l.redo[len(l.redo)-n:]
	for _, op := range group {
		op.redo()
	}
	l.undo = append(l.undo, group...)
	l.redo = l.redo[:len(l.redo)-n]
	l.active++
	return true
}

// groupSize returns the number of operations at the end of ops which
// belong to the same transaction.
func groupSize(ops []Operation) int {
	tx := ops[len(ops)-1].Transaction()
	n := 1
	for n < len(ops) && ops[len(ops)-1-n].Transaction() == tx {
		n++
	}
	return n
}

// CanUndo reports whether [Log.Undo] would do anything.
func (l *Log) CanUndo() bool {
	return len(l.undo) > 0
}

// CanRedo reports whether [Log.Redo] would do anything.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// Reset discards all operations and forgets all strokes.
func (l *Log) Reset() {
	l.discard(l.undo)
	l.discard(l.redo)
	l.undo = nil
	l.redo = nil
	l.tx = 0
	l.txUsed = false
	l.active = 0
	l.strokes.Clear()
}
