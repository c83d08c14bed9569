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
	"seehuhn.de/go/inkcell/ink"
)

// StrokeID identifies a stroke in the undo log.  Ids stay valid when a
// stroke is replaced by a clone.
type StrokeID uint32

// StrokeManager assigns ids to strokes and counts how many operations
// refer to each of them.  A stroke is forgotten once the last operation
// referring to it has been discarded.
type StrokeManager struct {
	last    StrokeID
	ids     map[*ink.Stroke]StrokeID
	strokes map[StrokeID]*ink.Stroke
	refs    map[StrokeID]int
}

// NewStrokeManager returns an empty StrokeManager.
func NewStrokeManager() *StrokeManager {
	return &StrokeManager{
		ids:     make(map[*ink.Stroke]StrokeID),
		strokes: make(map[StrokeID]*ink.Stroke),
		refs:    make(map[StrokeID]int),
	}
}

// Intern returns the id of s.  A new id is allocated if s has not been
// seen before.
func (m *StrokeManager) Intern(s *ink.Stroke) StrokeID {
	if id, ok := m.ids[s]; ok {
		return id
	}
	m.last++
	id := m.last
	m.ids[s] = id
	m.strokes[id] = s
	m.refs[id] = 0
	return id
}

// Stroke returns the stroke with the given id.
func (m *StrokeManager) Stroke(id StrokeID) (*ink.Stroke, bool) {
	s, ok := m.strokes[id]
	return s, ok
}

// CloneAndUpdate replaces the stroke with the given id by a clone, and
// returns the clone.  The id is kept.  The result is nil if the id is
// unknown.
func (m *StrokeManager) CloneAndUpdate(id StrokeID) *ink.Stroke {
	s, ok := m.strokes[id]
	if !ok {
		return nil
	}
	c := s.Clone()
	delete(m.ids, s)
	m.ids[c] = id
	m.strokes[id] = c
	return c
}

// AddRef records a new reference to a stroke.
func (m *StrokeManager) AddRef(id StrokeID) {
	if _, ok := m.strokes[id]; ok {
		m.refs[id]++
	}
}

// RemoveRef drops a reference to a stroke.  When no references remain,
// the stroke is forgotten.
func (m *StrokeManager) RemoveRef(id StrokeID) {
	if m.refs[id] > 1 {
		m.refs[id]--
		return
	}
	if s, ok := m.strokes[id]; ok {
		delete(m.ids, s)
	}
	delete(m.strokes, id)
	delete(m.refs, id)
}

// Refs returns the number of references to a stroke.
func (m *StrokeManager) Refs(id StrokeID) int {
	return m.refs[id]
}

// Len returns the number of known strokes.
func (m *StrokeManager) Len() int {
	return len(m.strokes)
}

// Clear forgets all strokes.  Ids are not reused.
func (m *StrokeManager) Clear() {
	clear(m.ids)
	clear(m.strokes)
	clear(m.refs)
}
