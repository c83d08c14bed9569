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


package session

import (
	"seehuhn.de/go/inkcell/clip"
	"seehuhn.de/go/inkcell/ink"
)

// The methods in this file are called from the input side and may run
// concurrently with the rest of the Coloring methods.

// PenDown starts a pen gesture.
func (c *Coloring) PenDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue(c.gesture.PointerDown())
}

// PenMove clips a batch of pen input to the cell where the gesture
// started.  The caller draws u.Wet as part of the live stroke.
// Manufactured strokes are queued for [Coloring.DrainManufactured].
func (c *Coloring) PenMove(batch []ink.Point) clip.Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := c.gesture.Process(batch)
	c.queue(u)
	return u
}

// PenUp ends a pen gesture.
func (c *Coloring) PenUp() clip.Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := c.gesture.PointerUp()
	c.queue(u)
	return u
}

// ActiveCell returns the cell the current pen gesture is clipped to.
func (c *Coloring) ActiveCell() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture.ActiveCell()
}

func (c *Coloring) queue(u clip.Update) {
	c.pending = append(c.pending, u.Manufactured...)
}

// DrainManufactured turns the strokes finished by the clipper into ink,
// using the current attributes, and returns them.
func (c *Coloring) DrainManufactured() []*ink.Stroke {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	strokes := make([]*ink.Stroke, 0, len(pending))
	for _, points := range pending {
		strokes = append(strokes, ink.NewStroke(points, c.Attr))
	}
	c.CollectStrokes(strokes...)
	return strokes
}
