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

package ink

import (
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Container holds the finished strokes of a coloring, in drawing order.
//
// A Container is not safe for concurrent use.
type Container struct {
	strokes []*Stroke
}

// Add appends strokes to the container.  Strokes which are already
// present are not added a second time.
func (c *Container) Add(strokes ...*Stroke) {
	for _, s := range strokes {
		if s != nil && !c.Contains(s) {
			c.strokes = append(c.strokes, s)
		}
	}
}

// Contains reports whether s is in the container.
func (c *Container) Contains(s *Stroke) bool {
	return slices.Contains(c.strokes, s)
}

// Len returns the number of strokes in the container.
func (c *Container) Len() int {
	return len(c.strokes)
}

// Strokes returns all strokes, in drawing order.
func (c *Container) Strokes() []*Stroke {
	return slices.Clone(c.strokes)
}

// Delete removes the given strokes and returns how many of them were
// found.
func (c *Container) Delete(strokes ...*Stroke) int {
	n := len(c.strokes)
	c.strokes = slices.DeleteFunc(c.strokes, func(s *Stroke) bool {
		return slices.Contains(strokes, s)
	})
	return n - len(c.strokes)
}

// Clear removes all strokes and returns them.
func (c *Container) Clear() []*Stroke {
	all := c.strokes
	c.strokes = nil
	return all
}

// Overlapping returns the strokes whose bounds overlap r.
func (c *Container) Overlapping(r rect.Rect) []*Stroke {
	var res []*Stroke
	for _, s := range c.strokes {
		b := s.Bounds()
		if b.LLx <= r.URx && r.LLx <= b.URx && b.LLy <= r.URy && r.LLy <= b.URy {
			res = append(res, s)
		}
	}
	return res
}

// SelectWithLine marks all strokes hit by the segment from a to b as
// selected and returns them.  The selection of other strokes is left
// unchanged.
func (c *Container) SelectWithLine(a, b vec.Vec2) []*Stroke {
	var res []*Stroke
	for _, s := range c.strokes {
		if s.Hits(a, b) {
			s.Selected = true
			res = append(res, s)
		}
	}
	return res
}

// Selected returns the selected strokes.
func (c *Container) Selected() []*Stroke {
	var res []*Stroke
	for _, s := range c.strokes {
		if s.Selected {
			res = append(res, s)
		}
	}
	return res
}

// DeleteSelected removes all selected strokes and returns them.
func (c *Container) DeleteSelected() []*Stroke {
	sel := c.Selected()
	c.Delete(sel...)
	for _, s := range sel {
		s.Selected = false
	}
	return sel
}
