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

package fill

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"maps"
	"slices"
)

// recordSize is the size of one cache entry on disk: a little-endian
// uint32 cell id followed by the red, green, blue and alpha channels.
const recordSize = 8

// WriteCache writes the entries of cache in increasing order of cell id.
// The output has no header; entries follow each other until the end of
// the file.
func WriteCache(w io.Writer, cache Cache) error {
	buf := make([]byte, 0, len(cache)*recordSize)
	for _, id := range slices.Sorted(maps.Keys(cache)) {
		c := cache[id]
		buf = binary.LittleEndian.AppendUint32(buf, id)
		buf = append(buf, c.R, c.G, c.B, c.A)
	}
	_, err := w.Write(buf)
	return err
}

// ReadCache reads a colour cache written by [WriteCache].
func ReadCache(r io.Reader) (Cache, error) {
	cache := make(Cache)
	var rec [recordSize]byte
	for {
		_, err := io.ReadFull(r, rec[:])
		if errors.Is(err, io.EOF) {
			return cache, nil
		} else if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("colour cache: truncated entry after %d cells", len(cache))
		} else if err != nil {
			return nil, err
		}

		id := binary.LittleEndian.Uint32(rec[:4])
		cache[id] = color.NRGBA{R: rec[4], G: rec[5], B: rec[6], A: rec[7]}
	}
}

// Save writes the colour cache of the engine to w.
func (e *Engine) Save(w io.Writer) error {
	return WriteCache(w, e.cache)
}

// Restore reads a colour cache from r and applies it to the engine.
func (e *Engine) Restore(r io.Reader) error {
	cache, err := ReadCache(r)
	if err != nil {
		return err
	}
	e.ApplyFilledCells(cache)
	return nil
}
