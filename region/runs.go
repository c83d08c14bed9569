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
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Run is a sequence of consecutive pixels, in row-major order, which all
// have the same cell id.
type Run struct {
	CellID uint32
	Length uint32
}

// runSize is the size of one encoded run in bytes.
const runSize = 8

// Compress converts a row-major grid of cell ids into runs.  A new run
// starts whenever the cell id changes.
func Compress(cells []uint32) []Run {
	var runs []Run
	for _, id := range cells {
		if n := len(runs); n > 0 && runs[n-1].CellID == id && runs[n-1].Length < math.MaxUint32 {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, Run{CellID: id, Length: 1})
	}
	return runs
}

// WriteRuns writes runs in the region file format: a sequence of
// (cell id, length) pairs, each encoded as a little-endian uint32.
// There is no header.
func WriteRuns(w io.Writer, runs []Run) error {
	buf := make([]byte, len(runs)*runSize)
	for i, r := range runs {
		binary.LittleEndian.PutUint32(buf[i*runSize:], r.CellID)
		binary.LittleEndian.PutUint32(buf[i*runSize+4:], r.Length)
	}
	_, err := w.Write(buf)
	return err
}

// ReadRuns reads a region file written by [WriteRuns].
func ReadRuns(r io.Reader) ([]Run, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%runSize != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(data)%runSize)
	}

	runs := make([]Run, len(data)/runSize)
	for i := range runs {
		runs[i] = Run{
			CellID: binary.LittleEndian.Uint32(data[i*runSize:]),
			Length: binary.LittleEndian.Uint32(data[i*runSize+4:]),
		}
	}
	return runs, nil
}
