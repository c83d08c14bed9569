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

// Package inkcell implements the core of a coloring book: outline images
// are divided into cells, cells can be filled with flat colours, and
// freehand ink is clipped so that it never leaves the cell in which a
// stroke was started.
//
// The work is split over several packages:
//
//   - [seehuhn.de/go/inkcell/region] labels the cells of an outline image
//     and stores the result in a run-length encoded region file.
//   - [seehuhn.de/go/inkcell/fill] paints cells into a pixel buffer.
//   - [seehuhn.de/go/inkcell/clip] splits pointer input into strokes which
//     stay inside the active cell.
//   - [seehuhn.de/go/inkcell/undo] records all edits in a transactional
//     undo/redo log.
//   - [seehuhn.de/go/inkcell/ink] holds finished strokes.
//   - [seehuhn.de/go/inkcell/session] ties these together for one
//     coloring.
//   - [seehuhn.de/go/inkcell/store] persists region maps and cell colours.
//   - [seehuhn.de/go/inkcell/compose] flattens a coloring into an image.
//
// This package only holds the logger shared by all sub-packages.
package inkcell
