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


// Package store persists the two per-page artefacts of a coloring:
// the run-length region map of a template image and the colour cache
// of a coloring made from it.
//
// Two implementations are provided.  [Dir] keeps one file per artefact
// in a directory, using the same file layout as the preprocessing
// tool.  [SQL] keeps both kinds of data as blobs in a sqlite database.
package store

import (
	"context"
	"errors"

	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/region"
)

var (
	_ Store = (*Dir)(nil)
	_ Store = (*SQL)(nil)
)

// ErrNotFound is returned when no data is stored under a given name.
var ErrNotFound = errors.New("not found")

// Store loads and saves region maps and colour caches.
//
// Region maps are keyed by the name of the template image, colour
// caches by the name of the coloring.
type Store interface {
	RegionMap(ctx context.Context, image string) ([]region.Run, error)
	PutRegionMap(ctx context.Context, image string, runs []region.Run) error
	Cells(ctx context.Context, coloring string) (fill.Cache, error)
	PutCells(ctx context.Context, coloring string, cache fill.Cache) error
}
