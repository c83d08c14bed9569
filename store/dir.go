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


package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/region"
)

// File name extensions used by [Dir].
const (
	RegionExt = ".preprocessing"
	CellsExt  = ".cells"
)

// Dir stores region maps and colour caches as files in a directory.
//
// The region map of image "x" is kept in "x.preprocessing", the colour
// cache of coloring "y" in "y.cells".
type Dir struct {
	Root string
}

// NewDir returns a store which keeps its files in root.
// The directory is created if needed.
func NewDir(root string) (*Dir, error) {
	err := os.MkdirAll(root, 0o755)
	if err != nil {
		return nil, err
	}
	return &Dir{Root: root}, nil
}

// RegionMap implements the [Store] interface.
func (d *Dir) RegionMap(ctx context.Context, image string) ([]region.Run, error) {
	data, err := d.read(ctx, image, RegionExt)
	if err != nil {
		return nil, err
	}
	return region.ReadRuns(bytes.NewReader(data))
}

// PutRegionMap implements the [Store] interface.
func (d *Dir) PutRegionMap(ctx context.Context, image string, runs []region.Run) error {
	return d.write(ctx, image, RegionExt, func(w io.Writer) error {
		return region.WriteRuns(w, runs)
	})
}

// Cells implements the [Store] interface.
func (d *Dir) Cells(ctx context.Context, coloring string) (fill.Cache, error) {
	data, err := d.read(ctx, coloring, CellsExt)
	if err != nil {
		return nil, err
	}
	return fill.ReadCache(bytes.NewReader(data))
}

// PutCells implements the [Store] interface.
func (d *Dir) PutCells(ctx context.Context, coloring string, cache fill.Cache) error {
	return d.write(ctx, coloring, CellsExt, func(w io.Writer) error {
		return fill.WriteCache(w, cache)
	})
}

func (d *Dir) path(name, ext string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("invalid name %q", name)
	}
	return filepath.Join(d.Root, name+ext), nil
}

func (d *Dir) read(ctx context.Context, name, ext string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fname, err := d.path(name, ext)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s%s: %w", name, ext, ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

// write replaces the file atomically, so that readers never see a
// partially written file.
func (d *Dir) write(ctx context.Context, name, ext string, fn func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fname, err := d.path(name, ext)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.Root, "."+name+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	err = fn(tmp)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fname)
}
