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
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"seehuhn.de/go/inkcell"
	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/region"
)

const schema = `
CREATE TABLE IF NOT EXISTS regions (
	image TEXT PRIMARY KEY,
	data  BLOB
);
CREATE TABLE IF NOT EXISTS cells (
	coloring TEXT PRIMARY KEY,
	data     BLOB
);`

// SQL stores region maps and colour caches in a sqlite database.
// The blobs use the same encoding as the files written by [Dir].
type SQL struct {
	db *sql.DB
}

// OpenSQL opens the sqlite database at dsn and creates the tables if
// needed.  Use ":memory:" for a private in-memory database.
func OpenSQL(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", dsn, err)
	}

	// sqlite serialises writers anyway, and ":memory:" databases are
	// private to one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	_, err = db.ExecContext(ctx, schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	inkcell.Logger().Debug("store opened", "driver", "sqlite", "dsn", dsn)
	return &SQL{db: db}, nil
}

// Close closes the underlying database.
func (s *SQL) Close() error {
	return s.db.Close()
}

// RegionMap implements the [Store] interface.
func (s *SQL) RegionMap(ctx context.Context, image string) ([]region.Run, error) {
	data, err := s.get(ctx, `SELECT data FROM regions WHERE image = ?`, image)
	if err != nil {
		return nil, err
	}
	return region.ReadRuns(bytes.NewReader(data))
}

// PutRegionMap implements the [Store] interface.
func (s *SQL) PutRegionMap(ctx context.Context, image string, runs []region.Run) error {
	buf := &bytes.Buffer{}
	err := region.WriteRuns(buf, runs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO regions (image, data) VALUES (?, ?)
		 ON CONFLICT(image) DO UPDATE SET data = excluded.data`,
		image, buf.Bytes())
	return err
}

// Cells implements the [Store] interface.
func (s *SQL) Cells(ctx context.Context, coloring string) (fill.Cache, error) {
	data, err := s.get(ctx, `SELECT data FROM cells WHERE coloring = ?`, coloring)
	if err != nil {
		return nil, err
	}
	return fill.ReadCache(bytes.NewReader(data))
}

// PutCells implements the [Store] interface.
func (s *SQL) PutCells(ctx context.Context, coloring string, cache fill.Cache) error {
	buf := &bytes.Buffer{}
	err := fill.WriteCache(buf, cache)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cells (coloring, data) VALUES (?, ?)
		 ON CONFLICT(coloring) DO UPDATE SET data = excluded.data`,
		coloring, buf.Bytes())
	return err
}

func (s *SQL) get(ctx context.Context, query, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}
