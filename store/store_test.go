package store

import (
	"context"
	"errors"
	"image/color"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/region"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	dir, err := NewDir(filepath.Join(t.TempDir(), "pages"))
	if err != nil {
		t.Fatal(err)
	}
	db, err := OpenSQL(ctx, filepath.Join(t.TempDir(), "inkcell.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	mem, err := OpenSQL(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { mem.Close() })

	return map[string]Store{"dir": dir, "sqlite": db, "memory": mem}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	runs := []region.Run{{CellID: 0, Length: 11}, {CellID: 1, Length: 3}, {CellID: 0, Length: 2}}
	cache := fill.Cache{
		1: {R: 255, A: 255},
		7: {G: 10, B: 20, A: 128},
	}

	stores := openStores(t)
	for _, name := range slices.Sorted(maps.Keys(stores)) {
		st := stores[name]
		t.Run(name, func(t *testing.T) {
			err := st.PutRegionMap(ctx, "page", runs)
			if err != nil {
				t.Fatal(err)
			}
			gotRuns, err := st.RegionMap(ctx, "page")
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(gotRuns, runs) {
				t.Errorf("got runs %v, expected %v", gotRuns, runs)
			}

			err = st.PutCells(ctx, "mine", cache)
			if err != nil {
				t.Fatal(err)
			}
			gotCache, err := st.Cells(ctx, "mine")
			if err != nil {
				t.Fatal(err)
			}
			if !maps.Equal(gotCache, cache) {
				t.Errorf("got cache %v, expected %v", gotCache, cache)
			}

			// overwrite
			err = st.PutCells(ctx, "mine", fill.Cache{3: color.NRGBA{A: 255}})
			if err != nil {
				t.Fatal(err)
			}
			gotCache, err = st.Cells(ctx, "mine")
			if err != nil {
				t.Fatal(err)
			}
			if len(gotCache) != 1 || gotCache[3] != (color.NRGBA{A: 255}) {
				t.Errorf("overwrite: got %v", gotCache)
			}

			// empty caches are valid
			err = st.PutCells(ctx, "empty", fill.Cache{})
			if err != nil {
				t.Fatal(err)
			}
			gotCache, err = st.Cells(ctx, "empty")
			if err != nil {
				t.Fatal(err)
			}
			if len(gotCache) != 0 {
				t.Errorf("empty: got %v", gotCache)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	stores := openStores(t)
	for _, name := range slices.Sorted(maps.Keys(stores)) {
		st := stores[name]
		t.Run(name, func(t *testing.T) {
			_, err := st.RegionMap(ctx, "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("region map: got %v, expected ErrNotFound", err)
			}
			_, err = st.Cells(ctx, "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("cells: got %v, expected ErrNotFound", err)
			}
		})
	}
}

func TestDirLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}

	err = d.PutRegionMap(ctx, "page", []region.Run{{CellID: 2, Length: 5}})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(root, "page"+RegionExt))
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{2, 0, 0, 0, 5, 0, 0, 0}
	if string(data) != string(expected) {
		t.Errorf("got % x, expected % x", data, expected)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestDirMalformed(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(root, "bad"+RegionExt), []byte{1, 2, 3}, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.RegionMap(ctx, "bad")
	if !errors.Is(err, region.ErrMalformed) {
		t.Errorf("got %v, expected ErrMalformed", err)
	}
}

func TestDirInvalidName(t *testing.T) {
	ctx := context.Background()
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "..", "a/b", `a\b`} {
		err := d.PutCells(ctx, name, fill.Cache{})
		if err == nil {
			t.Errorf("%q: expected an error", name)
		}
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.RegionMap(ctx, "page")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}
}
