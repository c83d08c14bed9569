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


// Command export writes the synthetic pages to testdata/pages: the
// rendered image as PNG, the region map in the preprocessing format, and
// the marker locations as JSON.
// Run from the module root directory.
package main

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/inkcell/region"
	"seehuhn.de/go/inkcell/store"
	"seehuhn.de/go/inkcell/testcases"
)

const outDir = "testdata/pages"

func main() {
	st, err := store.NewDir(outDir)
	if err != nil {
		panic(err)
	}

	var out struct {
		Pages []jsonPage `json:"pages"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, page := range testcases.All[category] {
			name := category + "_" + page.Name
			img := page.Render()

			if err := writePNG(filepath.Join(outDir, name+".png"), img); err != nil {
				panic(err)
			}
			m := region.Segment(img)
			if err := st.PutRegionMap(context.Background(), name, m.Runs()); err != nil {
				panic(err)
			}
			out.Pages = append(out.Pages, toJSON(name, page, m))
		}
	}

	f, err := os.Create(filepath.Join(outDir, "pages.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonPage struct {
	Name    string       `json:"name"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Cells   int          `json:"cells"`
	Markers []jsonMarker `json:"markers,omitempty"`
}

type jsonMarker struct {
	At   []float64 `json:"at"`
	Cell uint32    `json:"cell"`
}

func toJSON(name string, page testcases.Page, m *region.Map) jsonPage {
	jp := jsonPage{
		Name:   name,
		Width:  page.Width,
		Height: page.Height,
		Cells:  len(m.CellIDs()),
	}
	for _, p := range page.Markers {
		jp.Markers = append(jp.Markers, jsonMarker{
			At:   []float64{p.At.X, p.At.Y},
			Cell: m.CellIDAt(p.At),
		})
	}
	return jp
}

func writePNG(fname string, img *image.RGBA) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
