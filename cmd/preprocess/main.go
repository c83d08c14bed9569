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


// Command preprocess segments a coloring page template into cells and
// writes the region map next to the image.
//
// Usage:
//
//	preprocess [-out dir] [-outline file.png] [-threshold t] [-v] image...
//
// For every input image "name.ext" the region map is written to
// "name.preprocessing" in the output directory.  The file can be read
// with [region.ReadRuns] and [region.Load], using the size of the image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/inkcell"
	"seehuhn.de/go/inkcell/region"
	"seehuhn.de/go/inkcell/store"
)

func main() {
	var (
		outDir    = flag.String("out", "", "output directory (default: next to each image)")
		outline   = flag.String("outline", "", "write the outline layer of the (single) input image to this PNG file")
		threshold = flag.Float64("threshold", region.DefaultThreshold, "darkness above which a pixel is part of an outline")
		verbose   = flag.Bool("v", false, "log debug messages")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] image...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	inkcell.SetLogger(logger)

	if flag.NArg() == 0 || *outline != "" && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	seg := region.NewSegmenter()
	seg.Threshold = *threshold

	ctx := context.Background()
	failed := false
	for _, fname := range flag.Args() {
		err := preprocess(ctx, seg, fname, *outDir, *outline)
		if err != nil {
			logger.Error("preprocessing failed", "file", fname, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func preprocess(ctx context.Context, seg *region.Segmenter, fname, outDir, outline string) error {
	img, err := loadImage(fname)
	if err != nil {
		return err
	}

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(fname)
	}
	st, err := store.NewDir(dir)
	if err != nil {
		return err
	}

	m := seg.Segment(img)
	base := filepath.Base(fname)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	runs := m.Runs()
	err = st.PutRegionMap(ctx, name, runs)
	if err != nil {
		return err
	}
	inkcell.Logger().Info("image segmented",
		"file", fname,
		"width", m.Width(), "height", m.Height(),
		"cells", len(m.CellIDs()), "runs", len(runs),
		"output", filepath.Join(dir, name+store.RegionExt))

	if outline != "" {
		err = writePNG(outline, region.Outline(img))
		if err != nil {
			return err
		}
	}
	return nil
}

func loadImage(fname string) (image.Image, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	inkcell.Logger().Debug("image decoded", "file", fname, "format", format)
	return img, nil
}

func writePNG(fname string, img image.Image) error {
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
