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


// Command genpdf cross-checks the synthetic pages against an independent
// renderer.  It writes every page as a PDF, renders it to PNG using
// Ghostscript and reports pages where segmenting the Ghostscript
// rendering gives a different number of cells.
package main

import (
	"fmt"
	"image/png"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/inkcell/region"
	"seehuhn.de/go/inkcell/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	failed := 0
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, page := range testcases.All[category] {
			name := category + "_" + page.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(page, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			n, err := countCells(pngPath)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if page.Cells > 0 && n != page.Cells {
				fmt.Printf("%s: Ghostscript rendering has %d cells, expected %d\n",
					name, n, page.Cells)
				failed++
			}
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func generatePDF(page testcases.Page, pdfPath string) error {
	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: float64(page.Width),
		URy: float64(page.Height),
	}

	out, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	out.SetFillColor(color.DeviceGray(1))
	out.Rectangle(0, 0, float64(page.Width), float64(page.Height))
	out.Fill()

	// PDF origin is bottom-left; pages use top-left.
	out.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(page.Height)})

	out.SetFillColor(color.DeviceGray(0))
	var cur vec.Vec2
	for cmd, pts := range page.Ink {
		switch cmd {
		case path.CmdMoveTo:
			out.MoveTo(pts[0].X, pts[0].Y)
			cur = pts[0]
		case path.CmdLineTo:
			out.LineTo(pts[0].X, pts[0].Y)
			cur = pts[0]
		case path.CmdQuadTo:
			// PDF has no quadratic curves
			c1 := cur.Add(pts[0].Sub(cur).Mul(2.0 / 3.0))
			c2 := pts[1].Add(pts[0].Sub(pts[1]).Mul(2.0 / 3.0))
			out.CurveTo(c1.X, c1.Y, c2.X, c2.Y, pts[1].X, pts[1].Y)
			cur = pts[1]
		case path.CmdCubeTo:
			out.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			cur = pts[2]
		case path.CmdClose:
			out.ClosePath()
		}
	}
	out.Fill()

	return out.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func countCells(pngPath string) (int, error) {
	fd, err := os.Open(pngPath)
	if err != nil {
		return 0, err
	}
	defer fd.Close()
	img, err := png.Decode(fd)
	if err != nil {
		return 0, err
	}
	return len(region.Segment(img).CellIDs()), nil
}
