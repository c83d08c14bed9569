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


package compose

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a line segment of a stroke outline, in pixel coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts ink strokes to pixel coverage values, the fraction
// of each pixel's area covered by the stroke, ranging from 0 to 1.
// Coordinates are image pixel coordinates, so that the pixel (x, y)
// covers the unit square with lower left corner (x, y).
//
// Create one instance and reuse it for all strokes of an image.  Internal
// buffers grow as needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds output to this rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls arc and curve approximation accuracy in pixels.
	// Must be positive.
	Flatness float64

	// Width sets the stroke thickness in pixels.
	Width float64

	// Cap sets the style for stroke endpoints.
	Cap graphics.LineCapStyle

	// Join sets the style for stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit caps miter join length. Must be at least 1.0.
	MiterLimit float64

	smallPathThreshold int

	// buffers, reused across calls
	cover         []float32  // cover change per pixel; reused as output
	area          []float32  // area within pixel
	edges         []edge     // edge list for the current outline
	activeIdx     []int      // indices of active edges
	rowHasEdges   []bool     // per-scanline flag: true if any edge contributes
	stroke        []vec.Vec2 // stroke outline vertices (all subpaths contiguous)
	strokeOffsets []int      // start index of each stroke polygon in stroke[]

	segs             []strokeSegment // all segments from all subpaths, contiguous
	segsOffsets      []int           // start index of each subpath in segs
	subpathClosed    []bool          // whether each subpath is closed
	degeneratePoints []vec.Vec2      // subpaths without orientation

	edgeBBoxFirst bool // true if no edges added yet
	edgeXMin      float64
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64
}

// NewRasterizer returns a Rasterizer with the given clip rectangle.
// Other parameters are set to the PDF defaults.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1.0,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,

		smallPathThreshold: smallPathThreshold,
	}
}

// flattenQuadratic flattens a quadratic Bézier and calls emit for each
// line segment.  p0 is the current point, p1 the control point and p2 the
// end point.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if dev := e.Length(); dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier and calls emit for each line
// segment.  p0 is the current point, p1 and p2 are control points and p3
// is the end point.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	// Wang's formula
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		nFloat := math.Sqrt(3 * m / (4 * r.Flatness))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// addEdge adds an edge of the stroke outline.  Horizontal edges are
// skipped, since they do not contribute to coverage.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeXMin = min(p0.X, p1.X)
		r.edgeXMax = max(p0.X, p1.X)
		r.edgeYMin = min(p0.Y, p1.Y)
		r.edgeYMax = max(p0.Y, p1.Y)
		r.edgeBBoxFirst = false
	} else {
		r.edgeXMin = min(r.edgeXMin, p0.X, p1.X)
		r.edgeXMax = max(r.edgeXMax, p0.X, p1.X)
		r.edgeYMin = min(r.edgeYMin, p0.Y, p1.Y)
		r.edgeYMax = max(r.edgeYMax, p0.Y, p1.Y)
	}
}

// clippedBBox returns the pixel range touched by the collected edges,
// clamped to the clip rectangle.
func (r *Rasterizer) clippedBBox() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeYMax))+1, int(r.Clip.URy))

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy
//   area  = cover * (1 - xFrac)
//
// integrateScanline then computes
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
//
// which is the signed area of the outline within each pixel.

// accumulateEdge adds the contribution of e within scanline y to the
// cover and area buffers.  The buffers are indexed by x - bboxXMin.
func accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := min(xAtYTop, xAtYBot), max(xAtYTop, xAtYBot)
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		// entirely to the left of the buffer
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		accumulateEdgeInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge spans several pixel columns.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)

		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)
		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}

		coverVal := sign * float32(segDy)
		yMid := (segYMin + segYMax) / 2
		xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)
		areaVal := coverVal * float32(1-xFrac)

		if pix < bboxXMin {
			cover[0] += coverVal
			area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
	}
}

// accumulateEdgeInColumn handles the part of an edge which falls within a
// single pixel column.
func accumulateEdgeInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline converts accumulated cover and area values to
// coverage, using the nonzero winding rule.  The cover slice is modified
// in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		cov := raw
		if raw < 0 {
			cov = -raw
		}
		cover[i] = min(cov, 1)
	}
}

// trimZeros returns the non-zero portion of coverage and its offset.
// The result is nil if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmall rasterises the collected edges using 2D buffers.  This is
// used when the bounding box is smaller than smallPathThreshold.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]

		eyMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		eyMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := eyMin; y < eyMax; y++ {
			row := y - yMin
			off := row * width
			accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateScanline(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLarge rasterises the collected edges one scanline at a time, using
// an active edge list.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) && min(r.edges[nextEdge].y0, r.edges[nextEdge].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				// swap-remove
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Default values for rasterizer parameters.
const (
	// defaultFlatness is the default curve flattening tolerance in
	// pixels.  0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit is the default miter limit, matching PDF.
	// Joins with an interior angle below about 11.5 degrees become bevels.
	defaultMiterLimit = 10.0
)

// Numerical tolerances for the rasterizer.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers.  Larger outlines use the active edge list.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimum length for a stroke segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
