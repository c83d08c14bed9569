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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a line segment of a flattened path.
type strokeSegment struct {
	A, B vec.Vec2 // end points
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// Stroke renders the path as a stroked outline using Width, Cap, Join and
// MiterLimit.  The emit callback receives coverage row by row; its slice
// argument is valid only during the call.
//
// A subpath which has no extent is drawn as a dot if Cap is round, and
// is omitted otherwise.
func (r *Rasterizer) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	// All outlines go into one buffer and are filled together with the
	// nonzero rule, so that places where a stroke overlaps itself are
	// painted only once.
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			start := len(r.stroke)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
			r.strokeOffsets = append(r.strokeOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		start := len(r.stroke)
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i])
		if len(r.stroke)-start >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, start)
		} else {
			r.stroke = r.stroke[:start]
		}
	}

	r.fillStrokeOutlines(emit)
}

// subpathSegments returns the segments of subpath i.
func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenPath walks the path, flattens curves and fills r.segs,
// r.segsOffsets, r.subpathClosed and r.degeneratePoints.
func (r *Rasterizer) flattenPath(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var current, subpathStart vec.Vec2
	startIdx := 0
	inSubpath := false
	sawDrawing := false

	endSubpath := func(closed bool) {
		if len(r.segs) == startIdx {
			r.degeneratePoints = append(r.degeneratePoints, subpathStart)
		} else {
			r.segsOffsets = append(r.segsOffsets, startIdx)
			r.subpathClosed = append(r.subpathClosed, closed)
		}
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath && (len(r.segs) > startIdx || sawDrawing) {
				endSubpath(false)
			}
			current = pts[0]
			subpathStart = current
			startIdx = len(r.segs)
			inSubpath = true
			sawDrawing = false

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sawDrawing = true
			r.addStrokeSegment(current, pts[0])
			current = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			sawDrawing = true
			r.flattenQuadratic(current, pts[0], pts[1], r.addStrokeSegment)
			current = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			sawDrawing = true
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addStrokeSegment)
			current = pts[2]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if current != subpathStart {
				r.addStrokeSegment(current, subpathStart)
			}
			endSubpath(true)
			current = subpathStart
			startIdx = len(r.segs)
			inSubpath = false
			sawDrawing = false
		}
	}

	if inSubpath && (len(r.segs) > startIdx || sawDrawing) {
		endSubpath(false)
	}
}

// addStrokeSegment appends a segment to r.segs.  Segments of zero length
// are skipped.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeSubpath appends the outline of one subpath to r.stroke.
//
// The outline is a single polygon: a forward pass along the +N side,
// followed by a backward pass along the -N side.  Join geometry goes on
// the outer side of each corner, which depends on the turn direction.
func (r *Rasterizer) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2

	if closed {
		r.strokeClosed(segs, d)
		return
	}

	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	// forward pass, +N side
	skipNextA := false
	for i := range segs {
		seg := &segs[i]
		if !skipNextA {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skipNextA = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			continue
		}
		next := &segs[i+1]
		sinTheta := cross(seg.T, next.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		case sinTheta > 0:
			// +N is the inner side
			skipNextA = r.addInnerCorner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	// backward pass, -N side
	skipNextB := false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skipNextB {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skipNextB = false
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			continue
		}
		prev := &segs[i-1]
		sinTheta := cross(prev.T, seg.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		case sinTheta > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			// -N is the inner side
			skipNextB = r.addInnerCorner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

// strokeClosed appends the outline of a closed subpath to r.stroke.
// There are no caps; the closing corner gets a join like every other
// corner.
func (r *Rasterizer) strokeClosed(segs []strokeSegment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]
	sinClose := cross(last.T, first.T)

	// forward pass, +N side
	r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
	for i := range segs {
		seg := &segs[i]
		next := first
		sinTheta := sinClose
		if i < len(segs)-1 {
			next = &segs[i+1]
			sinTheta = cross(seg.T, next.T)
		}
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)), next.A.Add(next.N.Mul(d)))
		case sinTheta > 0:
			r.addInnerCorner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
			r.stroke = append(r.stroke, next.A.Add(next.N.Mul(d)))
		}
	}

	// backward pass, -N side, starting with the closing corner
	switch {
	case math.Abs(sinClose) < collinearityThreshold:
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)), last.B.Sub(last.N.Mul(d)))
	case sinClose > 0:
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		r.addJoin(first.A, last.T, first.T, d, false)
		r.stroke = append(r.stroke, last.B.Sub(last.N.Mul(d)))
	default:
		r.addInnerCorner(first.A, last.T, first.T, last.N, first.N, d, false)
	}
	for i := len(segs) - 1; i > 0; i-- {
		seg := &segs[i]
		prev := &segs[i-1]
		sinTheta := cross(prev.T, seg.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
		case sinTheta > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
			r.stroke = append(r.stroke, prev.B.Sub(prev.N.Mul(d)))
		default:
			r.addInnerCorner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
	r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
}

// cross returns the z component of the cross product of a and b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// addCap adds a line cap at P.  T is the unit tangent pointing away from
// the line and d is half the stroke width.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		// semicircle from +N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// innerIntersection returns the point where the two inner offset lines
// of the corner at P meet.  The result is false for nearly collinear
// segments.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, positiveSide bool) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}

	// cos(θ/2)
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	dir := N1.Add(N2)
	if !positiveSide {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (halfAngle * l))), true
}

// addInnerCorner adds the inner side of the corner at P.  If the two
// offset lines intersect, only the intersection is added and the result
// is true; the caller must then skip the next offset point.
func (r *Rasterizer) addInnerCorner(P, T1, T2, N1, N2 vec.Vec2, d float64, positiveSide bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, positiveSide); ok {
		r.stroke = append(r.stroke, pt)
		return true
	}
	if positiveSide {
		r.stroke = append(r.stroke, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin adds the outer side of the corner at P, where the tangent
// changes from T1 to T2.  positiveSide tells which side of the outline is
// being built.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positiveSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)
	if math.Abs(sinTheta) < collinearityThreshold {
		return
	}

	if cosTheta < cuspCosineThreshold {
		// the path doubles back on itself
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length is 1/sin(φ/2), where φ is the interior angle
		// of the corner.  sin(φ/2) = cos(θ/2) = sqrt((1 + cosθ) / 2).
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
			bisector := N1.Add(N2)
			if !positiveSide {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.stroke = append(r.stroke, P.Add(bisector.Mul(d/(sinHalf*l))))
			}
		}
		// otherwise a bevel

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if positiveSide {
			// from +N of T1 to +N of T2
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta > 0 {
				r.addArc(P, d, N1, angle, false)
			} else {
				r.addArc(P, d, N1, -angle, false)
			}
		} else {
			// from -N of T2 back to -N of T1
			N2 := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				r.addArc(P, d, N2, -angle, false)
			} else {
				r.addArc(P, d, N2, angle, false)
			}
		}
	}
}

// addArc adds the vertices of a circular arc to the outline.  startDir is
// the unit vector from center to the start of the arc, and sweep is the
// angle in radians, positive for counter-clockwise.  If includeStart is
// false, the caller has already added the start point.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	rotate := func(angle float64) vec.Vec2 {
		cos, sin := math.Cos(angle), math.Sin(angle)
		return vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
	}

	if radius < r.Flatness {
		if includeStart {
			r.stroke = append(r.stroke, center.Add(startDir.Mul(radius)))
		}
		r.stroke = append(r.stroke, center.Add(rotate(sweep).Mul(radius)))
		return
	}

	// A chord subtending the angle θ deviates from the circle by at most
	// radius*(1 - cos(θ/2)).
	step := 2 * math.Acos(1-r.Flatness/radius)
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/step)), 1)

	dt := sweep / float64(n)
	i0 := 0
	if !includeStart {
		i0 = 1
	}
	for i := i0; i <= n; i++ {
		r.stroke = append(r.stroke, center.Add(rotate(float64(i)*dt).Mul(radius)))
	}
}

// fillStrokeOutlines fills all collected outline polygons as one compound
// path, using the nonzero winding rule.
func (r *Rasterizer) fillStrokeOutlines(emit func(y, xMin int, coverage []float32)) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		if len(poly) < 2 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	xMin, xMax, yMin, yMax, ok := r.clippedBBox()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, emit)
	}
}
