package compose

import (
	"image"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// coverageMap runs a stroke and collects the coverage of every pixel.
func coverageMap(r *Rasterizer, p path.Path) map[image.Point]float32 {
	res := make(map[image.Point]float32)
	r.Stroke(p, func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			res[image.Pt(xMin+i, y)] = c
		}
	})
	return res
}

func TestStrokeCoverage(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 2
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 8, Y: 5}).
		Iter()
	cov := coverageMap(r, p)

	const epsilon = 1e-6
	for y := range 10 {
		for x := range 10 {
			var expected float32
			if x >= 2 && x < 8 && (y == 4 || y == 5) {
				expected = 1
			}
			if got := cov[image.Pt(x, y)]; math.Abs(float64(got-expected)) > epsilon {
				t.Errorf("pixel (%d,%d): got %.4f, expected %.4f", x, y, got, expected)
			}
		}
	}
}

func TestStrokeClosed(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.Width = 2
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 12, Y: 2}).
		LineTo(vec.Vec2{X: 12, Y: 12}).
		LineTo(vec.Vec2{X: 2, Y: 12}).
		Close().
		Iter()
	cov := coverageMap(r, p)

	cases := []struct {
		x, y     int
		expected float32
	}{
		{7, 7, 0},   // inside the square
		{1, 7, 1},   // left side
		{12, 7, 1},  // right side
		{1, 1, 1},   // mitred corner
		{12, 12, 1}, // mitred corner
		{14, 7, 0},  // outside
	}
	for _, c := range cases {
		if got := cov[image.Pt(c.x, c.y)]; math.Abs(float64(got-c.expected)) > 1e-6 {
			t.Errorf("pixel (%d,%d): got %.4f, expected %.4f", c.x, c.y, got, c.expected)
		}
	}
}

func TestStrokeCurve(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 20, URy: 12})
	r.Width = 2
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 10}).
		QuadTo(vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 20, Y: 10}).
		Iter()
	cov := coverageMap(r, p)

	// The curve passes through (10, 5) with a horizontal tangent.
	if got := cov[image.Pt(10, 4)]; got < 0.7 {
		t.Errorf("apex: got coverage %.4f", got)
	}
	for _, pt := range []image.Point{{10, 1}, {10, 8}} {
		if got := cov[pt]; got != 0 {
			t.Errorf("pixel %v: got coverage %.4f, expected 0", pt, got)
		}
	}
}

func TestStrokeDot(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 5, Y: 5}).
		Iter()

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 4
	r.Cap = graphics.LineCapRound
	cov := coverageMap(r, p)
	var total float32
	for _, c := range cov {
		total += c
	}
	// the inscribed polygon is slightly smaller than the circle
	if area := float64(total); area > 4*math.Pi+1e-3 || area < 0.85*4*math.Pi {
		t.Errorf("dot has area %.3f, expected about %.3f", area, 4*math.Pi)
	}

	r.Cap = graphics.LineCapButt
	if cov := coverageMap(r, p); len(cov) != 0 {
		t.Errorf("butt cap dot drew %d pixels", len(cov))
	}
}

// TestLargeStroke checks that the scanline rasteriser, used for large
// outlines, agrees with the buffered one.
func TestLargeStroke(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 3, Y: 3}).
		LineTo(vec.Vec2{X: 290, Y: 280}).
		LineTo(vec.Vec2{X: 20, Y: 290}).
		Iter()
	clip := rect.Rect{URx: 300, URy: 300}

	large := NewRasterizer(clip)
	large.Width = 5
	large.Join = graphics.LineJoinRound
	small := NewRasterizer(clip)
	small.Width = 5
	small.Join = graphics.LineJoinRound
	small.smallPathThreshold = math.MaxInt

	a := coverageMap(large, p)
	b := coverageMap(small, p)
	if len(a) == 0 {
		t.Fatal("nothing drawn")
	}
	for pt, ca := range a {
		if cb := b[pt]; math.Abs(float64(ca-cb)) > 1e-4 {
			t.Errorf("pixel %v: %.5f != %.5f", pt, ca, cb)
		}
	}
	for pt, cb := range b {
		if _, ok := a[pt]; !ok && cb > 1e-4 {
			t.Errorf("pixel %v only drawn by the buffered rasteriser", pt)
		}
	}
}
