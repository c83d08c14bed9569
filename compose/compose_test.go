package compose

import (
	"image"
	"image/color"
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/ink"
	"seehuhn.de/go/inkcell/region"
	"seehuhn.de/go/inkcell/testcases"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func polyline(attr ink.Attributes, xy ...float64) *ink.Stroke {
	var pts []ink.Point
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, ink.Point{Pos: vec.Vec2{X: xy[i], Y: xy[i+1]}, Pressure: 1})
	}
	return ink.NewStroke(pts, attr)
}

// near reports whether two colours differ by at most a small amount in
// every channel.
func near(a color.RGBA, b color.NRGBA) bool {
	d := func(x, y uint8) bool { return max(x, y)-min(x, y) <= 4 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestImage(t *testing.T) {
	page := testcases.Grid(64, 3).Render()
	cells := region.Segment(page)
	e := fill.New(cells)
	e.FillCell(cells.CellIDAt(vec.Vec2{X: 30.5, Y: 30.5}), red)

	s := polyline(ink.DefaultAttributes(ink.Pen, blue), 5, 10.5, 15, 10.5)
	img := Image(Layers{Fills: e.Pixels(), Strokes: []*ink.Stroke{s}, Template: page})

	if img.Bounds() != page.Bounds() {
		t.Fatalf("bounds %v, expected %v", img.Bounds(), page.Bounds())
	}
	cases := []struct {
		x, y     int
		expected color.NRGBA
	}{
		{30, 30, red},
		{10, 10, blue},
		{10, 14, white},
		{50, 50, white},
		{21, 30, black}, // outline
		{0, 0, black},   // frame
	}
	for _, c := range cases {
		got := img.RGBAAt(c.x, c.y)
		if !near(got, c.expected) {
			t.Errorf("pixel (%d,%d): got %v, expected %v", c.x, c.y, got, c.expected)
		}
	}
}

func TestImageEmpty(t *testing.T) {
	img := Image(Layers{})
	if !img.Bounds().Empty() {
		t.Errorf("got bounds %v", img.Bounds())
	}
}

func TestCaps(t *testing.T) {
	b := image.Rect(0, 0, 20, 20)
	cases := []struct {
		cap     graphics.LineCapStyle
		covered bool
	}{
		{graphics.LineCapButt, false},
		{graphics.LineCapRound, true},
		{graphics.LineCapSquare, true},
	}
	for _, c := range cases {
		t.Run(c.cap.String(), func(t *testing.T) {
			attr := ink.DefaultAttributes(ink.Pen, blue)
			attr.Cap = c.cap
			s := polyline(attr, 5, 10.5, 15, 10.5)
			img := Image(Layers{Fills: image.NewNRGBA(b), Strokes: []*ink.Stroke{s}})

			if got := img.RGBAAt(10, 10); !near(got, blue) {
				t.Errorf("centre: got %v", got)
			}
			got := img.RGBAAt(4, 10)
			if c.covered && near(got, white) {
				t.Error("cap missing")
			} else if !c.covered && !near(got, white) {
				t.Errorf("unexpected cap: %v", got)
			}
		})
	}
}

func TestJoins(t *testing.T) {
	b := image.Rect(0, 0, 20, 20)
	cases := []struct {
		join     graphics.LineJoinStyle
		expected color.NRGBA
	}{
		{graphics.LineJoinMiter, blue},
		{graphics.LineJoinBevel, white},
	}
	for _, c := range cases {
		t.Run(c.join.String(), func(t *testing.T) {
			attr := ink.DefaultAttributes(ink.Pen, blue)
			attr.Width = 4
			attr.Cap = graphics.LineCapButt
			attr.Join = c.join
			s := polyline(attr, 5, 5, 15, 5, 15, 15)
			img := Image(Layers{Fills: image.NewNRGBA(b), Strokes: []*ink.Stroke{s}})

			if got := img.RGBAAt(16, 3); !near(got, c.expected) {
				t.Errorf("outer corner: got %v, expected %v", got, c.expected)
			}
			if got := img.RGBAAt(14, 10); !near(got, blue) {
				t.Errorf("second segment: got %v", got)
			}
		})
	}
}

func TestSinglePoint(t *testing.T) {
	b := image.Rect(0, 0, 10, 10)
	s := polyline(ink.DefaultAttributes(ink.Pen, blue), 5, 5, 5, 5)
	img := Image(Layers{Fills: image.NewNRGBA(b), Strokes: []*ink.Stroke{s}})
	if got := img.RGBAAt(5, 5); near(got, white) {
		t.Error("dot not drawn")
	}
	if got := img.RGBAAt(8, 8); !near(got, white) {
		t.Errorf("dot too large: %v", got)
	}
}
