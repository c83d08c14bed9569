package ink

import (
	"image/color"
	"slices"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func line(x1, y1, x2, y2 float64) *Stroke {
	return NewStroke([]Point{
		{Pos: vec.Vec2{X: x1, Y: y1}, Pressure: 0.5},
		{Pos: vec.Vec2{X: x2, Y: y2}, Pressure: 0.5},
	}, DefaultAttributes(Pen, color.NRGBA{A: 255}))
}

func TestDefaultAttributes(t *testing.T) {
	a := DefaultAttributes(Pencil, color.NRGBA{G: 200, A: 255})
	if a.Width != DefaultWidth || a.Tool != Pencil {
		t.Errorf("unexpected attributes %v", a)
	}
	if a.Cap != graphics.LineCapRound || a.Join != graphics.LineJoinRound {
		t.Errorf("got cap %s and join %s", a.Cap, a.Join)
	}
}

func TestClone(t *testing.T) {
	s := line(1, 2, 3, 4)
	s.Selected = true

	c := s.Clone()
	if c == s {
		t.Fatal("clone is the same stroke")
	}
	if c.Selected {
		t.Error("clone is selected")
	}
	if !slices.Equal(c.Points, s.Points) || c.Attr != s.Attr {
		t.Error("clone differs from original")
	}
	c.Points[0].Pressure = 1
	if s.Points[0].Pressure != 0.5 {
		t.Error("clone shares points with original")
	}
}

func TestBounds(t *testing.T) {
	s := line(10, 20, 4, 25)
	expected := rect.Rect{LLx: 2.5, LLy: 18.5, URx: 11.5, URy: 26.5}
	if b := s.Bounds(); b != expected {
		t.Errorf("got %v, expected %v", b, expected)
	}
}

func TestPath(t *testing.T) {
	s := line(1, 1, 5, 1)
	var cmds []path.Command
	for cmd := range s.Path() {
		cmds = append(cmds, cmd)
	}
	if !slices.Equal(cmds, []path.Command{path.CmdMoveTo, path.CmdLineTo}) {
		t.Errorf("unexpected commands %v", cmds)
	}
}

func TestHits(t *testing.T) {
	s := line(0, 0, 10, 0)
	cases := []struct {
		a, b vec.Vec2
		hit  bool
	}{
		{vec.Vec2{X: 5, Y: -5}, vec.Vec2{X: 5, Y: 5}, true},
		{vec.Vec2{X: 5, Y: 1}, vec.Vec2{X: 5, Y: 5}, true}, // within width/2
		{vec.Vec2{X: 5, Y: 2}, vec.Vec2{X: 5, Y: 5}, false},
		{vec.Vec2{X: 12, Y: -5}, vec.Vec2{X: 12, Y: 5}, false},
		{vec.Vec2{X: 11, Y: 0}, vec.Vec2{X: 20, Y: 0}, true},
	}
	for _, c := range cases {
		if got := s.Hits(c.a, c.b); got != c.hit {
			t.Errorf("%v-%v: got %t, expected %t", c.a, c.b, got, c.hit)
		}
	}
}

func TestContainer(t *testing.T) {
	a := line(0, 0, 10, 0)
	b := line(0, 20, 10, 20)
	c := line(50, 50, 60, 60)

	var box Container
	box.Add(a, b, c, a)
	if box.Len() != 3 {
		t.Fatalf("got %d strokes, expected 3", box.Len())
	}

	sel := box.SelectWithLine(vec.Vec2{X: 5, Y: -10}, vec.Vec2{X: 5, Y: 30})
	if !slices.Equal(sel, []*Stroke{a, b}) {
		t.Errorf("selected %v", sel)
	}
	if !slices.Equal(box.Selected(), []*Stroke{a, b}) {
		t.Error("selection not recorded")
	}

	got := box.Overlapping(rect.Rect{LLx: 45, LLy: 45, URx: 100, URy: 100})
	if !slices.Equal(got, []*Stroke{c}) {
		t.Errorf("overlapping: %v", got)
	}

	deleted := box.DeleteSelected()
	if len(deleted) != 2 || box.Len() != 1 || !box.Contains(c) {
		t.Errorf("delete selected left %v", box.Strokes())
	}
	if a.Selected || b.Selected {
		t.Error("deleted strokes are still selected")
	}

	if n := box.Delete(a, c); n != 1 {
		t.Errorf("deleted %d strokes, expected 1", n)
	}
	box.Add(a, b)
	if all := box.Clear(); !slices.Equal(all, []*Stroke{a, b}) || box.Len() != 0 {
		t.Errorf("clear returned %v", all)
	}
}
