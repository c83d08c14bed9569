package session

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inkcell/fill"
	"seehuhn.de/go/inkcell/ink"
	"seehuhn.de/go/inkcell/region"
	"seehuhn.de/go/inkcell/store"
	"seehuhn.de/go/inkcell/testcases"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// Positions in the 64x64 page with 3x3 cells.
var (
	inCell1  = vec.Vec2{X: 10.5, Y: 10.5}
	inCell5  = vec.Vec2{X: 30.5, Y: 30.5}
	inCell5b = vec.Vec2{X: 25.5, Y: 35.5}
	inCell6  = vec.Vec2{X: 50.5, Y: 25.5}
	onLine   = vec.Vec2{X: 21, Y: 30.5}
)

func newGrid(t *testing.T) *Coloring {
	t.Helper()
	return New(region.Segment(testcases.Grid(64, 3).Render()))
}

func line(a, b vec.Vec2) *ink.Stroke {
	return ink.NewStroke([]ink.Point{{Pos: a, Pressure: 1}, {Pos: b, Pressure: 1}},
		ink.DefaultAttributes(ink.Pen, blue))
}

func TestFillCellAt(t *testing.T) {
	c := newGrid(t)
	id := c.Cells().CellIDAt(inCell5)

	if c.FillCellAt(inCell1, inCell5, red) {
		t.Error("fill across cells")
	}
	if c.FillCellAt(onLine, onLine, red) {
		t.Error("fill on an outline")
	}
	if c.CanUndo() {
		t.Error("no-op was recorded")
	}

	if !c.FillCellAt(inCell5, inCell5b, red) {
		t.Fatal("fill failed")
	}
	if got := c.Fill().ColorOf(id); got != red {
		t.Errorf("cell colour %v, expected %v", got, red)
	}
	if c.FillCellAt(inCell5, inCell5, red) {
		t.Error("repeated fill reported a change")
	}

	if !c.Undo() {
		t.Fatal("undo failed")
	}
	if c.Fill().HasFilledCells() {
		t.Error("undo did not clear the cell")
	}
	if !c.Redo() {
		t.Fatal("redo failed")
	}
	if got := c.Fill().ColorOf(id); got != red {
		t.Errorf("after redo: cell colour %v, expected %v", got, red)
	}

	if !c.EraseCellAt(inCell5, inCell5) {
		t.Fatal("erase failed")
	}
	if c.Fill().HasFilledCells() {
		t.Error("erase left the cell filled")
	}
	c.Undo()
	if got := c.Fill().ColorOf(id); got != red {
		t.Errorf("after undoing the erase: cell colour %v, expected %v", got, red)
	}
}

func TestFillErasesInk(t *testing.T) {
	c := newGrid(t)
	c.CollectStrokes(line(inCell5, inCell5b), line(inCell1, inCell1.Add(vec.Vec2{X: 3})))
	c.EndTransaction()

	c.FillCellAt(inCell5, inCell5, red)
	if c.Ink().Len() != 1 {
		t.Fatalf("%d strokes left, expected 1", c.Ink().Len())
	}
	start, _ := c.Ink().Strokes()[0].Start()
	if start != inCell1 {
		t.Errorf("wrong stroke erased")
	}

	// ink and colour come back in one step
	c.Undo()
	if c.Ink().Len() != 2 {
		t.Errorf("%d strokes after undo, expected 2", c.Ink().Len())
	}
	if c.Fill().HasFilledCells() {
		t.Error("fill was not undone")
	}
	c.Undo()
	if c.Ink().Len() != 0 {
		t.Errorf("%d strokes after second undo, expected 0", c.Ink().Len())
	}
}

func TestClearAll(t *testing.T) {
	c := newGrid(t)
	c.FillCellAt(inCell1, inCell1, red)
	c.FillCellAt(inCell5, inCell5, blue)
	c.CollectStrokes(line(inCell6, inCell6.Add(vec.Vec2{Y: 4})))
	before := c.Fill().Cache()

	c.ClearAll()
	if c.Ink().Len() != 0 || c.Fill().HasFilledCells() {
		t.Fatal("page not cleared")
	}

	c.Undo()
	if c.Ink().Len() != 1 {
		t.Errorf("%d strokes after undo, expected 1", c.Ink().Len())
	}
	after := c.Fill().Cache()
	if len(after) != len(before) {
		t.Errorf("cache after undo %v, expected %v", after, before)
	}
	for id, col := range before {
		if after[id] != col {
			t.Errorf("cell %d: %v, expected %v", id, after[id], col)
		}
	}

	// clearing an empty page records nothing
	c = newGrid(t)
	c.ClearAll()
	if c.CanUndo() {
		t.Error("clearing an empty page was recorded")
	}
}

func TestEraseAlong(t *testing.T) {
	c := newGrid(t)
	c.CollectStrokes(line(inCell5, inCell5b))
	c.EndTransaction()

	if got := c.EraseAlong(inCell1, inCell1.Add(vec.Vec2{X: 1})); len(got) != 0 {
		t.Errorf("erased %d strokes far away", len(got))
	}
	a := vec.Vec2{X: 23.5, Y: 32.5}
	if got := c.EraseAlong(a, a.Add(vec.Vec2{X: 6})); len(got) != 1 {
		t.Fatalf("erased %d strokes, expected 1", len(got))
	}
	if c.Ink().Len() != 0 {
		t.Error("stroke still present")
	}
	c.Undo()
	if c.Ink().Len() != 1 {
		t.Error("undo did not restore the stroke")
	}
}

func TestEraseAlongKeepsSelection(t *testing.T) {
	c := newGrid(t)
	hit := line(inCell5, inCell5b)
	other := line(inCell1, inCell1.Add(vec.Vec2{X: 3}))
	c.CollectStrokes(hit, other)
	c.EndTransaction()
	other.Selected = true

	a := vec.Vec2{X: 23.5, Y: 32.5}
	got := c.EraseAlong(a, a.Add(vec.Vec2{X: 6}))
	if len(got) != 1 || got[0] != hit {
		t.Fatalf("erased %v, expected only the stroke under the eraser", got)
	}
	if !c.Ink().Contains(other) || c.Ink().Contains(hit) {
		t.Error("wrong strokes left on the page")
	}
	if !other.Selected || hit.Selected {
		t.Error("selection flags changed")
	}

	c.Undo()
	if c.Ink().Len() != 2 {
		t.Errorf("undo left %d strokes, expected 2", c.Ink().Len())
	}
}

func pt(p vec.Vec2) ink.Point {
	return ink.Point{Pos: p, Pressure: 0.5}
}

func TestPen(t *testing.T) {
	c := newGrid(t)
	c.Attr = ink.DefaultAttributes(ink.Pencil, red)

	c.PenDown()
	u := c.PenMove([]ink.Point{pt(vec.Vec2{X: 25.5, Y: 25.5}), pt(inCell6), pt(inCell5b)})
	if !u.Completed || len(u.Wet) != 2 {
		t.Fatalf("unexpected update %v", u)
	}
	if id := c.ActiveCell(); id != c.Cells().CellIDAt(inCell5) {
		t.Errorf("active cell %d", id)
	}
	if strokes := c.DrainManufactured(); len(strokes) != 0 {
		t.Errorf("%d strokes manufactured before release", len(strokes))
	}

	c.PenUp()
	strokes := c.DrainManufactured()
	if len(strokes) != 1 {
		t.Fatalf("%d strokes manufactured, expected 1", len(strokes))
	}
	s := strokes[0]
	if s.Attr.Tool != ink.Pencil || s.Attr.Color != red {
		t.Errorf("wrong attributes %v", s.Attr)
	}
	if end := s.Points[len(s.Points)-1].Pos; end != inCell5b {
		t.Errorf("stroke ends at %v", end)
	}
	if !c.Ink().Contains(s) {
		t.Error("stroke not added")
	}

	c.Undo()
	if c.Ink().Len() != 0 {
		t.Error("undo did not remove the stroke")
	}
}

func TestPenConcurrent(t *testing.T) {
	c := newGrid(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			c.PenDown()
			c.PenMove([]ink.Point{pt(vec.Vec2{X: 25.5, Y: 25.5}), pt(inCell6), pt(inCell5b)})
			c.PenUp()
		}
	}()

	total := 0
	for range 50 {
		total += len(c.DrainManufactured())
	}
	wg.Wait()
	total += len(c.DrainManufactured())

	if total != 50 {
		t.Errorf("%d strokes manufactured, expected 50", total)
	}
	if c.Ink().Len() != 50 {
		t.Errorf("%d strokes in the container, expected 50", c.Ink().Len())
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = Open(ctx, st, "grid", 64, 64, "")
	if !errors.Is(err, ErrPreprocessingMissing) {
		t.Errorf("got %v, expected ErrPreprocessingMissing", err)
	}

	m := region.Segment(testcases.Grid(64, 3).Render())
	err = st.PutRegionMap(ctx, "grid", m.Runs())
	if err != nil {
		t.Fatal(err)
	}

	_, err = Open(ctx, st, "grid", 32, 64, "")
	if !errors.Is(err, region.ErrMalformed) {
		t.Errorf("got %v, expected ErrMalformed", err)
	}

	c, err := Open(ctx, st, "grid", 64, 64, "")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() == "" {
		t.Error("no name generated")
	}
	if c.Fill().HasFilledCells() {
		t.Error("new coloring has filled cells")
	}
	c.FillCellAt(inCell5, inCell5, red)
	err = c.Save(ctx)
	if err != nil {
		t.Fatal(err)
	}

	c2, err := Open(ctx, st, "grid", 64, 64, c.Name())
	if err != nil {
		t.Fatal(err)
	}
	if got := c2.Fill().ColorOf(c2.Cells().CellIDAt(inCell5)); got != red {
		t.Errorf("restored colour %v, expected %v", got, red)
	}
	if c2.CanUndo() {
		t.Error("restored coloring has undo history")
	}
}

func TestOpenBadCache(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenSQL(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	m := region.Segment(testcases.Grid(64, 3).Render())
	err = st.PutRegionMap(ctx, "grid", m.Runs())
	if err != nil {
		t.Fatal(err)
	}
	err = st.PutCells(ctx, "old", fill.Cache{999: red, 1: blue})
	if err != nil {
		t.Fatal(err)
	}

	c, err := Open(ctx, st, "grid", 64, 64, "old")
	if err != nil {
		t.Fatal(err)
	}
	cache := c.Fill().Cache()
	if len(cache) != 1 || cache[1] != blue {
		t.Errorf("got cache %v", cache)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	c := newGrid(t)
	if err := c.Save(context.Background()); err == nil {
		t.Error("expected an error")
	}
}

func TestImage(t *testing.T) {
	page := testcases.Grid(64, 3).Render()
	c := New(region.Segment(page))
	c.FillCellAt(inCell5, inCell5, red)
	c.CollectStrokes(line(inCell1, inCell1.Add(vec.Vec2{X: 4})))

	img := c.Image(page)
	if got := img.RGBAAt(30, 30); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("filled cell: got %v", got)
	}
	if got := img.RGBAAt(12, 10); got.B < 250 || got.R > 5 {
		t.Errorf("ink: got %v", got)
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("empty cell: got %v", got)
	}
}
