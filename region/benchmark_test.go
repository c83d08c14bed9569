package region

import (
	"fmt"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/inkcell/testcases"
)

// BenchmarkSegmentO benchmarks segmenting an "O" shape.
func BenchmarkSegmentO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			img := testcases.Ring(size).Render()
			s := NewSegmenter()

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				s.Segment(img)
			}
		})
	}
}

// BenchmarkLoad benchmarks expanding a region file of a 2000x2000 grid.
func BenchmarkLoad(b *testing.B) {
	page := testcases.Grid(2000, 20)
	runs := Segment(page.Render()).Runs()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := Load(runs, page.Width, page.Height); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCellIDAt(b *testing.B) {
	m := Segment(testcases.Ring(200).Render())
	p := vec.Vec2{X: 100.5, Y: 99.25}

	for b.Loop() {
		m.CellIDAt(p)
	}
}
