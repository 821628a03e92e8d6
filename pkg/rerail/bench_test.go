package rerail

import (
	"fmt"
	"testing"
)

// benchMap builds n railways of 50 points each spread over a 2,000,000 unit
// square, every tenth point a station.
func benchMap(b *testing.B, n int) *Map {
	b.Helper()
	m := NewMap()
	for i := range n {
		id, err := m.NewRailway(RailwayInfo{Name: fmt.Sprintf("r%d", i), Level: i % 4})
		if err != nil {
			b.Fatal(err)
		}
		y := int32(i * 2000000 / n)
		for j := range 50 {
			if err := m.AppendRailwayPoint(id, Coord{X: int32(j * 40000), Y: y + int32(j%7)*300}); err != nil {
				b.Fatal(err)
			}
			if j%10 == 0 {
				if err := m.SetStationInfo(id, j, StationInfo{Name: fmt.Sprintf("s%d-%d", i, j), Level: j % 4}); err != nil {
					b.Fatal(err)
				}
			}
		}
	}
	from, _, err := m.NewBorderSegment(Coord{X: 0, Y: 0}, Coord{X: 10000, Y: 10000}, 1)
	if err != nil {
		b.Fatal(err)
	}
	for i := range 200 {
		next, err := m.ConnectToNewBorderPoint(from, Coord{X: int32(i * 10000), Y: int32(i * 9000)}, i%3)
		if err != nil {
			b.Fatal(err)
		}
		from = next
	}
	return m
}

func BenchmarkRender(b *testing.B) {
	for _, zoom := range []int32{100, 1000, 5000} {
		b.Run(fmt.Sprintf("zoom=%d", zoom), func(b *testing.B) {
			m := benchMap(b, 500)
			vp, err := NewViewport(ViewportSpec{LeftX: 200000, TopY: 200000, Width: 1024, Height: 768, Zoom: zoom})
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for b.Loop() {
				m.Render(vp, RenderOptions{})
			}
		})
	}
}

func BenchmarkRailwaysInViewport(b *testing.B) {
	m := benchMap(b, 500)
	vp, err := NewViewport(ViewportSpec{LeftX: 200000, TopY: 200000, Width: 1024, Height: 768, Zoom: 1000})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for b.Loop() {
		m.RailwaysInViewport(vp)
	}
}

func BenchmarkSaveLoad(b *testing.B) {
	m := benchMap(b, 500)
	b.ResetTimer()
	for b.Loop() {
		data, err := m.Save()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := Load(data); err != nil {
			b.Fatal(err)
		}
	}
}
