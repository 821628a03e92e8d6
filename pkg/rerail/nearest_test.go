package rerail

import (
	"testing"
)

func TestFindNearestSegment(t *testing.T) {
	m := NewMap()
	id := newLine(t, m, "line", 0, pt(0, 0), pt(10, 0), pt(20, 0))
	vp := mustViewport(t, ViewportSpec{Width: 100, Height: 100, Zoom: 1})

	tests := []struct {
		name    string
		at      ScreenPoint
		maxDist int32
		want    NearestSegment
		ok      bool
	}{
		{"point wins over segment", ScreenPoint{10, 0}, 1, NearestSegment{Index: 1}, true},
		{"point within reach", ScreenPoint{19, 1}, 2, NearestSegment{Index: 2}, true},
		{"segment", ScreenPoint{5, 1}, 2, NearestSegment{Index: 0, Inserting: true}, true},
		{"second segment", ScreenPoint{15, -2}, 2, NearestSegment{Index: 1, Inserting: true}, true},
		{"out of reach", ScreenPoint{5, 5}, 2, NearestSegment{}, false},
		{"exactly at threshold", ScreenPoint{0, 3}, 3, NearestSegment{Index: 0}, true},
		{"negative distance", ScreenPoint{10, 0}, -1, NearestSegment{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.FindNearestSegment(vp, id, tt.at, tt.maxDist)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FindNearestSegment(%v, %d) = %+v, %v; want %+v, %v", tt.at, tt.maxDist, got, ok, tt.want, tt.ok)
			}
		})
	}

	if _, ok := m.FindNearestSegment(vp, RailwayID{}, ScreenPoint{}, 100); ok {
		t.Errorf("hit on the zero railway id")
	}
}

func TestFindNearestSegmentZoomed(t *testing.T) {
	m := NewMap()
	id := newLine(t, m, "line", 0, pt(1000, 1000), pt(1000, 2000))
	vp := mustViewport(t, ViewportSpec{LeftX: 500, TopY: 500, Width: 100, Height: 100, Zoom: 10})
	// (1000, 1500) projects to (50, 100)
	got, ok := m.FindNearestSegment(vp, id, ScreenPoint{52, 100}, 3)
	if !ok || got != (NearestSegment{Index: 0, Inserting: true}) {
		t.Errorf("got %+v, %v", got, ok)
	}
}

func TestFindNearestSegmentTieGoesToLowestIndex(t *testing.T) {
	m := NewMap()
	id := newLine(t, m, "line", 0, pt(0, 0), pt(4, 0), pt(0, 0))
	vp := mustViewport(t, ViewportSpec{Width: 10, Height: 10, Zoom: 1})
	got, ok := m.FindNearestSegment(vp, id, ScreenPoint{0, 0}, 1)
	if !ok || got != (NearestSegment{Index: 0}) {
		t.Errorf("got %+v, %v", got, ok)
	}
}

func TestFindNearestBorder(t *testing.T) {
	m := NewMap()
	a, b, _ := m.NewBorderSegment(pt(0, 0), pt(100, 0), 0)
	c, _ := m.ConnectToNewBorderPoint(b, pt(100, 100), 1)
	vp := mustViewport(t, ViewportSpec{Width: 200, Height: 200, Zoom: 1})

	tests := []struct {
		name string
		at   ScreenPoint
		want NearestBorder
		ok   bool
	}{
		{"point", ScreenPoint{99, 2}, NearestBorder{Point: b}, true},
		{"edge", ScreenPoint{50, 3}, NearestBorder{A: a, B: b}, true},
		{"other edge", ScreenPoint{103, 60}, NearestBorder{A: b, B: c}, true},
		{"nothing", ScreenPoint{50, 50}, NearestBorder{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.FindNearestBorder(vp, tt.at, 5)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FindNearestBorder(%v) = %+v, %v; want %+v, %v", tt.at, got, ok, tt.want, tt.ok)
			}
			if ok && got.IsEdge() && !got.A.Less(got.B) {
				t.Errorf("edge not normalized: %+v", got)
			}
		})
	}
}
