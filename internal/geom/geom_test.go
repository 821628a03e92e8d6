package geom

import (
	"math/rand"
	"testing"
)

func TestRectContains(t *testing.T) {
	rect := NewRect(-1, 4, 2, 5)

	tests := []struct {
		name string
		pt   Coord
		want bool
	}{
		{"interior", C(3, 0), true},
		{"below bottom", C(3, 5), false},
		{"on bottom edge", C(3, 4), false},
		{"on top edge", C(3, -1), false},
		{"on left edge", C(2, 0), false},
		{"on right edge", C(5, 0), false},
		{"corner", C(2, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.pt); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestRectCrossesSegment(t *testing.T) {
	rect := NewRect(-1, 4, 2, 5)

	tests := []struct {
		name string
		a, b Coord
		want bool
	}{
		{"one endpoint inside", C(3, 0), C(1, 1), true},
		{"passes above corner", C(4, -2), C(6, -1), false},
		{"cuts right edge", C(4, -2), C(6, 1), true},
		{"cuts left edge", C(0, -1), C(6, 0), true},
		{"stays above", C(0, -1), C(6, -2), false},
		{"spans horizontally", C(0, 1), C(10, 1), true},
		{"spans vertically", C(3, -10), C(3, 10), true},
		{"vertical on left edge", C(2, -10), C(2, 10), false},
		{"vertical left of rect", C(1, -10), C(1, 10), false},
		{"vertical entirely above", C(3, -10), C(3, -1), false},
		{"vertical entirely below", C(3, 4), C(3, 10), false},
		{"vertical inside", C(3, 0), C(3, 1), true},
		{"horizontal on top edge", C(0, -1), C(10, -1), false},
		{"diagonal through both corners", C(1, -2), C(6, 5), true},
		{"far away", C(100, 100), C(200, 300), false},
		// collinear with a crossing point of the left edge but too short to reach it
		{"short collinear segment", C(-10, 0), C(-5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.CrossesSegment(tt.a, tt.b); got != tt.want {
				t.Errorf("CrossesSegment(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := rect.CrossesSegment(tt.b, tt.a); got != tt.want {
				t.Errorf("CrossesSegment(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestRectCrossesSegmentSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rect := NewRect(-20, 30, -10, 40)
	for i := 0; i < 20000; i++ {
		a := C(int32(rng.Intn(120)-60), int32(rng.Intn(120)-60))
		b := C(int32(rng.Intn(120)-60), int32(rng.Intn(120)-60))
		if rect.CrossesSegment(a, b) != rect.CrossesSegment(b, a) {
			t.Fatalf("CrossesSegment not symmetric for %v-%v", a, b)
		}
	}
}

func TestRectCrossesSegmentLargeCoordinates(t *testing.T) {
	// viewports sit around 1e9 world units
	rect := NewRect(1_000_000_000, 1_000_100_000, 1_000_000_000, 1_000_100_000)
	a := C(999_000_000, 1_000_050_000)
	b := C(1_001_000_000, 1_000_050_001)
	if !rect.CrossesSegment(a, b) {
		t.Errorf("expected long segment through the viewport to cross it")
	}
	if rect.CrossesSegment(C(999_000_000, 999_000_000), C(999_500_000, 1_000_050_000)) {
		t.Errorf("segment ending before the viewport must not cross it")
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(C(5, -1), C(2, 4))
	if r != NewRect(-1, 4, 2, 5) {
		t.Errorf("RectFromCorners = %v", r)
	}
	if r.Width() != 3 || r.Height() != 5 {
		t.Errorf("Width/Height = %d/%d, want 3/5", r.Width(), r.Height())
	}
}

func TestCoordCompare(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{C(0, 0), C(0, 0), 0},
		{C(0, 5), C(1, 0), -1},
		{C(1, 0), C(0, 5), 1},
		{C(1, 1), C(1, 2), -1},
		{C(1, 3), C(1, 2), 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistSq(t *testing.T) {
	if got := DistSq(C(0, 0), C(3, 4)); got != 25 {
		t.Errorf("DistSq = %d, want 25", got)
	}
	// would overflow in 32 bits
	if got := DistSq(C(-1_000_000_000, 0), C(1_000_000_000, 0)); got != 4_000_000_000_000_000_000 {
		t.Errorf("DistSq large = %d", got)
	}
}

func TestDistSqToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, q, a Coord
		want    int64
	}{
		{"before p", C(0, 0), C(10, 0), C(-3, 4), 25},
		{"after q", C(0, 0), C(10, 0), C(13, 4), 25},
		{"perpendicular", C(0, 0), C(10, 0), C(5, 7), 49},
		{"on segment", C(0, 0), C(10, 0), C(4, 0), 0},
		{"degenerate segment", C(2, 2), C(2, 2), C(5, 6), 25},
		{"diagonal", C(0, 0), C(10, 10), C(0, 10), 50},
		{"reversed direction", C(10, 0), C(0, 0), C(5, 3), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistSqToSegment(tt.p, tt.q, tt.a); got != tt.want {
				t.Errorf("DistSqToSegment(%v, %v, %v) = %d, want %d", tt.p, tt.q, tt.a, got, tt.want)
			}
		})
	}
}

func TestStationSegment(t *testing.T) {
	ptr := func(c Coord) *Coord { return &c }

	tests := []struct {
		name       string
		prev, next *Coord
		cur        Coord
		wantA      Coord
		wantB      Coord
	}{
		{"straight horizontal", ptr(C(0, 0)), ptr(C(20, 0)), C(10, 0), C(10, -100), C(10, 100)},
		{"first point", nil, ptr(C(20, 0)), C(10, 0), C(10, -100), C(10, 100)},
		{"last point", ptr(C(0, 0)), nil, C(10, 0), C(10, -100), C(10, 100)},
		{"vertical", ptr(C(0, 0)), ptr(C(0, 50)), C(0, 25), C(100, 25), C(-100, 25)},
		// right angle: tick lies on the diagonal bisector
		{"corner", ptr(C(-10, 0)), ptr(C(0, 10)), C(0, 0), C(71, -71), C(-71, 71)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := StationSegment(tt.prev, tt.cur, tt.next, 200)
			if !ok {
				t.Fatalf("StationSegment returned ok=false")
			}
			if a != tt.wantA || b != tt.wantB {
				t.Errorf("StationSegment = %v-%v, want %v-%v", a, b, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestStationSegmentDegenerate(t *testing.T) {
	cur := C(5, 5)
	if _, _, ok := StationSegment(nil, cur, nil, 200); ok {
		t.Error("expected ok=false without neighbors")
	}
	same := cur
	if _, _, ok := StationSegment(&same, cur, &same, 200); ok {
		t.Error("expected ok=false when neighbors coincide with cur")
	}
	next := C(5, 15)
	if _, _, ok := StationSegment(&same, cur, &next, 200); !ok {
		t.Error("expected coincident prev to fall back to next")
	}
}
