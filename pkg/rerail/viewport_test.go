package rerail

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func mustViewport(t *testing.T, spec ViewportSpec) *Viewport {
	t.Helper()
	vp, err := NewViewport(spec)
	if err != nil {
		t.Fatalf("NewViewport(%+v): %v", spec, err)
	}
	return vp
}

func TestNewViewport(t *testing.T) {
	vp := mustViewport(t, ViewportSpec{LeftX: -100, TopY: 50, Width: 30, Height: 20, Zoom: 10})
	want := Rect{Top: 50, Bottom: 250, Left: -100, Right: 200}
	if got := vp.BoundingBox(); got != want {
		t.Errorf("BoundingBox = %v, want %v", got, want)
	}

	bad := []ViewportSpec{
		{Width: 10, Height: 10, Zoom: 0},
		{Width: -1, Height: 10, Zoom: 1},
		{Width: 10, Height: -1, Zoom: 1},
		{LeftX: math.MaxInt32 - 10, Width: 100, Height: 1, Zoom: 1},
		{Width: 1, Height: math.MaxInt32, Zoom: 2},
	}
	for _, spec := range bad {
		var input *InputError
		if _, err := NewViewport(spec); !errors.As(err, &input) {
			t.Errorf("NewViewport(%+v) = %v, want *InputError", spec, err)
		}
	}
}

func TestToScreenTruncates(t *testing.T) {
	vp := mustViewport(t, ViewportSpec{LeftX: 0, TopY: 0, Width: 100, Height: 100, Zoom: 10})
	tests := []struct {
		in   Coord
		want ScreenPoint
	}{
		{pt(0, 0), ScreenPoint{0, 0}},
		{pt(19, 25), ScreenPoint{1, 2}},
		// toward zero, not toward negative infinity
		{pt(-19, -5), ScreenPoint{-1, 0}},
		{pt(-20, -21), ScreenPoint{-2, -2}},
	}
	for _, tt := range tests {
		if got := vp.ToScreen(tt.in); got != tt.want {
			t.Errorf("ToScreen(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToWorld(t *testing.T) {
	vp := mustViewport(t, ViewportSpec{LeftX: -1000, TopY: 500, Width: 100, Height: 100, Zoom: 7})
	for _, p := range []ScreenPoint{{0, 0}, {13, 99}, {-4, 200}} {
		if got := vp.ToScreen(vp.ToWorld(p)); got != p {
			t.Errorf("ToScreen(ToWorld(%v)) = %v", p, got)
		}
	}
	big := mustViewport(t, ViewportSpec{Width: 1, Height: 1, Zoom: 1 << 20})
	if got := big.ToWorld(ScreenPoint{X: 1 << 20, Y: -(1 << 20)}); got != pt(math.MaxInt32, math.MinInt32) {
		t.Errorf("ToWorld did not clamp: %v", got)
	}
}

func TestRailwaysInViewport(t *testing.T) {
	m := NewMap()
	inside := newLine(t, m, "inside", 3, pt(10, 10), pt(20, 20))
	newLine(t, m, "outside", 3, pt(500, 500), pt(600, 600))
	passing := newLine(t, m, "passing", 3, pt(-50, 50), pt(150, 50))
	newLine(t, m, "single point", 3, pt(50, 50))

	vp := mustViewport(t, ViewportSpec{Width: 100, Height: 100, Zoom: 1})
	got := m.RailwaysInViewport(vp)
	if !slices.Equal(got.IDs, []RailwayID{inside, passing}) {
		t.Errorf("IDs = %v", got.IDs)
	}
	if !slices.Equal(got.Names, []string{"inside", "passing"}) {
		t.Errorf("Names = %v", got.Names)
	}
}

func TestLODFiltering(t *testing.T) {
	m := NewMap()
	trunk := newLine(t, m, "trunk", 3, pt(1, 1), pt(2_000_000, 2_000_000))
	local := newLine(t, m, "local", 0, pt(1, 1), pt(2_000_000, 2_000_000))

	tests := []struct {
		zoom int32
		want []RailwayID
	}{
		{50, []RailwayID{trunk, local}},
		{100, []RailwayID{trunk, local}},
		{500, []RailwayID{trunk}},
		{5000, []RailwayID{trunk}},
		{10000, []RailwayID{trunk}},
		{10001, nil},
	}
	for _, tt := range tests {
		vp := mustViewport(t, ViewportSpec{Width: 100, Height: 100, Zoom: tt.zoom})
		if got := m.RailwaysInViewport(vp).IDs; !slices.Equal(got, tt.want) {
			t.Errorf("zoom %d: visible %v, want %v", tt.zoom, got, tt.want)
		}
		groups := m.Render(vp, RenderOptions{}).Groups()
		if groups != len(tt.want) {
			t.Errorf("zoom %d: %d groups rendered, want %d", tt.zoom, groups, len(tt.want))
		}
	}
}

func TestLODTableFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LOD.Railway[0] = 1000
	m := NewMapWithConfig(cfg)
	local := newLine(t, m, "local", 0, pt(1, 1), pt(2_000_000, 2_000_000))
	vp := mustViewport(t, ViewportSpec{Width: 100, Height: 100, Zoom: 500})
	if got := m.RailwaysInViewport(vp).IDs; !slices.Equal(got, []RailwayID{local}) {
		t.Errorf("visible = %v", got)
	}
}
