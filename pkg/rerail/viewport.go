package rerail

import (
	"fmt"
	"math"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// ViewportSpec describes a screen rectangle: the world position of its top
// left corner, its size in pixels and the number of world units per pixel.
type ViewportSpec struct {
	LeftX  int32 `json:"leftX" yaml:"leftX" toml:"leftX"`
	TopY   int32 `json:"topY" yaml:"topY" toml:"topY"`
	Width  int32 `json:"width" yaml:"width" toml:"width" validate:"gte=0"`
	Height int32 `json:"height" yaml:"height" toml:"height" validate:"gte=0"`
	Zoom   int32 `json:"zoom" yaml:"zoom" toml:"zoom" validate:"gte=1"`
}

// ScreenPoint is a position in viewport pixels.
type ScreenPoint struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func (p ScreenPoint) coord() geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

// Viewport projects world coordinates onto a screen.
type Viewport struct {
	spec ViewportSpec
	box  geom.Rect
}

// NewViewport validates spec and builds the viewport. The covered world
// rectangle must fit in int32 coordinates.
func NewViewport(spec ViewportSpec) (*Viewport, error) {
	if err := validateInput("viewport", spec); err != nil {
		return nil, err
	}
	bottom := int64(spec.TopY) + int64(spec.Height)*int64(spec.Zoom)
	right := int64(spec.LeftX) + int64(spec.Width)*int64(spec.Zoom)
	if bottom > math.MaxInt32 || right > math.MaxInt32 {
		return nil, &InputError{What: "viewport", Err: fmt.Errorf("extent (%d, %d) exceeds the coordinate range", right, bottom)}
	}
	return &Viewport{
		spec: spec,
		box:  geom.NewRect(spec.TopY, int32(bottom), spec.LeftX, int32(right)),
	}, nil
}

// Spec returns the spec the viewport was built from.
func (v *Viewport) Spec() ViewportSpec { return v.spec }

// Zoom returns the world units per pixel.
func (v *Viewport) Zoom() int32 { return v.spec.Zoom }

// BoundingBox returns the world rectangle covered by the viewport.
func (v *Viewport) BoundingBox() Rect { return v.box }

// Contains reports whether c lies strictly inside the viewport.
func (v *Viewport) Contains(c Coord) bool { return v.box.Contains(c) }

// CrossesSegment reports whether segment ab touches the viewport's interior.
func (v *Viewport) CrossesSegment(a, b Coord) bool { return v.box.CrossesSegment(a, b) }

// ToScreen converts a world coordinate to pixels. Division truncates toward
// zero, so points left of or above the origin round toward it.
func (v *Viewport) ToScreen(c Coord) ScreenPoint {
	z := int64(v.spec.Zoom)
	return ScreenPoint{
		X: int32((int64(c.X) - int64(v.spec.LeftX)) / z),
		Y: int32((int64(c.Y) - int64(v.spec.TopY)) / z),
	}
}

// ToWorld converts a pixel position to the world coordinate of its top left
// corner, clamped to the coordinate range.
func (v *Viewport) ToWorld(p ScreenPoint) Coord {
	z := int64(v.spec.Zoom)
	return Coord{
		X: clamp32(int64(p.X)*z + int64(v.spec.LeftX)),
		Y: clamp32(int64(p.Y)*z + int64(v.spec.TopY)),
	}
}

func clamp32(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}
