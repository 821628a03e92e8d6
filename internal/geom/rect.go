package geom

import "fmt"

// Rect is an axis-aligned open rectangle in world units.
//
// Top < Bottom and Left < Right. Points on the boundary are not contained.
type Rect struct {
	Top    int32 `json:"top"`
	Bottom int32 `json:"bottom"`
	Left   int32 `json:"left"`
	Right  int32 `json:"right"`
}

// NewRect creates a rectangle from its four edges.
func NewRect(top, bottom, left, right int32) Rect {
	return Rect{Top: top, Bottom: bottom, Left: left, Right: right}
}

// RectFromCorners returns the rectangle spanned by two opposite corners.
func RectFromCorners(a, b Coord) Rect {
	return Rect{
		Top:    min(a.Y, b.Y),
		Bottom: max(a.Y, b.Y),
		Left:   min(a.X, b.X),
		Right:  max(a.X, b.X),
	}
}

// Width returns Right-Left.
func (r Rect) Width() int64 { return int64(r.Right) - int64(r.Left) }

// Height returns Bottom-Top.
func (r Rect) Height() int64 { return int64(r.Bottom) - int64(r.Top) }

func (r Rect) String() string {
	return fmt.Sprintf("[top=%d bottom=%d left=%d right=%d]", r.Top, r.Bottom, r.Left, r.Right)
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p Coord) bool {
	return r.Top < p.Y && p.Y < r.Bottom && r.Left < p.X && p.X < r.Right
}

// CrossesSegment reports whether the closed segment a-b meets r.
//
// The test is symmetric in a and b and exact as long as coordinate
// differences fit in 31 bits; products are evaluated in 64 bits.
func (r Rect) CrossesSegment(a, b Coord) bool {
	if a.X == b.X {
		if !between(r.Left, a.X, r.Right) {
			return false
		}
		lo, hi := min(a.Y, b.Y), max(a.Y, b.Y)
		return hi > r.Top && lo < r.Bottom
	}

	if r.Contains(a) || r.Contains(b) {
		return true
	}

	if segmentCrossesVerticalLine(a.X, a.Y, b.X, b.Y, r.Left, r.Top, r.Bottom) {
		return true
	}
	if segmentCrossesVerticalLine(a.X, a.Y, b.X, b.Y, r.Right, r.Top, r.Bottom) {
		return true
	}
	// horizontal edges: same test with the axes swapped
	if segmentCrossesVerticalLine(a.Y, a.X, b.Y, b.X, r.Top, r.Left, r.Right) {
		return true
	}
	return segmentCrossesVerticalLine(a.Y, a.X, b.Y, b.X, r.Bottom, r.Left, r.Right)
}

// between reports whether x lies strictly between lo and hi, in either order.
func between(lo, x, hi int32) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo < x && x < hi
}

// segmentCrossesVerticalLine reports whether the segment (ax,ay)-(bx,by)
// meets the vertical line at x strictly between ylo and yhi.
//
// x must lie strictly inside the segment's x-extent; otherwise a collinear
// extension of the segment could match.
func segmentCrossesVerticalLine(ax, ay, bx, by, x, ylo, yhi int32) bool {
	if ax == bx || !between(ax, x, bx) {
		return false
	}
	// y(x)-ay = (x-ax)/(bx-ax)*(by-ay), scaled by (bx-ax)
	dx := int64(bx) - int64(ax)
	t := (int64(x) - int64(ax)) * (int64(by) - int64(ay))
	lo := (int64(ylo) - int64(ay)) * dx
	hi := (int64(yhi) - int64(ay)) * dx
	if dx > 0 {
		return lo < t && t < hi
	}
	return lo > t && t > hi
}
