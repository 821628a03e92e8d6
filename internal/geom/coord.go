// Package geom implements the integer geometry used by the map model: exact
// world coordinates, open rectangles, segment crossing tests and squared
// distances.
//
// All persisted geometry is integral. Floating point only appears in the
// station tick construction, whose output is rounded back to integers.
package geom

import "fmt"

// Coord is an exact point in world units.
type Coord struct {
	X int32 `codec:"x" json:"x"`
	Y int32 `codec:"y" json:"y"`
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int32) Coord {
	return Coord{X: x, Y: y}
}

// Add returns c+d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns c-d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{X: c.X - d.X, Y: c.Y - d.Y}
}

// Compare orders coordinates lexicographically by X, then Y.
// It returns -1, 0 or +1.
func (c Coord) Compare(d Coord) int {
	switch {
	case c.X < d.X:
		return -1
	case c.X > d.X:
		return 1
	case c.Y < d.Y:
		return -1
	case c.Y > d.Y:
		return 1
	}
	return 0
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// DistSq returns the squared Euclidean distance between p and q.
// The result is exact for any pair of int32 coordinates.
func DistSq(p, q Coord) int64 {
	dx := int64(p.X) - int64(q.X)
	dy := int64(p.Y) - int64(q.Y)
	return dx*dx + dy*dy
}

// DistSqToSegment returns the squared distance from a to the closed segment
// p-q.
//
// With d = q-p and w = p-a the squared distance along the segment is
// f(t) = A*t^2 + B*t + C for t in [0, 1], where A = d.d, B = 2*d.w and
// C = w.w. The minimum is at p when B >= 0, at q when B <= -2A, and
// C - B^2/(4A) otherwise.
func DistSqToSegment(p, q, a Coord) int64 {
	dx := int64(q.X) - int64(p.X)
	dy := int64(q.Y) - int64(p.Y)
	wx := int64(p.X) - int64(a.X)
	wy := int64(p.Y) - int64(a.Y)

	ca := dx*dx + dy*dy
	cb := 2 * (dx*wx + dy*wy)
	cc := wx*wx + wy*wy

	if cb >= 0 {
		return cc
	}
	if cb <= -2*ca {
		return ca + cb + cc
	}
	// only the quotient leaves integer arithmetic
	d := cc - int64(float64(cb)*float64(cb)/float64(4*ca))
	if d < 0 {
		return 0
	}
	return d
}
