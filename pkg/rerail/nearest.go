package rerail

import (
	"slices"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// NearestSegment is a hit on a railway. With Inserting false, Index is the
// point that was hit; with Inserting true, the segment from Index to
// Index+1 was hit and a new point would go after Index.
type NearestSegment struct {
	Index     int  `json:"index"`
	Inserting bool `json:"inserting"`
}

// NearestBorder is a hit on the border graph: either a point, or the edge
// A-B with A < B.
type NearestBorder struct {
	Point BorderPointID
	A, B  BorderPointID
}

// IsEdge reports whether the hit is an edge rather than a point.
func (n NearestBorder) IsEdge() bool { return n.Point.IsZero() }

func newBorderEdgeHit(a, b BorderPointID) NearestBorder {
	if b.Less(a) {
		a, b = b, a
	}
	return NearestBorder{A: a, B: b}
}

// FindNearestSegment looks for the point of railway id closest to at, in
// screen pixels of vp, within maxDist. If no point is that close it looks
// for the closest segment instead. Ties go to the lowest index. ok is false
// when nothing is within reach or the railway does not exist.
func (m *Map) FindNearestSegment(vp *Viewport, id RailwayID, at ScreenPoint, maxDist int32) (NearestSegment, bool) {
	r, found := m.railways.Get(id)
	if !found || maxDist < 0 {
		return NearestSegment{}, false
	}
	limit := int64(maxDist) * int64(maxDist)
	p := at.coord()

	screen := make([]geom.Coord, len(r.Points))
	for i, rp := range r.Points {
		screen[i] = vp.ToScreen(rp.Coord).coord()
	}

	best, idx := limit+1, 0
	for i, c := range screen {
		if d := geom.DistSq(c, p); d < best {
			best, idx = d, i
		}
	}
	if best <= limit {
		return NearestSegment{Index: idx}, true
	}

	best, idx = limit+1, 0
	for i := 1; i < len(screen); i++ {
		if d := geom.DistSqToSegment(screen[i-1], screen[i], p); d < best {
			best, idx = d, i-1
		}
	}
	if best <= limit {
		return NearestSegment{Index: idx, Inserting: true}, true
	}
	return NearestSegment{}, false
}

// FindNearestBorder is FindNearestSegment for the border graph: the closest
// border point within maxDist pixels of at, or failing that the closest
// edge. Ties go to the lowest id.
func (m *Map) FindNearestBorder(vp *Viewport, at ScreenPoint, maxDist int32) (NearestBorder, bool) {
	if maxDist < 0 {
		return NearestBorder{}, false
	}
	limit := int64(maxDist) * int64(maxDist)
	p := at.coord()
	ids := m.borders.IDs()

	best := limit + 1
	var hit NearestBorder
	for _, id := range ids {
		c := vp.ToScreen(m.borders.Ptr(id).Coord).coord()
		if d := geom.DistSq(c, p); d < best {
			best, hit = d, NearestBorder{Point: id}
		}
	}
	if best <= limit {
		return hit, true
	}

	best = limit + 1
	for _, id := range ids {
		bp := m.borders.Ptr(id)
		a := vp.ToScreen(bp.Coord).coord()
		neighbors := slices.SortedFunc(slices.Values(bp.Neighbors), func(x, y BorderEdge) int {
			return x.To.Compare(y.To)
		})
		for _, e := range neighbors {
			if !id.Less(e.To) {
				continue
			}
			b := vp.ToScreen(m.borders.Ptr(e.To).Coord).coord()
			if d := geom.DistSqToSegment(a, b, p); d < best {
				best, hit = d, newBorderEdgeHit(id, e.To)
			}
		}
	}
	if best <= limit {
		return hit, true
	}
	return NearestBorder{}, false
}
