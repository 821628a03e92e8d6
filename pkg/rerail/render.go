package rerail

import (
	"slices"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// RenderOptions carries editor state that changes what Render draws without
// touching the map.
type RenderOptions struct {
	// SelectedRailway gets markers on its points.
	SelectedRailway RailwayID
	// RailwayDrag previews moving or inserting a point of the selected
	// railway at the mouse position.
	RailwayDrag *RailwayDrag
	// BorderDrag previews moving a border point, or splitting a border
	// edge, at the mouse position.
	BorderDrag *BorderDrag
	// ExtraBorderSegment previews a new border edge from a point to the
	// mouse position.
	ExtraBorderSegment *ExtraBorderSegment
}

// RailwayDrag is an in-progress drag on the selected railway.
type RailwayDrag struct {
	Target NearestSegment
	Mouse  ScreenPoint
}

// BorderDrag is an in-progress drag on the border graph.
type BorderDrag struct {
	Target NearestBorder
	Mouse  ScreenPoint
}

// ExtraBorderSegment is a border edge being drawn.
type ExtraBorderSegment struct {
	From  BorderPointID
	Mouse ScreenPoint
	Level int
}

// StationLabel is a station name placed at a screen position.
type StationLabel struct {
	Name string `json:"name"`
	X    int32  `json:"x"`
	Y    int32  `json:"y"`
}

// RenderingInfo is a flat list of stroke groups. Group i has color
// Colors[i], width Widths[i] and style Styles[i]; its points are the next
// PointCounts[i] entries of PointsX and PointsY, taken in pairs as
// independent segments.
type RenderingInfo struct {
	Colors      []Color        `json:"colors"`
	Widths      []int32        `json:"widths"`
	Styles      []StrokeStyle  `json:"styles"`
	PointCounts []int32        `json:"pointCounts"`
	PointsX     []int32        `json:"pointsX"`
	PointsY     []int32        `json:"pointsY"`
	MarkersX    []int32        `json:"markersX"`
	MarkersY    []int32        `json:"markersY"`
	Stations    []StationLabel `json:"stations"`
}

// Groups returns the number of stroke groups.
func (ri *RenderingInfo) Groups() int { return len(ri.Colors) }

type renderer struct {
	vp  *Viewport
	out *RenderingInfo
	seg []ScreenPoint
}

func (r *renderer) segment(a, b Coord) {
	if r.vp.CrossesSegment(a, b) {
		r.seg = append(r.seg, r.vp.ToScreen(a), r.vp.ToScreen(b))
	}
}

// flush closes the pending segments as one group. Empty groups are dropped.
func (r *renderer) flush(color Color, width int32, style StrokeStyle) {
	if len(r.seg) == 0 {
		return
	}
	r.out.Colors = append(r.out.Colors, color)
	r.out.Widths = append(r.out.Widths, width)
	r.out.Styles = append(r.out.Styles, style)
	r.out.PointCounts = append(r.out.PointCounts, int32(len(r.seg)))
	for _, p := range r.seg {
		r.out.PointsX = append(r.out.PointsX, p.X)
		r.out.PointsY = append(r.out.PointsY, p.Y)
	}
	r.seg = r.seg[:0]
}

func (r *renderer) marker(c Coord) {
	if r.vp.Contains(c) {
		p := r.vp.ToScreen(c)
		r.out.MarkersX = append(r.out.MarkersX, p.X)
		r.out.MarkersY = append(r.out.MarkersY, p.Y)
	}
}

// Render extracts everything visible in vp as stroke groups, in order:
// one group per visible railway, one group of station ticks, and one group
// per border level. Entities are visited in id order.
func (m *Map) Render(vp *Viewport, opts RenderOptions) *RenderingInfo {
	r := &renderer{vp: vp, out: &RenderingInfo{}}
	cfg := m.config
	zoom := vp.Zoom()

	type visible struct {
		level  int
		points []RailwayPoint
	}
	var railways []visible

	for _, id := range m.railways.IDs() {
		rw := m.railways.Ptr(id)
		if !cfg.LOD.RailwayVisible(rw.Level, zoom) {
			continue
		}
		points := rw.Points
		if id == opts.SelectedRailway {
			points = previewRailway(vp, points, opts.RailwayDrag)
			for _, p := range points {
				r.marker(p.Coord)
			}
		}
		railways = append(railways, visible{level: rw.Level, points: points})

		for i := 1; i < len(points); i++ {
			r.segment(points[i-1].Coord, points[i].Coord)
		}
		r.flush(rw.Color, cfg.RailwayWidth, StyleSolid)
	}

	labeled := make(map[StationID]bool)
	for _, rw := range railways {
		for i, p := range rw.points {
			if !p.HasStation() || !vp.Contains(p.Coord) {
				continue
			}
			st := m.stations.Ptr(p.Station)
			if !cfg.LOD.StationVisible(rw.level, st.Level, zoom) {
				continue
			}
			var prev, next *Coord
			if i > 0 {
				prev = &rw.points[i-1].Coord
			}
			if i+1 < len(rw.points) {
				next = &rw.points[i+1].Coord
			}
			a, b, ok := geom.StationSegment(prev, p.Coord, next, cfg.StationTickLength)
			if ok {
				r.seg = append(r.seg, vp.ToScreen(a), vp.ToScreen(b))
			}
			if !labeled[p.Station] {
				labeled[p.Station] = true
				at := vp.ToScreen(p.Coord)
				r.out.Stations = append(r.out.Stations, StationLabel{Name: st.Name, X: at.X, Y: at.Y})
			}
		}
	}
	r.flush(cfg.StationColor, cfg.StationWidth, StyleSolid)

	m.renderBorders(r, opts)
	return r.out
}

// previewRailway returns points with drag applied. The map's slice is never
// modified.
func previewRailway(vp *Viewport, points []RailwayPoint, drag *RailwayDrag) []RailwayPoint {
	if drag == nil {
		return points
	}
	mouse := vp.ToWorld(drag.Mouse)
	i := drag.Target.Index
	if drag.Target.Inserting {
		if i < 0 || i >= len(points) {
			return points
		}
		return slices.Insert(slices.Clone(points), i+1, RailwayPoint{Coord: mouse})
	}
	if i < 0 || i >= len(points) {
		return points
	}
	out := slices.Clone(points)
	out[i].Coord = mouse
	return out
}

func (m *Map) renderBorders(r *renderer, opts RenderOptions) {
	cfg := m.config
	var moved BorderPointID
	var split NearestBorder
	var mouse Coord
	if d := opts.BorderDrag; d != nil {
		mouse = r.vp.ToWorld(d.Mouse)
		if d.Target.IsEdge() {
			split = d.Target
		} else {
			moved = d.Target.Point
		}
	}
	coordOf := func(id BorderPointID) Coord {
		if !moved.IsZero() && id == moved {
			return mouse
		}
		return m.borders.Ptr(id).Coord
	}

	ids := m.borders.IDs()
	for level := range MaxBorderLevel + 1 {
		for _, id := range ids {
			for _, e := range m.borders.Ptr(id).Neighbors {
				if e.Level != level || !id.Less(e.To) {
					continue
				}
				a, b := coordOf(id), coordOf(e.To)
				if !split.A.IsZero() && split.A == id && split.B == e.To {
					r.segment(a, mouse)
					r.segment(mouse, b)
					continue
				}
				r.segment(a, b)
			}
		}
		if x := opts.ExtraBorderSegment; x != nil && x.Level == level && m.borders.Contains(x.From) {
			r.segment(coordOf(x.From), r.vp.ToWorld(x.Mouse))
		}
		r.flush(cfg.BorderColor, cfg.BorderStyles[level].Width, cfg.BorderStyles[level].Style)
	}
}
