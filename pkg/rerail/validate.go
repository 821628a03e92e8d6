package rerail

import (
	"fmt"
	"slices"
)

func invariantf(format string, args ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the cross-references between stations, railways and
// border points. Edits keep a map valid; Validate exists for data read from
// outside and for tests.
func (m *Map) Validate() error {
	for sid, st := range m.Stations() {
		if st.Level < 0 || st.Level > MaxStationLevel {
			return invariantf("station %v: level %d", sid, st.Level)
		}
		if len(st.Railways) == 0 {
			return invariantf("station %v: no railways", sid)
		}
		for i, rid := range st.Railways {
			if slices.Contains(st.Railways[:i], rid) {
				return invariantf("station %v: railway %v listed twice", sid, rid)
			}
			r, ok := m.railways.Get(rid)
			if !ok {
				return invariantf("station %v: unknown railway %v", sid, rid)
			}
			if !slices.ContainsFunc(r.Points, func(p RailwayPoint) bool { return p.Station == sid }) {
				return invariantf("station %v: railway %v has no point at the station", sid, rid)
			}
		}
	}

	for rid, r := range m.Railways() {
		if r.Level < 0 || r.Level > MaxRailwayLevel {
			return invariantf("railway %v: level %d", rid, r.Level)
		}
		for i, p := range r.Points {
			if !p.HasStation() {
				continue
			}
			st, ok := m.stations.Get(p.Station)
			if !ok {
				return invariantf("railway %v point %d: unknown station %v", rid, i, p.Station)
			}
			if !slices.Contains(st.Railways, rid) {
				return invariantf("railway %v point %d: station %v does not list the railway", rid, i, p.Station)
			}
		}
	}

	for id, bp := range m.BorderPoints() {
		if len(bp.Neighbors) == 0 {
			return invariantf("border point %v: no neighbors", id)
		}
		for i, e := range bp.Neighbors {
			if e.To == id {
				return invariantf("border point %v: edge to itself", id)
			}
			if e.Level < 0 || e.Level > MaxBorderLevel {
				return invariantf("border edge %v-%v: level %d", id, e.To, e.Level)
			}
			if slices.ContainsFunc(bp.Neighbors[:i], func(o BorderEdge) bool { return o.To == e.To }) {
				return invariantf("border edge %v-%v: listed twice", id, e.To)
			}
			other, ok := m.borders.Get(e.To)
			if !ok {
				return invariantf("border point %v: unknown neighbor %v", id, e.To)
			}
			j := slices.IndexFunc(other.Neighbors, func(o BorderEdge) bool { return o.To == id })
			if j < 0 {
				return invariantf("border edge %v-%v: not mirrored", id, e.To)
			}
			if other.Neighbors[j].Level != e.Level {
				return invariantf("border edge %v-%v: levels %d and %d differ", id, e.To, e.Level, other.Neighbors[j].Level)
			}
		}
	}
	return nil
}
