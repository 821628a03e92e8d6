package rerail

import (
	"slices"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// RailwayInfo is the editable description of a railway.
type RailwayInfo struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
	Level int    `json:"level" validate:"gte=0,lte=3"`
}

// StationInfo is the editable description of a station.
type StationInfo struct {
	Name  string `json:"name"`
	Level int    `json:"level" validate:"gte=0,lte=3"`
}

func (m *Map) railwayPtr(id RailwayID) (*Railway, error) {
	if !m.railways.Contains(id) {
		return nil, &ReferenceError{Kind: "railway", ID: id.String()}
	}
	return m.railways.Ptr(id), nil
}

func (m *Map) railwayPoint(id RailwayID, i int) (*Railway, error) {
	r, err := m.railwayPtr(id)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(r.Points) {
		return nil, &PointIndexError{Railway: id, Index: i, Len: len(r.Points)}
	}
	return r, nil
}

// NewRailway adds an empty railway.
func (m *Map) NewRailway(info RailwayInfo) (RailwayID, error) {
	if err := validateInput("railway info", info); err != nil {
		return RailwayID{}, err
	}
	return m.railways.Push(Railway{Name: info.Name, Color: info.Color, Level: info.Level}), nil
}

// RailwayInfo returns the name, color and level of a railway.
func (m *Map) RailwayInfo(id RailwayID) (RailwayInfo, error) {
	r, err := m.railwayPtr(id)
	if err != nil {
		return RailwayInfo{}, err
	}
	return RailwayInfo{Name: r.Name, Color: r.Color, Level: r.Level}, nil
}

// SetRailwayInfo replaces the name, color and level of a railway.
func (m *Map) SetRailwayInfo(id RailwayID, info RailwayInfo) error {
	if err := validateInput("railway info", info); err != nil {
		return err
	}
	r, err := m.railwayPtr(id)
	if err != nil {
		return err
	}
	r.Name, r.Color, r.Level = info.Name, info.Color, info.Level
	return nil
}

// RemoveRailway deletes a railway, detaching it from its stations first.
func (m *Map) RemoveRailway(id RailwayID) error {
	r, err := m.railwayPtr(id)
	if err != nil {
		return err
	}
	var attached []StationID
	for i := range r.Points {
		if sid := r.Points[i].Station; !sid.IsZero() && !slices.Contains(attached, sid) {
			attached = append(attached, sid)
		}
		r.Points[i].Station = StationID{}
	}
	for _, sid := range attached {
		m.dropStationRailway(sid, id)
	}
	m.railways.Delete(id)
	return nil
}

// InsertRailwayPoint inserts an unattached point before index i. An index
// equal to the point count appends.
func (m *Map) InsertRailwayPoint(id RailwayID, i int, c Coord) error {
	r, err := m.railwayPtr(id)
	if err != nil {
		return err
	}
	if i < 0 || i > len(r.Points) {
		return &PointIndexError{Railway: id, Index: i, Len: len(r.Points)}
	}
	r.Points = slices.Insert(r.Points, i, RailwayPoint{Coord: c})
	return nil
}

// AppendRailwayPoint adds an unattached point at the end of a railway.
func (m *Map) AppendRailwayPoint(id RailwayID, c Coord) error {
	r, err := m.railwayPtr(id)
	if err != nil {
		return err
	}
	r.Points = append(r.Points, RailwayPoint{Coord: c})
	return nil
}

// MoveRailwayPoint changes the coordinate of point i. A station attachment
// is kept.
func (m *Map) MoveRailwayPoint(id RailwayID, i int, c Coord) error {
	r, err := m.railwayPoint(id, i)
	if err != nil {
		return err
	}
	r.Points[i].Coord = c
	return nil
}

// RemoveRailwayPoint detaches point i from its station, if any, and removes
// it.
func (m *Map) RemoveRailwayPoint(id RailwayID, i int) error {
	if err := m.DetachStation(id, i); err != nil {
		return err
	}
	r := m.railways.Ptr(id)
	r.Points = slices.Delete(r.Points, i, i+1)
	return nil
}

// DetachStation clears the station of point i. The railway leaves the
// station's railway set once none of its points refer to the station, and
// the station is deleted once no railway is left. Detaching an unattached
// point does nothing.
func (m *Map) DetachStation(id RailwayID, i int) error {
	r, err := m.railwayPoint(id, i)
	if err != nil {
		return err
	}
	sid := r.Points[i].Station
	if sid.IsZero() {
		return nil
	}
	r.Points[i].Station = StationID{}
	for _, p := range r.Points {
		if p.Station == sid {
			return nil
		}
	}
	m.dropStationRailway(sid, id)
	return nil
}

func (m *Map) dropStationRailway(sid StationID, rid RailwayID) {
	st := m.stations.Ptr(sid)
	st.Railways = slices.DeleteFunc(st.Railways, func(r RailwayID) bool { return r == rid })
	if len(st.Railways) == 0 {
		m.stations.Delete(sid)
	}
}

func (m *Map) addStationRailway(sid StationID, rid RailwayID) {
	st := m.stations.Ptr(sid)
	if !slices.Contains(st.Railways, rid) {
		st.Railways = append(st.Railways, rid)
	}
}

// StationInfo returns the station attached to point i. ok is false when the
// point has no station.
func (m *Map) StationInfo(id RailwayID, i int) (info StationInfo, ok bool, err error) {
	r, err := m.railwayPoint(id, i)
	if err != nil {
		return StationInfo{}, false, err
	}
	sid := r.Points[i].Station
	if sid.IsZero() {
		return StationInfo{}, false, nil
	}
	st := m.stations.MustGet(sid)
	return StationInfo{Name: st.Name, Level: st.Level}, true, nil
}

// SetStationInfo updates the station attached to point i, or creates a new
// station served by this railway when the point has none.
func (m *Map) SetStationInfo(id RailwayID, i int, info StationInfo) error {
	if err := validateInput("station info", info); err != nil {
		return err
	}
	r, err := m.railwayPoint(id, i)
	if err != nil {
		return err
	}
	if sid := r.Points[i].Station; !sid.IsZero() {
		st := m.stations.Ptr(sid)
		st.Name, st.Level = info.Name, info.Level
		return nil
	}
	r.Points[i].Station = m.stations.Push(Station{
		Name:     info.Name,
		Level:    info.Level,
		Railways: []RailwayID{id},
	})
	return nil
}

// LinkToStation attaches unattached point i to the nearest station on
// another railway, measured in screen pixels of vp from at, within the
// config's LinkDistance. The point snaps to the station's coordinate. It
// reports whether a station was found.
func (m *Map) LinkToStation(id RailwayID, i int, vp *Viewport, at ScreenPoint) (bool, error) {
	r, err := m.railwayPoint(id, i)
	if err != nil {
		return false, err
	}
	if r.Points[i].HasStation() {
		return false, nil
	}

	limit := int64(m.config.LinkDistance) * int64(m.config.LinkDistance)
	best := limit + 1
	var found RailwayPoint
	for _, other := range m.railways.IDs() {
		if other == id {
			continue
		}
		for _, p := range m.railways.Ptr(other).Points {
			if !p.HasStation() {
				continue
			}
			if d := geom.DistSq(vp.ToScreen(p.Coord).coord(), at.coord()); d < best {
				best, found = d, p
			}
		}
	}
	if best > limit {
		return false, nil
	}

	r.Points[i] = found
	m.addStationRailway(found.Station, id)
	return true, nil
}
