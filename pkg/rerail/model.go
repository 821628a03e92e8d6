package rerail

import (
	"iter"
	"slices"

	"github.com/beetlebugorg/rerail/internal/geom"
	"github.com/beetlebugorg/rerail/internal/sparse"
)

// Coord is an exact point in world units.
type Coord = geom.Coord

// Rect is an open axis-aligned rectangle in world units.
type Rect = geom.Rect

// StationID, RailwayID and BorderPointID are stable handles to map
// entities. They stay valid until the entity is deleted; a handle to a
// deleted entity is rejected, even if its storage has been reused since.
// The zero value names no entity.
type (
	StationID     = sparse.ID[Station]
	RailwayID     = sparse.ID[Railway]
	BorderPointID = sparse.ID[BorderPoint]
)

// Level ranges.
const (
	MaxRailwayLevel = 3
	MaxStationLevel = 3
	MaxBorderLevel  = 2
)

// Color is an RGB stroke color.
type Color struct {
	R uint8 `codec:"r" json:"r" yaml:"r" toml:"r"`
	G uint8 `codec:"g" json:"g" yaml:"g" toml:"g"`
	B uint8 `codec:"b" json:"b" yaml:"b" toml:"b"`
}

// Station is a named stop served by one or more railways.
//
// Railways lists every railway with at least one point attached to the
// station, without duplicates. A station never exists with an empty list.
type Station struct {
	Name     string
	Level    int
	Railways []RailwayID
}

// RailwayPoint is one vertex of a railway polyline.
type RailwayPoint struct {
	Coord   Coord
	Station StationID
}

// HasStation reports whether the point is attached to a station.
func (p RailwayPoint) HasStation() bool {
	return !p.Station.IsZero()
}

// Railway is a named, colored polyline. Consecutive points form segments
// and the point order gives the line its direction.
type Railway struct {
	Name   string
	Color  Color
	Level  int
	Points []RailwayPoint
}

// BorderEdge is one end of an undirected border edge.
type BorderEdge struct {
	To    BorderPointID
	Level int
}

// BorderPoint is a vertex of the border graph. Every edge appears at both of
// its endpoints with the same level, and a point always has at least one
// neighbor.
type BorderPoint struct {
	Coord     Coord
	Neighbors []BorderEdge
}

// Map is the railway map: stations, railways and the border graph.
//
// A Map is not safe for concurrent use while it is being edited. Read-only
// queries (Render, RailwaysInViewport, the nearest searches) may run
// concurrently with each other when no edit is in progress.
type Map struct {
	stations *sparse.Array[Station]
	railways *sparse.Array[Railway]
	borders  *sparse.Array[BorderPoint]
	config   Config
}

// NewMap returns an empty map using DefaultConfig.
func NewMap() *Map {
	return NewMapWithConfig(DefaultConfig())
}

// NewMapWithConfig returns an empty map with the given presentation config.
func NewMapWithConfig(cfg Config) *Map {
	return &Map{
		stations: sparse.New[Station](),
		railways: sparse.New[Railway](),
		borders:  sparse.New[BorderPoint](),
		config:   cfg,
	}
}

// Config returns the map's presentation config.
func (m *Map) Config() Config {
	return m.config
}

// SetConfig replaces the map's presentation config.
func (m *Map) SetConfig(cfg Config) {
	m.config = cfg
}

// Clone returns a deep copy of the map. IDs remain valid in the copy.
func (m *Map) Clone() *Map {
	return &Map{
		stations: m.stations.Clone(cloneStation),
		railways: m.railways.Clone(cloneRailway),
		borders:  m.borders.Clone(cloneBorderPoint),
		config:   m.config,
	}
}

func cloneStation(s Station) Station {
	s.Railways = slices.Clone(s.Railways)
	return s
}

func cloneRailway(r Railway) Railway {
	r.Points = slices.Clone(r.Points)
	return r
}

func cloneBorderPoint(b BorderPoint) BorderPoint {
	b.Neighbors = slices.Clone(b.Neighbors)
	return b
}

// StationCount returns the number of stations.
func (m *Map) StationCount() int { return m.stations.Len() }

// RailwayCount returns the number of railways.
func (m *Map) RailwayCount() int { return m.railways.Len() }

// BorderPointCount returns the number of border points.
func (m *Map) BorderPointCount() int { return m.borders.Len() }

// Station returns a copy of the station named by id.
func (m *Map) Station(id StationID) (Station, bool) {
	s, ok := m.stations.Get(id)
	if !ok {
		return Station{}, false
	}
	return cloneStation(s), true
}

// Railway returns a copy of the railway named by id.
func (m *Map) Railway(id RailwayID) (Railway, bool) {
	r, ok := m.railways.Get(id)
	if !ok {
		return Railway{}, false
	}
	return cloneRailway(r), true
}

// BorderPoint returns a copy of the border point named by id.
func (m *Map) BorderPoint(id BorderPointID) (BorderPoint, bool) {
	b, ok := m.borders.Get(id)
	if !ok {
		return BorderPoint{}, false
	}
	return cloneBorderPoint(b), true
}

// Stations yields every station in storage order. The yielded values share
// memory with the map and must not be modified.
func (m *Map) Stations() iter.Seq2[StationID, Station] {
	return values(m.stations)
}

// Railways yields every railway in storage order. The yielded values share
// memory with the map and must not be modified.
func (m *Map) Railways() iter.Seq2[RailwayID, Railway] {
	return values(m.railways)
}

// BorderPoints yields every border point in storage order. The yielded
// values share memory with the map and must not be modified.
func (m *Map) BorderPoints() iter.Seq2[BorderPointID, BorderPoint] {
	return values(m.borders)
}

// RailwayIDs returns the ids of all railways in ascending order.
func (m *Map) RailwayIDs() []RailwayID {
	return m.railways.IDs()
}

// StationIDs returns the ids of all stations in ascending order.
func (m *Map) StationIDs() []StationID {
	return m.stations.IDs()
}

// BorderPointIDs returns the ids of all border points in ascending order.
func (m *Map) BorderPointIDs() []BorderPointID {
	return m.borders.IDs()
}

func values[T any](a *sparse.Array[T]) iter.Seq2[sparse.ID[T], T] {
	return func(yield func(sparse.ID[T], T) bool) {
		for id, v := range a.All() {
			if !yield(id, *v) {
				return
			}
		}
	}
}
