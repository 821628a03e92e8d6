package rerail

import (
	"bytes"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/beetlebugorg/rerail/internal/legacy"
)

// File magics. Legacy files start with "RMMT"; two bytes are enough to
// tell the formats apart.
var (
	legacyMagic  = []byte("RM")
	currentMagic = []byte("RL")
)

var msgpack = &codec.MsgpackHandle{WriteExt: true}

// Load reads a map in either the legacy format or the format written by
// Save. The result always passes Validate.
func Load(data []byte) (*Map, error) {
	var (
		m   *Map
		err error
	)
	switch {
	case bytes.HasPrefix(data, legacyMagic):
		m, err = loadLegacy(data)
	case bytes.HasPrefix(data, currentMagic):
		m, err = loadCurrent(data[len(currentMagic):])
	default:
		n := min(len(data), 4)
		return nil, &FormatError{Reason: fmt.Sprintf("unknown magic %q", data[:n])}
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Save encodes the map. Loading the result yields a map with the same ids
// and contents; presentation config is not saved.
func (m *Map) Save() ([]byte, error) {
	var body []byte
	if err := encodeRecord(&body, m.record()); err != nil {
		return nil, fmt.Errorf("encoding map: %w", err)
	}
	return append(bytes.Clone(currentMagic), body...), nil
}

func encodeRecord(out *[]byte, rec fileRecord) error {
	return codec.NewEncoderBytes(out, msgpack).Encode(rec)
}

func loadCurrent(data []byte) (*Map, error) {
	var rec fileRecord
	if err := codec.NewDecoderBytes(data, msgpack).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding map: %w", err)
	}
	if rec.Version < 1 || rec.Version > formatVersion {
		return nil, &FormatError{Reason: fmt.Sprintf("unsupported version %d", rec.Version)}
	}
	m, err := mapFromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("decoding map: %w", err)
	}
	return m, nil
}

func loadLegacy(data []byte) (*Map, error) {
	f, err := legacy.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("legacy map: %w", err)
	}
	return fromLegacy(f), nil
}

// fromLegacy builds a map from positional legacy records. Stations no
// railway refers to are dropped, as are border points without edges.
// Legacy levels belong to border points; an edge takes the lower level of
// its two endpoints.
func fromLegacy(f *legacy.File) *Map {
	m := NewMap()

	stations := make([]StationID, len(f.Stations))
	for _, lr := range f.Railways {
		rid := m.railways.Push(Railway{
			Name:   lr.Name,
			Color:  Color{R: lr.R, G: lr.G, B: lr.B},
			Level:  lr.Level,
			Points: make([]RailwayPoint, len(lr.Points)),
		})
		points := m.railways.Ptr(rid).Points
		for i, c := range lr.Points {
			points[i].Coord = c
			k := lr.Stations[i]
			if k < 0 {
				continue
			}
			if stations[k].IsZero() {
				ls := f.Stations[k]
				stations[k] = m.stations.Push(Station{Name: ls.Name, Level: ls.Level})
			}
			points[i].Station = stations[k]
			m.addStationRailway(stations[k], rid)
		}
	}

	borders := make([]BorderPointID, len(f.BorderPoints))
	for i, lb := range f.BorderPoints {
		borders[i] = m.borders.Push(BorderPoint{Coord: lb.Coord})
	}
	for i, lb := range f.BorderPoints {
		for _, j := range lb.Neighbors {
			if j == i || edgeIndex(m.borders.Ptr(borders[i]), borders[j]) >= 0 {
				continue
			}
			level := min(lb.Level, f.BorderPoints[j].Level, MaxBorderLevel)
			m.link(borders[i], borders[j], level)
		}
	}
	for _, id := range borders {
		m.deleteIfIsolated(id)
	}
	return m
}
