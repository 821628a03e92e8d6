// Package legacy parses the fixed-layout binary map format written by the
// legacy railway map editor.
//
// A file is a sequence of marked sections, all integers big-endian:
//
//	"RMMT" i32(?) coord(initial view) u8(initial zoom)
//	"ST"   i32(size) i32(n) n*{ u8 level, coord, str name }
//	"RX"   i32(size) i32(n) n*{ i32 color|level, str name,
//	                            i32 np, np*coord,
//	                            i32 ns, ns*{ i32 station, coord, i32(?) } }
//	"LS"   i32(size) i32(n) n*{ u8 kind, kind 0: i32 railway | 1: str group | 2: - }
//	"BD"   i32(size) i32(n) n*{ u8 level, coord, u8 ne, ne*i32 neighbor }
//
// Strings are a u8 byte length followed by Shift-JIS text. The header fields
// marked (?) and every section size are read and discarded: their meaning is
// undocumented and the sizes written by the legacy editor are known to be
// wrong. The railway list section (LS) only affects the legacy editor's
// sidebar and is validated but not returned.
//
// Parse returns the records positionally, as stored; turning them into a map
// with stable ids is the caller's job.
package legacy

import (
	"github.com/beetlebugorg/rerail/internal/geom"
)

// Level ranges used by the map model.
const (
	MaxRailwayLevel = 3
	MaxStationLevel = 3
	MaxBorderLevel  = 2
)

// File is the parsed content of a legacy map file.
type File struct {
	Stations     []Station
	Railways     []Railway
	BorderPoints []BorderPoint
}

// Station is an entry of the ST section.
type Station struct {
	Name  string
	Level int
	// Pos is the position stored with the station. The map model places
	// stations by their railway points instead.
	Pos geom.Coord
}

// Railway is an entry of the RX section.
type Railway struct {
	Name    string
	R, G, B uint8
	Level   int
	Points  []geom.Coord
	// Stations holds, per point, the index into File.Stations or -1.
	Stations []int
}

// BorderPoint is an entry of the BD section. Neighbors index into
// File.BorderPoints. Each edge is normally listed at both of its endpoints.
type BorderPoint struct {
	Level     int
	Coord     geom.Coord
	Neighbors []int
}

// Parse decodes a legacy map file. Any structural problem aborts the parse.
func Parse(data []byte) (*File, error) {
	r := &reader{data: data}

	if err := parseHeader(r); err != nil {
		return nil, err
	}
	stations, err := parseStations(r)
	if err != nil {
		return nil, err
	}
	railways, err := parseRailways(r, len(stations))
	if err != nil {
		return nil, err
	}
	if err := skipRailwayList(r); err != nil {
		return nil, err
	}
	borders, err := parseBorders(r)
	if err != nil {
		return nil, err
	}

	return &File{
		Stations:     stations,
		Railways:     railways,
		BorderPoints: borders,
	}, nil
}

func parseHeader(r *reader) error {
	if err := r.magic("RMMT"); err != nil {
		return err
	}
	if _, err := r.i32("header field"); err != nil {
		return err
	}
	if _, err := r.coord("initial position"); err != nil {
		return err
	}
	_, err := r.u8("initial zoom")
	return err
}

func parseStations(r *reader) ([]Station, error) {
	if err := r.magic("ST"); err != nil {
		return nil, err
	}
	if _, err := r.i32("ST size"); err != nil {
		return nil, err
	}
	// level(1) + coord(8) + name length(1)
	n, err := r.count("ST", 10)
	if err != nil {
		return nil, err
	}

	stations := make([]Station, 0, n)
	for i := 0; i < n; i++ {
		lv, err := r.u8("station level")
		if err != nil {
			return nil, err
		}
		pos, err := r.coord("station position")
		if err != nil {
			return nil, err
		}
		name, err := r.sjis("station name")
		if err != nil {
			return nil, err
		}
		stations = append(stations, Station{
			Name:  name,
			Level: level(lv, MaxStationLevel),
			Pos:   pos,
		})
	}
	return stations, nil
}

func parseRailways(r *reader, numStations int) ([]Railway, error) {
	if err := r.magic("RX"); err != nil {
		return nil, err
	}
	// the stored size counts 12 bytes per station entry instead of 16
	if _, err := r.i32("RX size"); err != nil {
		return nil, err
	}
	// info(4) + name length(1) + point count(4) + station count(4)
	n, err := r.count("RX", 13)
	if err != nil {
		return nil, err
	}

	railways := make([]Railway, 0, n)
	for i := 0; i < n; i++ {
		rw, err := parseRailway(r, i, numStations)
		if err != nil {
			return nil, err
		}
		railways = append(railways, rw)
	}
	return railways, nil
}

func parseRailway(r *reader, index, numStations int) (Railway, error) {
	info, err := r.i32("railway info")
	if err != nil {
		return Railway{}, err
	}
	name, err := r.sjis("railway name")
	if err != nil {
		return Railway{}, err
	}

	np, err := r.count("RX points", 8)
	if err != nil {
		return Railway{}, err
	}
	points := make([]geom.Coord, np)
	for j := range points {
		if points[j], err = r.coord("railway point"); err != nil {
			return Railway{}, err
		}
	}

	stations := make([]int, np)
	for j := range stations {
		stations[j] = -1
	}

	ns, err := r.count("RX stations", 16)
	if err != nil {
		return Railway{}, err
	}
	cur := 0
	for j := 0; j < ns; j++ {
		sid, err := r.i32("railway station id")
		if err != nil {
			return Railway{}, err
		}
		pos, err := r.coord("railway station position")
		if err != nil {
			return Railway{}, err
		}
		if _, err := r.i32("railway station field"); err != nil {
			return Railway{}, err
		}

		if sid < 0 || int(sid) >= numStations {
			return Railway{}, &ReferenceError{Section: "RX", Index: sid, Count: numStations}
		}
		// entries are ordered along the line; scan forward from the last match
		for cur < np && points[cur] != pos {
			cur++
		}
		if cur == np {
			return Railway{}, &StationMismatchError{Railway: index, Station: sid, Pos: pos, Reason: "no matching point"}
		}
		if stations[cur] >= 0 {
			return Railway{}, &StationMismatchError{Railway: index, Station: sid, Pos: pos, Reason: "point already has a station"}
		}
		stations[cur] = int(sid)
	}

	return Railway{
		Name:     name,
		R:        uint8(info >> 24),
		G:        uint8(info >> 16),
		B:        uint8(info >> 8),
		Level:    level(byte(info), MaxRailwayLevel),
		Points:   points,
		Stations: stations,
	}, nil
}

func skipRailwayList(r *reader) error {
	if err := r.magic("LS"); err != nil {
		return err
	}
	if _, err := r.i32("LS size"); err != nil {
		return err
	}
	n, err := r.count("LS", 1)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		at := r.off
		kind, err := r.u8("list entry kind")
		if err != nil {
			return err
		}
		switch kind {
		case 0:
			_, err = r.i32("list railway id")
		case 1:
			_, err = r.sjis("list group name")
		case 2:
			// separator
		default:
			return &EntryKindError{Offset: at, Kind: kind}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseBorders(r *reader) ([]BorderPoint, error) {
	if err := r.magic("BD"); err != nil {
		return nil, err
	}
	// the stored size counts every undirected edge once, but edges are
	// written at both endpoints
	if _, err := r.i32("BD size"); err != nil {
		return nil, err
	}
	// level(1) + coord(8) + edge count(1)
	n, err := r.count("BD", 10)
	if err != nil {
		return nil, err
	}

	points := make([]BorderPoint, 0, n)
	for i := 0; i < n; i++ {
		lv, err := r.u8("border level")
		if err != nil {
			return nil, err
		}
		c, err := r.coord("border point")
		if err != nil {
			return nil, err
		}
		ne, err := r.u8("border edge count")
		if err != nil {
			return nil, err
		}
		neighbors := make([]int, 0, ne)
		for j := 0; j < int(ne); j++ {
			adj, err := r.i32("border neighbor")
			if err != nil {
				return nil, err
			}
			if adj < 0 || int(adj) >= n {
				return nil, &ReferenceError{Section: "BD", Index: adj, Count: n}
			}
			neighbors = append(neighbors, int(adj))
		}
		points = append(points, BorderPoint{
			Level:     level(lv, MaxBorderLevel),
			Coord:     c,
			Neighbors: neighbors,
		})
	}
	return points, nil
}

// level maps the stored 1-based level in the low three bits to the 0-based
// model level, clamped to [0, maxLevel].
func level(b byte, maxLevel int) int {
	l := int(b&7) - 1
	return max(0, min(l, maxLevel))
}
