package rerail

import (
	"github.com/beetlebugorg/rerail/internal/sparse"
)

// formatVersion is written into every saved map. Readers ignore fields
// they do not know, so it only changes when existing fields change meaning.
const formatVersion = 1

type fileRecord struct {
	Version  int                         `codec:"version"`
	Stations arrayRecord[stationRecord]  `codec:"stations"`
	Railways arrayRecord[railwayRecord]  `codec:"railways"`
	Borders  arrayRecord[borderRecord]   `codec:"borders"`
}

type arrayRecord[R any] struct {
	Entries     []entryRecord[R] `codec:"entries"`
	Generations []uint32         `codec:"generations"`
	Free        []uint32         `codec:"free"`
}

type entryRecord[R any] struct {
	ID    uint64 `codec:"id"`
	Value R      `codec:"value"`
}

type stationRecord struct {
	Name     string   `codec:"name"`
	Level    int      `codec:"level"`
	Railways []uint64 `codec:"railways"`
}

type railwayRecord struct {
	Name   string        `codec:"name"`
	Color  Color         `codec:"color"`
	Level  int           `codec:"level"`
	Points []pointRecord `codec:"points"`
}

type pointRecord struct {
	X       int32  `codec:"x"`
	Y       int32  `codec:"y"`
	Station uint64 `codec:"station,omitempty"`
}

type borderRecord struct {
	X         int32        `codec:"x"`
	Y         int32        `codec:"y"`
	Neighbors []edgeRecord `codec:"neighbors"`
}

type edgeRecord struct {
	To    uint64 `codec:"to"`
	Level int    `codec:"level"`
}

func encodeArray[T, R any](a *sparse.Array[T], conv func(T) R) arrayRecord[R] {
	s := a.Snapshot()
	out := arrayRecord[R]{
		Entries:     make([]entryRecord[R], len(s.Entries)),
		Generations: s.Generations,
		Free:        s.Free,
	}
	for i, e := range s.Entries {
		out.Entries[i] = entryRecord[R]{ID: e.ID.Uint64(), Value: conv(e.Value)}
	}
	return out
}

func decodeArray[T, R any](rec arrayRecord[R], conv func(R) T) (*sparse.Array[T], error) {
	s := sparse.Snapshot[T]{
		Entries:     make([]sparse.Entry[T], len(rec.Entries)),
		Generations: rec.Generations,
		Free:        rec.Free,
	}
	for i, e := range rec.Entries {
		s.Entries[i] = sparse.Entry[T]{ID: sparse.IDFromUint64[T](e.ID), Value: conv(e.Value)}
	}
	return sparse.Restore(s)
}

func (m *Map) record() fileRecord {
	return fileRecord{
		Version: formatVersion,
		Stations: encodeArray(m.stations, func(s Station) stationRecord {
			rec := stationRecord{Name: s.Name, Level: s.Level, Railways: make([]uint64, len(s.Railways))}
			for i, r := range s.Railways {
				rec.Railways[i] = r.Uint64()
			}
			return rec
		}),
		Railways: encodeArray(m.railways, func(r Railway) railwayRecord {
			rec := railwayRecord{Name: r.Name, Color: r.Color, Level: r.Level, Points: make([]pointRecord, len(r.Points))}
			for i, p := range r.Points {
				rec.Points[i] = pointRecord{X: p.Coord.X, Y: p.Coord.Y, Station: p.Station.Uint64()}
			}
			return rec
		}),
		Borders: encodeArray(m.borders, func(b BorderPoint) borderRecord {
			rec := borderRecord{X: b.Coord.X, Y: b.Coord.Y, Neighbors: make([]edgeRecord, len(b.Neighbors))}
			for i, e := range b.Neighbors {
				rec.Neighbors[i] = edgeRecord{To: e.To.Uint64(), Level: e.Level}
			}
			return rec
		}),
	}
}

func mapFromRecord(rec fileRecord) (*Map, error) {
	m := NewMap()
	var err error
	m.stations, err = decodeArray(rec.Stations, func(s stationRecord) Station {
		st := Station{Name: s.Name, Level: s.Level, Railways: make([]RailwayID, len(s.Railways))}
		for i, r := range s.Railways {
			st.Railways[i] = sparse.IDFromUint64[Railway](r)
		}
		return st
	})
	if err != nil {
		return nil, err
	}
	m.railways, err = decodeArray(rec.Railways, func(r railwayRecord) Railway {
		rw := Railway{Name: r.Name, Color: r.Color, Level: r.Level, Points: make([]RailwayPoint, len(r.Points))}
		for i, p := range r.Points {
			rw.Points[i] = RailwayPoint{Coord: Coord{X: p.X, Y: p.Y}, Station: sparse.IDFromUint64[Station](p.Station)}
		}
		return rw
	})
	if err != nil {
		return nil, err
	}
	m.borders, err = decodeArray(rec.Borders, func(b borderRecord) BorderPoint {
		bp := BorderPoint{Coord: Coord{X: b.X, Y: b.Y}, Neighbors: make([]BorderEdge, len(b.Neighbors))}
		for i, e := range b.Neighbors {
			bp.Neighbors[i] = BorderEdge{To: sparse.IDFromUint64[BorderPoint](e.To), Level: e.Level}
		}
		return bp
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
