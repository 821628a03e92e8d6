// Package legacytest builds legacy map files for tests.
package legacytest

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/japanese"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// StationRef places a station on a railway by position.
type StationRef struct {
	Station int
	Pos     geom.Coord
}

// Railway describes one RX entry.
type Railway struct {
	Name     string
	R, G, B  uint8
	Level    int
	Points   []geom.Coord
	Stations []StationRef
}

type station struct {
	name  string
	level int
	pos   geom.Coord
}

type border struct {
	level     int
	coord     geom.Coord
	neighbors []int32
}

type listEntry struct {
	kind    byte
	railway int32
	group   string
}

// Builder accumulates records and encodes them with Bytes. Levels are the
// 0-based model levels; Bytes stores them 1-based as the legacy editor
// did.
type Builder struct {
	stations []station
	railways []Railway
	list     []listEntry
	borders  []border
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Station appends an ST entry and returns its index.
func (b *Builder) Station(name string, level int, pos geom.Coord) int {
	b.stations = append(b.stations, station{name: name, level: level, pos: pos})
	return len(b.stations) - 1
}

// Railway appends an RX entry and returns its index.
func (b *Builder) Railway(r Railway) int {
	b.railways = append(b.railways, r)
	return len(b.railways) - 1
}

// ListRailway appends a railway reference to the LS section.
func (b *Builder) ListRailway(index int) {
	b.list = append(b.list, listEntry{kind: 0, railway: int32(index)})
}

// ListGroup appends a group header to the LS section.
func (b *Builder) ListGroup(name string) {
	b.list = append(b.list, listEntry{kind: 1, group: name})
}

// ListSeparator appends a separator to the LS section.
func (b *Builder) ListSeparator() {
	b.list = append(b.list, listEntry{kind: 2})
}

// ListRaw appends an LS entry with an arbitrary kind byte and no payload.
func (b *Builder) ListRaw(kind byte) {
	b.list = append(b.list, listEntry{kind: kind})
}

// Border appends a BD entry and returns its index. Neighbors are written as
// given; list an edge at both endpoints to match real files.
func (b *Builder) Border(level int, c geom.Coord, neighbors ...int) int {
	ns := make([]int32, len(neighbors))
	for i, n := range neighbors {
		ns[i] = int32(n)
	}
	b.borders = append(b.borders, border{level: level, coord: c, neighbors: ns})
	return len(b.borders) - 1
}

// Bytes encodes the file.
func (b *Builder) Bytes() []byte {
	var w writer

	w.raw("RMMT")
	w.i32(0)
	w.coord(geom.Coord{X: 1_000_000_000, Y: 1_000_000_000})
	w.u8(5)

	w.raw("ST")
	w.i32(0)
	w.i32(int32(len(b.stations)))
	for _, s := range b.stations {
		w.u8(byte(s.level + 1))
		w.coord(s.pos)
		w.sjis(s.name)
	}

	w.raw("RX")
	w.i32(0)
	w.i32(int32(len(b.railways)))
	for _, r := range b.railways {
		w.i32(int32(uint32(r.R)<<24 | uint32(r.G)<<16 | uint32(r.B)<<8 | uint32(r.Level+1)))
		w.sjis(r.Name)
		w.i32(int32(len(r.Points)))
		for _, p := range r.Points {
			w.coord(p)
		}
		w.i32(int32(len(r.Stations)))
		for _, s := range r.Stations {
			w.i32(int32(s.Station))
			w.coord(s.Pos)
			w.i32(0)
		}
	}

	w.raw("LS")
	w.i32(0)
	w.i32(int32(len(b.list)))
	for _, e := range b.list {
		w.u8(e.kind)
		switch e.kind {
		case 0:
			w.i32(e.railway)
		case 1:
			w.sjis(e.group)
		}
	}

	w.raw("BD")
	w.i32(0)
	w.i32(int32(len(b.borders)))
	for _, p := range b.borders {
		w.u8(byte(p.level + 1))
		w.coord(p.coord)
		w.u8(byte(len(p.neighbors)))
		for _, n := range p.neighbors {
			w.i32(n)
		}
	}

	return w.buf.Bytes()
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) raw(s string) { w.buf.WriteString(s) }

func (w *writer) u8(v byte) { w.buf.WriteByte(v) }

func (w *writer) i32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

func (w *writer) coord(c geom.Coord) {
	w.i32(c.X)
	w.i32(c.Y)
}

func (w *writer) sjis(s string) {
	enc, err := japanese.ShiftJIS.NewEncoder().String(s)
	if err != nil {
		panic(err)
	}
	w.u8(byte(len(enc)))
	w.raw(enc)
}
