package legacy

import (
	"fmt"
	"io"

	"github.com/beetlebugorg/rerail/internal/geom"
)

// MagicError indicates a missing file or section marker.
type MagicError struct {
	Offset int
	Want   string
	Got    string
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("offset %d: expected marker %q, got %q", e.Offset, e.Want, e.Got)
}

// CountError indicates a negative element count, or one too large for the
// bytes left in the file. The latter also matches io.ErrUnexpectedEOF.
type CountError struct {
	Section   string
	Count     int32
	Truncated bool
}

func (e *CountError) Error() string {
	if e.Truncated {
		return fmt.Sprintf("section %s: count %d exceeds remaining data", e.Section, e.Count)
	}
	return fmt.Sprintf("section %s: invalid count %d", e.Section, e.Count)
}

func (e *CountError) Unwrap() error {
	if e.Truncated {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// ReferenceError indicates an index that points outside its table.
type ReferenceError struct {
	Section string
	Index   int32
	Count   int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("section %s: index %d out of range (0..%d)", e.Section, e.Index, e.Count-1)
}

// StationMismatchError indicates a railway's station entry that cannot be
// matched to one of its points.
type StationMismatchError struct {
	Railway int
	Station int32
	Pos     geom.Coord
	Reason  string
}

func (e *StationMismatchError) Error() string {
	return fmt.Sprintf("railway %d: station %d at %v: %s", e.Railway, e.Station, e.Pos, e.Reason)
}

// EntryKindError indicates an unknown entry in the railway list section.
type EntryKindError struct {
	Offset int
	Kind   byte
}

func (e *EntryKindError) Error() string {
	return fmt.Sprintf("offset %d: unknown railway list entry kind %d", e.Offset, e.Kind)
}
