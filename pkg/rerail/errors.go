package rerail

import (
	"fmt"
)

// ReferenceError indicates an id that does not name a live entity.
type ReferenceError struct {
	Kind string // "station", "railway" or "border point"
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %s", e.Kind, e.ID)
}

// PointIndexError indicates a railway point index out of range.
type PointIndexError struct {
	Railway RailwayID
	Index   int
	Len     int
}

func (e *PointIndexError) Error() string {
	return fmt.Sprintf("railway %v: point index %d out of range (len %d)", e.Railway, e.Index, e.Len)
}

// LevelError indicates a level outside the range allowed for its entity.
type LevelError struct {
	Kind  string
	Level int
	Max   int
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("%s level %d out of range 0..%d", e.Kind, e.Level, e.Max)
}

// EdgeError indicates a border edit on a missing or invalid edge.
type EdgeError struct {
	A, B   BorderPointID
	Reason string
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("border edge %v-%v: %s", e.A, e.B, e.Reason)
}

// InputError indicates an invalid input record such as a ViewportSpec,
// RailwayInfo, StationInfo or Config.
type InputError struct {
	What string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.What, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// FormatError indicates data that is not a map file this package can read.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized map data: %s", e.Reason)
}

// InvariantError reports a broken map invariant found by Validate.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("map invariant violated: %s", e.Reason)
}
