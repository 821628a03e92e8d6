// Package sparse implements a dense array addressed by stable identifiers.
//
// An ID stays valid until the entity it names is deleted, independent of
// where the entity currently lives in the backing slice. IDs carry a
// generation counter, so an ID kept across a delete cannot silently address
// a different entity that later reuses the same slot.
package sparse

import "fmt"

// ID is a stable handle to a value of type T stored in an Array[T].
//
// The zero ID is never issued and can be used as "no entity".
type ID[T any] struct {
	slot uint32
	gen  uint32
}

// IDFromUint64 rebuilds an ID from its Uint64 encoding.
func IDFromUint64[T any](v uint64) ID[T] {
	return ID[T]{slot: uint32(v), gen: uint32(v >> 32)}
}

// Uint64 packs the ID as generation<<32 | slot.
func (id ID[T]) Uint64() uint64 {
	return uint64(id.gen)<<32 | uint64(id.slot)
}

// IsZero reports whether id is the zero ID.
func (id ID[T]) IsZero() bool {
	return id.gen == 0
}

// Slot returns the slot number. Slots are reused after deletion.
func (id ID[T]) Slot() uint32 { return id.slot }

// Generation returns the slot generation the ID was issued for.
func (id ID[T]) Generation() uint32 { return id.gen }

// Compare orders IDs by slot, then generation.
func (id ID[T]) Compare(other ID[T]) int {
	switch {
	case id.slot < other.slot:
		return -1
	case id.slot > other.slot:
		return 1
	case id.gen < other.gen:
		return -1
	case id.gen > other.gen:
		return 1
	}
	return 0
}

// Less reports whether id sorts before other.
func (id ID[T]) Less(other ID[T]) bool {
	return id.Compare(other) < 0
}

func (id ID[T]) String() string {
	if id.IsZero() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", id.slot, id.gen)
}
