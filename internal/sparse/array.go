package sparse

import (
	"fmt"
	"iter"
	"slices"
)

// Array stores values densely and addresses them by ID.
//
// Deleting swaps the last element into the freed position, so iteration
// order is not insertion order once anything has been deleted.
//
// An Array is not safe for concurrent mutation. Concurrent readers are fine
// while nobody writes.
type Array[T any] struct {
	data  []entry[T]
	slots []slot
	free  []uint32
}

type entry[T any] struct {
	id    ID[T]
	value T
}

// slot maps an ID slot to its current position in data.
type slot struct {
	pos int32 // -1 when the slot is free
	gen uint32
}

// New returns an empty Array.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// Len returns the number of live entries.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Push stores v and returns its new ID.
//
// A freed slot may be reused, but always with a newer generation than any
// ID previously issued for it.
func (a *Array[T]) Push(v T) ID[T] {
	var s uint32
	if n := len(a.free); n > 0 {
		s = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		s = uint32(len(a.slots))
		a.slots = append(a.slots, slot{pos: -1, gen: 1})
	}
	id := ID[T]{slot: s, gen: a.slots[s].gen}
	a.slots[s].pos = int32(len(a.data))
	a.data = append(a.data, entry[T]{id: id, value: v})
	return id
}

func (a *Array[T]) lookup(id ID[T]) (int, bool) {
	if id.gen == 0 || int(id.slot) >= len(a.slots) {
		return 0, false
	}
	s := a.slots[id.slot]
	if s.pos < 0 || s.gen != id.gen {
		return 0, false
	}
	return int(s.pos), true
}

func (a *Array[T]) mustLookup(id ID[T]) int {
	pos, ok := a.lookup(id)
	if !ok {
		panic(&DeadIDError{Slot: id.slot, Generation: id.gen})
	}
	return pos
}

// Contains reports whether id names a live entry.
func (a *Array[T]) Contains(id ID[T]) bool {
	_, ok := a.lookup(id)
	return ok
}

// Get returns a copy of the value stored under id.
func (a *Array[T]) Get(id ID[T]) (T, bool) {
	pos, ok := a.lookup(id)
	if !ok {
		var zero T
		return zero, false
	}
	return a.data[pos].value, true
}

// Ptr returns a pointer to the value stored under id. The pointer is only
// valid until the next Push or Delete. Ptr panics with *DeadIDError if id is
// not live.
func (a *Array[T]) Ptr(id ID[T]) *T {
	return &a.data[a.mustLookup(id)].value
}

// MustGet is Get for callers that know id is live. It panics with
// *DeadIDError otherwise.
func (a *Array[T]) MustGet(id ID[T]) T {
	return a.data[a.mustLookup(id)].value
}

// Set replaces the value stored under id. It panics with *DeadIDError if id
// is not live.
func (a *Array[T]) Set(id ID[T], v T) {
	a.data[a.mustLookup(id)].value = v
}

// Delete removes the entry named by id and releases its slot.
// It panics with *DeadIDError if id is not live.
func (a *Array[T]) Delete(id ID[T]) {
	pos := a.mustLookup(id)
	last := len(a.data) - 1
	if pos != last {
		a.data[pos] = a.data[last]
		a.slots[a.data[pos].id.slot].pos = int32(pos)
	}
	a.data[last] = entry[T]{}
	a.data = a.data[:last]

	s := &a.slots[id.slot]
	s.pos = -1
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, id.slot)
}

// All yields every live entry in physical order. The order changes when
// entries are deleted. The array must not be modified during iteration.
func (a *Array[T]) All() iter.Seq2[ID[T], *T] {
	return func(yield func(ID[T], *T) bool) {
		for i := range a.data {
			if !yield(a.data[i].id, &a.data[i].value) {
				return
			}
		}
	}
}

// IDs returns the IDs of all live entries in ascending order.
func (a *Array[T]) IDs() []ID[T] {
	ids := make([]ID[T], len(a.data))
	for i := range a.data {
		ids[i] = a.data[i].id
	}
	slices.SortFunc(ids, ID[T].Compare)
	return ids
}

// Clone returns a copy of the array. copyValue, if non-nil, is applied to
// every value so that reference-typed fields can be deep-copied.
func (a *Array[T]) Clone(copyValue func(T) T) *Array[T] {
	c := &Array[T]{
		data:  slices.Clone(a.data),
		slots: slices.Clone(a.slots),
		free:  slices.Clone(a.free),
	}
	if copyValue != nil {
		for i := range c.data {
			c.data[i].value = copyValue(c.data[i].value)
		}
	}
	return c
}

// Entry is one live element of a Snapshot.
type Entry[T any] struct {
	ID    ID[T]
	Value T
}

// Snapshot is the complete physical state of an Array: entries in physical
// order, the current generation of every slot, and the free-slot stack.
// Restoring a snapshot reproduces the same IDs and the same future Push
// results.
type Snapshot[T any] struct {
	Entries     []Entry[T]
	Generations []uint32
	Free        []uint32
}

// Snapshot captures the array's state.
func (a *Array[T]) Snapshot() Snapshot[T] {
	s := Snapshot[T]{
		Entries:     make([]Entry[T], len(a.data)),
		Generations: make([]uint32, len(a.slots)),
		Free:        slices.Clone(a.free),
	}
	for i, e := range a.data {
		s.Entries[i] = Entry[T]{ID: e.id, Value: e.value}
	}
	for i, sl := range a.slots {
		s.Generations[i] = sl.gen
	}
	return s
}

// Restore rebuilds an Array from a snapshot. Every slot must be either live
// exactly once or free exactly once, and live IDs must carry their slot's
// current generation.
func Restore[T any](s Snapshot[T]) (*Array[T], error) {
	a := &Array[T]{
		data:  make([]entry[T], 0, len(s.Entries)),
		slots: make([]slot, len(s.Generations)),
		free:  slices.Clone(s.Free),
	}
	for i, gen := range s.Generations {
		if gen == 0 {
			return nil, &CorruptError{Reason: fmt.Sprintf("slot %d has generation 0", i)}
		}
		a.slots[i] = slot{pos: -1, gen: gen}
	}

	for _, e := range s.Entries {
		if int(e.ID.slot) >= len(a.slots) {
			return nil, &CorruptError{Reason: fmt.Sprintf("entry %v references unknown slot", e.ID)}
		}
		sl := &a.slots[e.ID.slot]
		if sl.pos >= 0 {
			return nil, &CorruptError{Reason: fmt.Sprintf("slot %d is used twice", e.ID.slot)}
		}
		if sl.gen != e.ID.gen {
			return nil, &CorruptError{Reason: fmt.Sprintf("entry %v does not match slot generation %d", e.ID, sl.gen)}
		}
		sl.pos = int32(len(a.data))
		a.data = append(a.data, entry[T]{id: e.ID, value: e.Value})
	}

	seen := make(map[uint32]bool, len(s.Free))
	for _, f := range s.Free {
		if int(f) >= len(a.slots) {
			return nil, &CorruptError{Reason: fmt.Sprintf("free slot %d out of range", f)}
		}
		if a.slots[f].pos >= 0 || seen[f] {
			return nil, &CorruptError{Reason: fmt.Sprintf("free slot %d is live or listed twice", f)}
		}
		seen[f] = true
	}
	if len(a.data)+len(seen) != len(a.slots) {
		return nil, &CorruptError{Reason: fmt.Sprintf("%d slots but %d live and %d free", len(a.slots), len(a.data), len(seen))}
	}
	return a, nil
}
