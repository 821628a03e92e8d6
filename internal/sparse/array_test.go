package sparse

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPushGet(t *testing.T) {
	a := New[string]()
	x := a.Push("x")
	y := a.Push("y")

	if x == y {
		t.Fatalf("Push returned the same id twice: %v", x)
	}
	if x.IsZero() || y.IsZero() {
		t.Fatalf("Push returned a zero id")
	}
	if v, ok := a.Get(x); !ok || v != "x" {
		t.Errorf("Get(x) = %q, %v", v, ok)
	}
	if v := a.MustGet(y); v != "y" {
		t.Errorf("MustGet(y) = %q", v)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestDeleteSwapsLast(t *testing.T) {
	a := New[int]()
	ids := []ID[int]{a.Push(0), a.Push(1), a.Push(2), a.Push(3)}

	a.Delete(ids[1])

	if a.Contains(ids[1]) {
		t.Errorf("deleted id still live")
	}
	for _, i := range []int{0, 2, 3} {
		if v, ok := a.Get(ids[i]); !ok || v != i {
			t.Errorf("Get(ids[%d]) = %d, %v", i, v, ok)
		}
	}

	// the last element moved into the freed position
	var order []int
	for _, v := range a.All() {
		order = append(order, *v)
	}
	want := []int{0, 3, 2}
	if len(order) != len(want) {
		t.Fatalf("All yielded %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("All yielded %v, want %v", order, want)
		}
	}
}

func TestReuseGetsNewGeneration(t *testing.T) {
	a := New[string]()
	old := a.Push("old")
	a.Delete(old)
	fresh := a.Push("fresh")

	if fresh.Slot() != old.Slot() {
		t.Fatalf("expected slot reuse, got %v after %v", fresh, old)
	}
	if fresh == old {
		t.Fatalf("reused slot must not reissue the same id")
	}
	if _, ok := a.Get(old); ok {
		t.Errorf("stale id resolved after slot reuse")
	}
	if v, _ := a.Get(fresh); v != "fresh" {
		t.Errorf("Get(fresh) = %q", v)
	}
}

func TestDeadIDPanics(t *testing.T) {
	a := New[int]()
	id := a.Push(1)
	a.Delete(id)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %v", r)
		}
		var dead *DeadIDError
		if !errors.As(err, &dead) {
			t.Fatalf("expected *DeadIDError, got %T", err)
		}
	}()
	a.MustGet(id)
}

func TestZeroIDNeverLive(t *testing.T) {
	a := New[int]()
	a.Push(1)
	var zero ID[int]
	if a.Contains(zero) {
		t.Errorf("zero id must not be live")
	}
}

func TestPtrMutates(t *testing.T) {
	a := New[[]int]()
	id := a.Push(nil)
	p := a.Ptr(id)
	*p = append(*p, 7)
	if v := a.MustGet(id); len(v) != 1 || v[0] != 7 {
		t.Errorf("Ptr mutation lost: %v", v)
	}
}

// TestRandomRoundTrip checks that after any push/delete sequence every live
// id resolves to the value last written to it and All yields exactly the
// live set.
func TestRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := New[int]()
	model := map[ID[int]]int{}
	var live []ID[int]

	for step := 0; step < 5000; step++ {
		switch op := rng.Intn(10); {
		case op < 5 || len(live) == 0:
			v := rng.Int()
			id := a.Push(v)
			if _, dup := model[id]; dup {
				t.Fatalf("step %d: Push reissued live id %v", step, id)
			}
			model[id] = v
			live = append(live, id)
		case op < 8:
			i := rng.Intn(len(live))
			id := live[i]
			a.Delete(id)
			delete(model, id)
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		default:
			id := live[rng.Intn(len(live))]
			v := rng.Int()
			a.Set(id, v)
			model[id] = v
		}
	}

	if a.Len() != len(model) {
		t.Fatalf("Len = %d, want %d", a.Len(), len(model))
	}
	seen := map[ID[int]]bool{}
	for id, v := range a.All() {
		if seen[id] {
			t.Fatalf("All yielded %v twice", id)
		}
		seen[id] = true
		if want, ok := model[id]; !ok || want != *v {
			t.Fatalf("All yielded %v=%d, model has %d (%v)", id, *v, want, ok)
		}
	}
	for id, want := range model {
		if got, ok := a.Get(id); !ok || got != want {
			t.Fatalf("Get(%v) = %d, %v; want %d", id, got, ok, want)
		}
	}

	ids := a.IDs()
	for i := 1; i < len(ids); i++ {
		if !ids[i-1].Less(ids[i]) {
			t.Fatalf("IDs not sorted at %d: %v, %v", i, ids[i-1], ids[i])
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	a := New[string]()
	x := a.Push("x")
	y := a.Push("y")
	z := a.Push("z")
	a.Delete(y)

	b, err := Restore(a.Snapshot())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for _, id := range []ID[string]{x, z} {
		av, _ := a.Get(id)
		bv, ok := b.Get(id)
		if !ok || av != bv {
			t.Errorf("restored Get(%v) = %q, %v; want %q", id, bv, ok, av)
		}
	}
	if b.Contains(y) {
		t.Errorf("deleted id live after restore")
	}
	if pa, pb := a.Push("w"), b.Push("w"); pa != pb {
		t.Errorf("next Push differs after restore: %v vs %v", pa, pb)
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	a := New[int]()
	id := a.Push(1)
	a.Push(2)
	good := a.Snapshot()

	tests := []struct {
		name   string
		mutate func(s *Snapshot[int])
	}{
		{"generation mismatch", func(s *Snapshot[int]) { s.Generations[id.Slot()]++ }},
		{"duplicate slot", func(s *Snapshot[int]) { s.Entries[1].ID = s.Entries[0].ID }},
		{"unknown slot", func(s *Snapshot[int]) { s.Generations = s.Generations[:1] }},
		{"live slot listed free", func(s *Snapshot[int]) { s.Free = []uint32{id.Slot()} }},
		{"missing slot", func(s *Snapshot[int]) { s.Generations = append(s.Generations, 1) }},
		{"zero generation", func(s *Snapshot[int]) { s.Generations = append(s.Generations, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot[int]{
				Entries:     append([]Entry[int](nil), good.Entries...),
				Generations: append([]uint32(nil), good.Generations...),
				Free:        append([]uint32(nil), good.Free...),
			}
			tt.mutate(&s)
			_, err := Restore(s)
			var corrupt *CorruptError
			if !errors.As(err, &corrupt) {
				t.Errorf("Restore error = %v, want *CorruptError", err)
			}
		})
	}
}

func TestIDUint64RoundTrip(t *testing.T) {
	a := New[int]()
	id := a.Push(1)
	a.Delete(id)
	id = a.Push(2)
	if back := IDFromUint64[int](id.Uint64()); back != id {
		t.Errorf("IDFromUint64(%d) = %v, want %v", id.Uint64(), back, id)
	}
}

func TestClone(t *testing.T) {
	a := New[[]int]()
	id := a.Push([]int{1})
	b := a.Clone(func(v []int) []int { return append([]int(nil), v...) })
	(*b.Ptr(id))[0] = 0
	if a.MustGet(id)[0] != 1 {
		t.Errorf("Clone shares backing storage")
	}
}
