package checkpoint

import (
	"iter"
	"slices"

	"github.com/hupe1980/collections/deque"
	"github.com/hupe1980/collections/list"
	"github.com/hupe1980/collections/ordmap"
	"github.com/hupe1980/collections/ordset"
	"github.com/hupe1980/collections/pmap"
	"github.com/hupe1980/collections/pqueue"
	"github.com/hupe1980/collections/pset"
)

// Participant is a container the Manager checkpoints.
type Participant interface {
	// Snapshot returns the contents to encode. The result must not share
	// mutable state with the container.
	Snapshot() any

	// Restore replaces the contents with the value decode produces. A
	// failed decode must leave the container unchanged.
	Restore(decode func(v any) error) error
}

// Entry is the stored form of one map entry.
type Entry[K, V any] struct {
	Key   K `json:"k"`
	Value V `json:"v"`
}

type funcParticipant struct {
	snapshot func() any
	restore  func(decode func(v any) error) error
}

func (f funcParticipant) Snapshot() any                          { return f.snapshot() }
func (f funcParticipant) Restore(decode func(v any) error) error { return f.restore(decode) }

// Func builds a Participant from two functions.
func Func(snapshot func() any, restore func(decode func(v any) error) error) Participant {
	return funcParticipant{snapshot: snapshot, restore: restore}
}

// sliceParticipant stores a container as the slice of its elements.
func sliceParticipant[T any](snapshot func() []T, restore func([]T)) Participant {
	return Func(
		func() any { return snapshot() },
		func(decode func(v any) error) error {
			var xs []T
			if err := decode(&xs); err != nil {
				return err
			}

			restore(xs)

			return nil
		},
	)
}

// entryParticipant stores a map as its entries in key order.
func entryParticipant[K, V any](all func() iter.Seq2[K, V], restore func(iter.Seq2[K, V])) Participant {
	return sliceParticipant(
		func() []Entry[K, V] {
			var out []Entry[K, V]
			for k, v := range all() {
				out = append(out, Entry[K, V]{Key: k, Value: v})
			}

			return out
		},
		func(es []Entry[K, V]) { restore(entries(es)) },
	)
}

func entries[K, V any](es []Entry[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range es {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// List checkpoints l in index order.
func List[T any](l *list.List[T]) Participant {
	return sliceParticipant(l.ToSlice, func(xs []T) {
		l.Clear()
		l.AddAll(slices.Values(xs))
	})
}

// Map checkpoints m. Restored keys are ordered by m's comparator.
func Map[K, V any](m *ordmap.Map[K, V]) Participant {
	return entryParticipant(m.All, func(seq iter.Seq2[K, V]) {
		m.Clear()

		for k, v := range seq {
			m.Put(k, v)
		}
	})
}

// BTree checkpoints t.
func BTree[K, V any](t *ordmap.BTree[K, V]) Participant {
	return entryParticipant(t.All, func(seq iter.Seq2[K, V]) {
		t.Clear()

		for k, v := range seq {
			t.Put(k, v)
		}
	})
}

// Set checkpoints s.
func Set[T any](s *ordset.Set[T]) Participant {
	return sliceParticipant(s.ToSlice, func(xs []T) {
		s.Clear()

		for _, x := range xs {
			s.Add(x)
		}
	})
}

// Heap checkpoints h. The stored order is the heap layout, not the pop
// order.
func Heap[T any](h *pqueue.Heap[T]) Participant {
	return sliceParticipant(
		func() []T { return slices.Collect(h.Values()) },
		func(xs []T) {
			h.Clear()

			for _, x := range xs {
				h.Push(x)
			}
		},
	)
}

// PersistentMap checkpoints the map stored in *m. Restore replaces *m;
// earlier versions of the map are unaffected.
func PersistentMap[K, V any](m *pmap.Map[K, V]) Participant {
	return entryParticipant(
		func() iter.Seq2[K, V] { return m.All() },
		func(seq iter.Seq2[K, V]) { *m = pmap.FromSeq(m.Comparator(), seq) },
	)
}

// PersistentSet checkpoints the set stored in *s.
func PersistentSet[T any](s *pset.Set[T]) Participant {
	return sliceParticipant(
		func() []T { return s.ToSlice() },
		func(xs []T) { *s = pset.Collect(s.Comparator(), slices.Values(xs)) },
	)
}

// Deque checkpoints the deque stored in *d, front to back.
func Deque[T any](d *deque.Deque[T]) Participant {
	return sliceParticipant(
		func() []T { return d.ToSlice() },
		func(xs []T) { *d = deque.FromSlice(xs) },
	)
}

// RealTimeDeque checkpoints the deque stored in *d, front to back.
func RealTimeDeque[T any](d *deque.RealTime[T]) Participant {
	return sliceParticipant(
		func() []T { return d.ToSlice() },
		func(xs []T) { *d = deque.RealTimeFromSlice(xs) },
	)
}
