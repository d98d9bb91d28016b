package arena

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/list"
)

// Index addresses a slot in an Arena.
type Index uint32

// Nil is the sentinel slot. It is allocated with the arena and never freed.
const Nil Index = 0

// ErrInvalidIndex is the cause of the panic raised when a slot that is not
// live is addressed or freed.
var ErrInvalidIndex = errors.New("arena: invalid index")

// Arena is a typed slot allocator.
type Arena[T any] struct {
	slots *list.List[T]
	free  *list.List[Index]
	live  *bitset.BitSet
}

// New returns an arena holding only the zero-valued sentinel slot.
func New[T any]() *Arena[T] {
	a := &Arena[T]{
		slots: list.New[T](),
		free:  list.New[Index](),
		live:  bitset.New(0),
	}

	var zero T
	a.slots.Add(zero)
	a.live.Set(uint(Nil))

	return a
}

// Alloc stores v in a free slot and returns its index.
func (a *Arena[T]) Alloc(v T) Index {
	if i, ok := a.free.RemoveLast(); ok {
		a.slots.Put(int(i), v)
		a.live.Set(uint(i))

		return i
	}

	i := Index(a.slots.Len())
	if int(i) != a.slots.Len() {
		panic(errors.AssertionFailedf("arena: index space exhausted at %d slots", a.slots.Len()))
	}

	a.slots.Add(v)
	a.live.Set(uint(i))

	return i
}

// Free releases slot i. The slot's value is reset to the zero value.
func (a *Arena[T]) Free(i Index) {
	if i == Nil || !a.Live(i) {
		panic(errors.Wrapf(ErrInvalidIndex, "free of slot %d", i))
	}

	var zero T
	a.slots.Put(int(i), zero)
	a.live.Clear(uint(i))
	a.free.Add(i)
}

// Get returns the address of slot i. The address stays valid until the slot
// is freed.
func (a *Arena[T]) Get(i Index) *T {
	if !a.Live(i) {
		panic(errors.Wrapf(ErrInvalidIndex, "slot %d is not live", i))
	}

	return a.slots.Ref(int(i))
}

// Live reports whether slot i is allocated. The sentinel is always live.
func (a *Arena[T]) Live(i Index) bool {
	return a.live.Test(uint(i))
}

// Len returns the number of allocated slots, not counting the sentinel.
func (a *Arena[T]) Len() int {
	return int(a.live.Count()) - 1
}

// Slots returns the number of slots ever created, including the sentinel and
// freed slots waiting for reuse.
func (a *Arena[T]) Slots() int {
	return a.slots.Len()
}

// All returns an iterator over the live slots in index order, excluding the
// sentinel.
func (a *Arena[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for i, ok := a.live.NextSet(1); ok; i, ok = a.live.NextSet(i + 1) {
			if !yield(Index(i), a.slots.Ref(int(i))) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the arena. Slot values are copied by
// assignment, so indices remain valid in the copy.
func (a *Arena[T]) Clone() *Arena[T] {
	return &Arena[T]{
		slots: a.slots.Clone(),
		free:  a.free.Clone(),
		live:  a.live.Clone(),
	}
}

// Reset releases every slot except a fresh sentinel.
func (a *Arena[T]) Reset() {
	*a = *New[T]()
}
