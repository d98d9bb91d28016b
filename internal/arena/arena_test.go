package arena

import (
	"testing"

	"github.com/hupe1980/collections/testutil"
)

type node struct {
	key         int
	left, right Index
}

func TestArena_Alloc(t *testing.T) {
	t.Run("sentinel", func(t *testing.T) {
		a := New[node]()

		if a.Len() != 0 {
			t.Errorf("expected empty arena, got %d slots", a.Len())
		}
		if !a.Live(Nil) {
			t.Error("sentinel must be live")
		}

		a.Get(Nil).left = 7
		if a.Get(Nil).left != 7 {
			t.Error("sentinel must be writable")
		}
	})

	t.Run("indices are dense", func(t *testing.T) {
		a := New[node]()

		for want := Index(1); want <= 100; want++ {
			if got := a.Alloc(node{key: int(want)}); got != want {
				t.Fatalf("expected index %d, got %d", want, got)
			}
		}

		if a.Len() != 100 {
			t.Errorf("expected 100 slots, got %d", a.Len())
		}
		if a.Get(42).key != 42 {
			t.Errorf("expected key 42, got %d", a.Get(42).key)
		}
	})

	t.Run("addresses are stable", func(t *testing.T) {
		a := New[node]()
		p := a.Get(a.Alloc(node{key: 1}))

		for i := range 10_000 {
			a.Alloc(node{key: i})
		}

		p.key = 99
		if a.Get(1).key != 99 {
			t.Error("slot moved during growth")
		}
	})
}

func TestArena_Free(t *testing.T) {
	t.Run("reuses freed slots", func(t *testing.T) {
		a := New[node]()
		x := a.Alloc(node{key: 1})
		y := a.Alloc(node{key: 2})

		a.Free(x)

		if a.Live(x) {
			t.Error("freed slot still live")
		}
		if a.Len() != 1 {
			t.Errorf("expected 1 live slot, got %d", a.Len())
		}

		z := a.Alloc(node{key: 3})
		if z != x {
			t.Errorf("expected reuse of %d, got %d", x, z)
		}
		if a.Get(y).key != 2 || a.Get(z).key != 3 {
			t.Error("unexpected slot contents")
		}
		if a.Slots() != 3 {
			t.Errorf("expected 3 slots, got %d", a.Slots())
		}
	})

	t.Run("double free panics", func(t *testing.T) {
		a := New[node]()
		x := a.Alloc(node{})
		a.Free(x)

		testutil.RequirePanicsWith(t, ErrInvalidIndex, func() { a.Free(x) })
		testutil.RequirePanicsWith(t, ErrInvalidIndex, func() { a.Get(x) })
		testutil.RequirePanicsWith(t, ErrInvalidIndex, func() { a.Free(Nil) })
		testutil.RequirePanicsWith(t, ErrInvalidIndex, func() { a.Get(1000) })
	})
}

func TestArena_All(t *testing.T) {
	a := New[node]()
	for i := range 10 {
		a.Alloc(node{key: i})
	}

	a.Free(3)
	a.Free(7)

	var keys []int
	for i, n := range a.All() {
		if i == Nil {
			t.Fatal("sentinel must not be iterated")
		}
		keys = append(keys, n.key)
	}

	want := []int{0, 1, 3, 4, 5, 7, 8, 9}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}

func TestArena_CloneReset(t *testing.T) {
	a := New[node]()
	x := a.Alloc(node{key: 1})

	c := a.Clone()
	c.Get(x).key = 2
	c.Alloc(node{key: 3})

	if a.Get(x).key != 1 {
		t.Error("clone shares slots with original")
	}
	if a.Len() != 1 || c.Len() != 2 {
		t.Errorf("unexpected lengths %d/%d", a.Len(), c.Len())
	}

	a.Reset()
	if a.Len() != 0 || a.Live(x) {
		t.Error("reset left live slots")
	}
}
