package pqueue

// Interface is the contract shared by Heap and Stable.
type Interface[T any] interface {
	// Push inserts x.
	Push(x T)
	// Peek returns the element of highest priority without removing it.
	Peek() (T, bool)
	// Pop removes and returns the element of highest priority.
	Pop() (T, bool)
	Len() int
	IsEmpty() bool
	// Clear removes every element.
	Clear()
}

var (
	_ Interface[int] = (*Heap[int])(nil)
	_ Interface[int] = (*Stable[int])(nil)
)
