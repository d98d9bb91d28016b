package deque

// stack is a persistent singly linked stack. nil is the empty stack.
type stack[T any] struct {
	head T
	tail *stack[T]
}

func push[T any](s *stack[T], x T) *stack[T] {
	return &stack[T]{head: x, tail: s}
}

// pushAll pushes xs in order, so the last element ends up on top.
func pushAll[T any](s *stack[T], xs []T) *stack[T] {
	for _, x := range xs {
		s = push(s, x)
	}

	return s
}

func (s *stack[T]) each(yield func(T) bool) bool {
	for ; s != nil; s = s.tail {
		if !yield(s.head) {
			return false
		}
	}

	return true
}

// appendTo appends the elements of s from top to bottom to dst.
func (s *stack[T]) appendTo(dst []T) []T {
	for ; s != nil; s = s.tail {
		dst = append(dst, s.head)
	}

	return dst
}
