// Package order provides the three-way comparison used by every ordered
// container in this module.
//
// A Compare is a strategy value supplied by the caller. There is no implicit
// ordering per type: containers receive the comparator explicitly, and the
// comparator must describe a total order (antisymmetric and transitive) for
// the containers' invariants to hold.
package order

import (
	"cmp"
	"strconv"
)

// Order is the result of a three-way comparison.
type Order int8

const (
	Less    Order = -1
	Equal   Order = 0
	Greater Order = 1
)

// Of returns the Order matching the sign of c.
func Of(c int) Order {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// Reverse swaps Less and Greater.
func (o Order) Reverse() Order { return -o }

// IsLess reports whether o is Less.
func (o Order) IsLess() bool { return o == Less }

// IsEqual reports whether o is Equal.
func (o Order) IsEqual() bool { return o == Equal }

// IsGreater reports whether o is Greater.
func (o Order) IsGreater() bool { return o == Greater }

func (o Order) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "Order(" + strconv.Itoa(int(o)) + ")"
	}
}

// Compare is a total order over T.
type Compare[T any] func(a, b T) Order

// Int adapts c to the func(a, b T) int shape used by the slices and cmp packages.
func (c Compare[T]) Int() func(a, b T) int {
	return func(a, b T) int { return int(c(a, b)) }
}

// Natural orders values of an ordered type by <.
func Natural[T cmp.Ordered]() Compare[T] {
	return func(a, b T) Order { return Of(cmp.Compare(a, b)) }
}

// FromInt adapts a func(a, b T) int comparator such as strings.Compare.
func FromInt[T any](f func(a, b T) int) Compare[T] {
	return func(a, b T) Order { return Of(f(a, b)) }
}

// Reverse returns the inverse order of c.
func Reverse[T any](c Compare[T]) Compare[T] {
	return func(a, b T) Order { return c(b, a) }
}

// By orders values of T by the key extracted with key.
func By[T, K any](key func(T) K, c Compare[K]) Compare[T] {
	return func(a, b T) Order { return c(key(a), key(b)) }
}

// Then breaks ties of c with next.
func Then[T any](c, next Compare[T]) Compare[T] {
	return func(a, b T) Order {
		if o := c(a, b); o != Equal {
			return o
		}

		return next(a, b)
	}
}
