package ordmap

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/collections/order"
)

func keys[K, V any](seq iter.Seq2[K, V]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	}
}

func values[K, V any](seq iter.Seq2[K, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}

func every[K, V any](seq iter.Seq2[K, V], pred func(K, V) bool) bool {
	for k, v := range seq {
		if !pred(k, v) {
			return false
		}
	}

	return true
}

func not[K, V any](pred func(K, V) bool) func(K, V) bool {
	return func(k K, v V) bool { return !pred(k, v) }
}

func count[K, V any](seq iter.Seq2[K, V]) int {
	n := 0
	for range seq {
		n++
	}

	return n
}

// ascending returns an assertion failure unless seq is strictly increasing.
func ascending[K any](c order.Compare[K], seq iter.Seq[K]) error {
	var (
		prev  K
		first = true
	)

	for k := range seq {
		if !first && c(prev, k) != order.Less {
			return errors.AssertionFailedf("ordmap: keys out of order")
		}

		prev, first = k, false
	}

	return nil
}
