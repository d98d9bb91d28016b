package collections_test

import (
	"fmt"

	"github.com/hupe1980/collections/deque"
	"github.com/hupe1980/collections/list"
	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/ordmap"
	"github.com/hupe1980/collections/pmap"
	"github.com/hupe1980/collections/pqueue"
)

func Example() {
	words := list.FromSlice([]string{"pear", "apple", "fig"})
	words.Sort(order.Natural[string]())
	fmt.Println(words)

	byLen := ordmap.New[int, string](order.Natural[int]())
	for w := range words.Values() {
		byLen.Put(len(w), w)
	}

	k, v, _ := byLen.Min()
	fmt.Println(k, v)

	h := pqueue.FromSlice(order.Natural[int](), []int{3, 9, 1})
	top, _ := h.Pop()
	fmt.Println(top)

	v1 := pmap.New[string, int](order.Natural[string]()).With("a", 1)
	v2 := v1.With("b", 2)
	fmt.Println(v1.Len(), v2.Len())

	d := deque.FromSlice([]int{1, 2}).PushFront(0)
	fmt.Println(d.ToSlice())
	// Output:
	// [apple fig pear]
	// 3 fig
	// 9
	// 1 2
	// [0 1 2]
}
