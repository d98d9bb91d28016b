package checkpoint_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/collections/blobstore"
	"github.com/hupe1980/collections/checkpoint"
	"github.com/hupe1980/collections/list"
	"github.com/hupe1980/collections/order"
	"github.com/hupe1980/collections/ordset"
)

func Example() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	todo := list.FromSlice([]string{"write", "test"})
	done := ordset.New(order.Natural[string]())
	done.Add("plan")

	mgr := checkpoint.New(store)
	mgr.MustRegister("todo", checkpoint.List(todo))
	mgr.MustRegister("done", checkpoint.Set(done))

	mf, err := mgr.Checkpoint(ctx)
	if err != nil {
		panic(err)
	}

	fmt.Println("generation", mf.Generation)

	// A fresh process restores the same contents.
	todo2 := list.New[string]()
	done2 := ordset.New(order.Natural[string]())

	mgr2 := checkpoint.New(store)
	mgr2.MustRegister("todo", checkpoint.List(todo2))
	mgr2.MustRegister("done", checkpoint.Set(done2))

	if _, err := mgr2.Restore(ctx); err != nil {
		panic(err)
	}

	fmt.Println(todo2.ToSlice(), done2.ToSlice())
	// Output:
	// generation 1
	// [write test] [plan]
}
