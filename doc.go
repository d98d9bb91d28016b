// Package collections is a library of generic container types for Go.
//
// Every ordered container takes an explicit comparator from package order;
// there is no implicit ordering per type.
//
// # Containers
//
//   - [list.List]: growable array built from power-of-two data blocks.
//     Appends never move existing elements, and unused space stays within
//     O(sqrt(n)).
//   - [pqueue.Heap]: binary max-heap on a list. [pqueue.Stable] pops equal
//     priorities in insertion order.
//   - [pmap.Map] and [pset.Set]: persistent weight-balanced trees. Every
//     update returns a new version and leaves the old one intact.
//   - [ordmap.Map] and [ordset.Set]: mutable red-black trees whose nodes
//     live in an index arena. [ordmap.BTree] is the B-tree alternative.
//   - [deque.Deque]: persistent double-ended queue with amortized O(1)
//     operations. [deque.RealTime] bounds every operation to O(1).
//
// # Quick Start
//
//	words := list.FromSlice([]string{"b", "c", "a"})
//	words.Sort(order.Natural[string]())
//
//	counts := ordmap.New[string, int](order.Natural[string]())
//	counts.Put("a", 1)
//
//	v1 := pmap.New[string, int](order.Natural[string]()).With("a", 1)
//	v2 := v1.With("b", 2) // v1 still has one entry
//
// # Checkpoints
//
// Package checkpoint saves containers to a blob store (local directory,
// memory, S3 or MinIO) and restores them:
//
//	mgr := checkpoint.New(blobstore.NewLocalStore("./data"))
//	mgr.MustRegister("counts", checkpoint.Map(counts))
//	mgr.Checkpoint(ctx)
//	...
//	mgr.Restore(ctx)
//
// Containers are not safe for concurrent use; callers synchronize.
package collections
