// Package pqueue implements priority queues that pop the element of highest
// priority first.
//
// Heap is a binary max-heap stored in a list.List. The relative order in
// which elements of equal priority are popped is unspecified: it is neither
// FIFO nor LIFO, and callers must not depend on it.
//
// Stable keeps elements in an ordered map keyed by (value, insertion
// sequence) and pops equal priorities in insertion order, at the cost of a
// tree node per element and a sequence counter that grows with every push.
//
// Both satisfy Interface and can be swapped for each other.
package pqueue
