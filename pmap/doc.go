// Package pmap implements a persistent ordered map as a weight-balanced
// binary search tree.
//
// Every update returns a new Map and leaves the receiver untouched. Only the
// O(log n) nodes on the path to the change are copied; all other subtrees are
// shared between the old and the new version, so earlier versions can be
// kept as cheap snapshots.
//
// Keys are ordered by the order.Compare given to New. A Map keeps its
// comparator for its whole lifetime, including all versions derived from it.
//
// Balance follows the weight-balanced scheme with parameters delta = 3 and
// ratio = 2: the size of one subtree never exceeds three times the size of
// its sibling (plus one), which bounds the height by O(log n). Union,
// Intersect and Difference work by splitting one tree at the root key of the
// other and linking the recursive results.
package pmap
