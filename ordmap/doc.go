// Package ordmap implements mutable ordered maps.
//
// Map is a red-black tree whose nodes live in an index arena: links between
// nodes are arena slots rather than pointers, and slot 0 doubles as the
// black sentinel leaf. BTree is an in-place B-tree of configurable degree
// that keeps entries in sorted slices per node.
//
// Both maps are updated in place and are not safe for concurrent use. The
// comparator passed to the constructor orders the keys for the map's whole
// lifetime. Iterators observe the map as it is while they run; mutating a
// map during iteration is not supported.
//
// For immutable maps with structural sharing see package pmap.
package ordmap
