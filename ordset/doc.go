// Package ordset implements a mutable ordered set on the red-black tree of
// package ordmap.
package ordset
