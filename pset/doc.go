// Package pset implements a persistent ordered set on top of pmap.
//
// Like pmap.Map, a Set is an immutable value: Add, Remove and the set
// algebra return new sets that share structure with their inputs.
package pset
