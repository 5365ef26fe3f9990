// Package vector implements the typed vector hierarchy: one concrete
// vector per supported logical type, each satisfying the shared Vector
// kernel contract (length, null handling, take, hash, Arrow export) plus
// per-type comparison, reduction and transform kernels.
package vector
