package vector

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/mabel-dev/draken/typeid"
)

// NullHash is the constant every kernel hashes a null position to,
// regardless of vector type (§4.2, §6).
const NullHash uint64 = 0x9E3779B97F4A7C15

// String-vector hash parameters (§4.2): FNV-1a with this offset basis and
// prime. Every hashing kernel in this package reuses the same
// accumulator so hashes are comparable across vector types.
const (
	fnvOffsetBasis uint64 = 0xCBF29CE484222325
	fnvPrime       uint64 = 0x100000001B3
)

func fnv1a(seed uint64, b []byte) uint64 {
	h := seed
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime
	}
	return h
}

// Vector is the capability set every concrete vector type satisfies
// (§4.2). Type-specific kernels (comparisons, reductions, Uppercase, ...)
// live on the concrete types themselves.
type Vector interface {
	Length() int
	Tag() typeid.Tag
	NullCount() int
	IsNullMask() []byte
	Take(indices []int32) (Vector, error)
	Hash() []uint64
	ToArrow() (arrow.Array, error)
	// Release drops owned storage or the borrowed keep-alive handle.
	Release()
}
