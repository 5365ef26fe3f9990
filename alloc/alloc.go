package alloc

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Allocator is Draken's owned-buffer allocator contract: alloc, realloc,
// free. It is satisfied directly by arrow-go's memory.Allocator, so an
// owned Draken buffer and an Arrow-native buffer are allocated the same
// way.
type Allocator interface {
	// Allocate returns size bytes of zeroed, 64-byte aligned storage.
	// Allocate(0) returns nil: the data region of a zero-length vector
	// must never be dereferenced.
	Allocate(size int) []byte
	// Reallocate grows or shrinks b to newSize, preserving its prefix.
	Reallocate(newSize int, b []byte) []byte
	// Free releases b. For the GC-backed allocator this is a no-op;
	// it exists so a future arena or cgo-backed allocator can plug in
	// without changing any caller.
	Free(b []byte)
}

type arrowAllocator struct {
	inner memory.Allocator
}

// Wrap adapts an arrow-go memory.Allocator as a Draken Allocator.
func Wrap(inner memory.Allocator) Allocator {
	return &arrowAllocator{inner: inner}
}

// Default returns the process-wide Go-heap-backed allocator, the same
// one arrow-go itself defaults to (memory.DefaultAllocator).
func Default() Allocator {
	return Wrap(memory.DefaultAllocator)
}

func (a *arrowAllocator) Allocate(size int) []byte {
	if size == 0 {
		return nil
	}
	return a.inner.Allocate(size)
}

func (a *arrowAllocator) Reallocate(newSize int, b []byte) []byte {
	if newSize == 0 {
		a.inner.Free(b)
		return nil
	}
	if b == nil {
		return a.inner.Allocate(newSize)
	}
	return a.inner.Reallocate(newSize, b)
}

func (a *arrowAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	a.inner.Free(b)
}
