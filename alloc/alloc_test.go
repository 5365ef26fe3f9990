package alloc_test

import (
	"testing"

	"github.com/mabel-dev/draken/alloc"
)

func TestAllocateZeroLengthReturnsNil(t *testing.T) {
	a := alloc.Default()
	if got := a.Allocate(0); got != nil {
		t.Fatalf("Allocate(0) = %v, want nil", got)
	}
}

func TestAllocateAndFree(t *testing.T) {
	a := alloc.Default()
	b := a.Allocate(128)
	if len(b) != 128 {
		t.Fatalf("len(Allocate(128)) = %d, want 128", len(b))
	}
	a.Free(b)
}

func TestReallocateGrows(t *testing.T) {
	a := alloc.Default()
	b := a.Allocate(4)
	copy(b, []byte{1, 2, 3, 4})
	b = a.Reallocate(8, b)
	if len(b) != 8 {
		t.Fatalf("len(Reallocate(8, ...)) = %d, want 8", len(b))
	}
	for i, want := range []byte{1, 2, 3, 4} {
		if b[i] != want {
			t.Fatalf("b[%d] = %d, want %d", i, b[i], want)
		}
	}
}

func TestReallocateToZeroReturnsNil(t *testing.T) {
	a := alloc.Default()
	b := a.Allocate(4)
	if got := a.Reallocate(0, b); got != nil {
		t.Fatalf("Reallocate(0, ...) = %v, want nil", got)
	}
}
