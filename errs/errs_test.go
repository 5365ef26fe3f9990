package errs_test

import (
	"errors"
	"testing"

	"github.com/mabel-dev/draken/errs"
)

func TestWrapPreservesIs(t *testing.T) {
	cases := []*errs.Error{
		errs.OutOfMemory,
		errs.IndexOutOfRange,
		errs.LengthMismatch,
		errs.ColumnNotFound,
		errs.UnsupportedType,
		errs.Incomplete,
		errs.CapacityMismatch,
		errs.BuilderClosed,
		errs.InvalidOffset,
	}

	for _, sentinel := range cases {
		t.Run(sentinel.Kind.String(), func(t *testing.T) {
			wrapped := errs.Wrap(sentinel, "index %d", 42)
			if !errors.Is(wrapped, sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false, want true", wrapped, sentinel)
			}
			for _, other := range cases {
				if other == sentinel {
					continue
				}
				if errors.Is(wrapped, other) {
					t.Fatalf("errors.Is(%v, %v) = true, want false", wrapped, other)
				}
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := errs.IndexOutOfRange.Kind.String(); got != "IndexOutOfRange" {
		t.Fatalf("Kind.String() = %q, want IndexOutOfRange", got)
	}
}
