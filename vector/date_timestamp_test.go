package vector_test

import (
	"testing"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/typeid"
	"github.com/mabel-dev/draken/vector"
)

func TestDate32VecTag(t *testing.T) {
	v := vector.NewDate32(alloc.Default(), []int32{19000, 19001}, nil)
	defer v.Release()

	if v.Tag() != typeid.Date32 {
		t.Fatalf("Tag() = %v, want Date32", v.Tag())
	}
	if val, ok := v.At(0); !ok || val != 19000 {
		t.Fatalf("At(0) = (%d, %v), want (19000, true)", val, ok)
	}
}

func TestTimestamp64VecTag(t *testing.T) {
	v := vector.NewTimestamp64(alloc.Default(), []int64{1_700_000_000_000_000_000}, nil)
	defer v.Release()

	if v.Tag() != typeid.Timestamp64 {
		t.Fatalf("Tag() = %v, want Timestamp64", v.Tag())
	}
	if val, ok := v.At(0); !ok || val != 1_700_000_000_000_000_000 {
		t.Fatalf("At(0) = (%d, %v), want nanosecond value", val, ok)
	}
}
