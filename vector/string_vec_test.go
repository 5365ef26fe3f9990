package vector_test

import (
	"bytes"
	"testing"

	"github.com/mabel-dev/draken/vector"
)

func buildStrings(t *testing.T, values []string, nulls []bool) *vector.StringVec {
	t.Helper()
	total := 0
	for i, v := range values {
		// AppendNull is zero-width, so null rows add no bytes.
		if nulls != nil && nulls[i] {
			continue
		}
		total += len(v)
	}
	b := vector.WithCounts(len(values), total)
	for i, v := range values {
		if nulls != nil && nulls[i] {
			if err := b.AppendNull(); err != nil {
				t.Fatalf("AppendNull: %v", err)
			}
			continue
		}
		if err := b.Append([]byte(v)); err != nil {
			t.Fatalf("Append(%q): %v", v, err)
		}
	}
	sv, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return sv
}

func TestStringVectorBuilderWithCounts(t *testing.T) {
	v := buildStrings(t, []string{"foo", "bar", "baz"}, nil)
	defer v.Release()

	if v.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", v.Length())
	}
	val, ok := v.At(1)
	if !ok || !bytes.Equal(val, []byte("bar")) {
		t.Fatalf("At(1) = (%q, %v), want (bar, true)", val, ok)
	}
}

func TestStringVectorBuilderWithNulls(t *testing.T) {
	v := buildStrings(t, []string{"a", "", "c"}, []bool{false, true, false})
	defer v.Release()

	if v.NullCount() != 1 {
		t.Fatalf("NullCount() = %d, want 1", v.NullCount())
	}
	if _, ok := v.At(1); ok {
		t.Fatalf("At(1) ok = true, want false (null)")
	}
}

func TestStringVectorBuilderIncompleteFinish(t *testing.T) {
	b := vector.WithCounts(3, 10)
	if err := b.Append([]byte("x")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := b.Finish(); err == nil {
		t.Fatalf("Finish with missing rows error = nil, want error")
	}
}

func TestStringVectorBuilderFinishTwiceErrors(t *testing.T) {
	b := vector.WithCounts(1, 1)
	if err := b.Append([]byte("x")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := b.Finish(); err == nil {
		t.Fatalf("second Finish() error = nil, want errs.BuilderClosed")
	}
}

func TestStringVectorBuilderWithCountsExceedsCapacity(t *testing.T) {
	b := vector.WithCounts(1, 2)
	if err := b.Append([]byte("abc")); err == nil {
		t.Fatalf("Append exceeding byte capacity error = nil, want error")
	}
}

func TestStringVectorBuilderWithCountsUnderusedBytesFinishErrors(t *testing.T) {
	b := vector.WithCounts(3, 100)
	for i := 0; i < 3; i++ {
		if err := b.Append([]byte("x")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if _, err := b.Finish(); err == nil {
		t.Fatalf("Finish with %d of 100 declared bytes used error = nil, want errs.CapacityMismatch", b.BytesUsed())
	}
}

func TestStringVectorBuilderWithCountsExactBytesFinishes(t *testing.T) {
	b := vector.WithCounts(2, 5)
	if err := b.Append([]byte("abc")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append([]byte("de")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	v, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	defer v.Release()
	if v.Length() != 2 {
		t.Fatalf("Length() = %d, want 2", v.Length())
	}
}

func TestStringVectorBuilderWithEstimateUnderusedBytesFinishes(t *testing.T) {
	// with_estimate is not strict: an estimate that overshoots the true
	// byte count must still finish successfully.
	b := vector.WithEstimate(1, 100)
	if err := b.Append([]byte("x")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v, want nil for a non-strict builder", err)
	}
}

func TestStringVectorBuilderWithEstimateGrows(t *testing.T) {
	b := vector.WithEstimate(2, 1)
	if err := b.Append([]byte("hello")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append([]byte("world")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	v, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	defer v.Release()
	val, ok := v.At(0)
	if !ok || !bytes.Equal(val, []byte("hello")) {
		t.Fatalf("At(0) = (%q, %v), want (hello, true)", val, ok)
	}
}

func TestStringVectorBuilderRowCountFixed(t *testing.T) {
	b := vector.WithEstimate(2, 4)
	if err := b.Append([]byte("a")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append([]byte("b")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append([]byte("c")); err == nil {
		t.Fatalf("Append beyond declared row count error = nil, want error")
	}
}

func TestStringVectorBuilderSetAndSetNull(t *testing.T) {
	b := vector.WithCounts(2, 6)
	if err := b.Append([]byte("abc")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append([]byte("def")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Set(0, []byte("xyz")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.SetNull(1); err != nil {
		t.Fatalf("SetNull: %v", err)
	}
	v, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	defer v.Release()

	val, ok := v.At(0)
	if !ok || !bytes.Equal(val, []byte("xyz")) {
		t.Fatalf("At(0) = (%q, %v), want (xyz, true)", val, ok)
	}
	if _, ok := v.At(1); ok {
		t.Fatalf("At(1) ok = true, want false (set_null)")
	}
}

func TestStringVectorSetMismatchedLength(t *testing.T) {
	b := vector.WithCounts(1, 3)
	if err := b.Append([]byte("abc")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Set(0, []byte("ab")); err == nil {
		t.Fatalf("Set with mismatched length error = nil, want error")
	}
}

func TestStringVecEquals(t *testing.T) {
	v := buildStrings(t, []string{"foo", "bar", "foo"}, nil)
	defer v.Release()

	got := v.Equals([]byte("foo"))
	want := []int8{1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Equals[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStringVecUppercase(t *testing.T) {
	v := buildStrings(t, []string{"Hello", "world!"}, nil)
	defer v.Release()

	upper := v.Uppercase()
	defer upper.Release()
	val, _ := upper.At(0)
	if !bytes.Equal(val, []byte("HELLO")) {
		t.Fatalf("Uppercase At(0) = %q, want HELLO", val)
	}
	val, _ = upper.At(1)
	if !bytes.Equal(val, []byte("WORLD!")) {
		t.Fatalf("Uppercase At(1) = %q, want WORLD!", val)
	}
}

func TestStringVecTakePreservesNullRanges(t *testing.T) {
	v := buildStrings(t, []string{"a", "bb", "ccc"}, []bool{false, true, false})
	defer v.Release()

	taken, err := v.Take([]int32{2, 1, 0})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer taken.Release()

	sv := taken.(*vector.StringVec)
	val, ok := sv.At(0)
	if !ok || !bytes.Equal(val, []byte("ccc")) {
		t.Fatalf("taken.At(0) = (%q, %v), want (ccc, true)", val, ok)
	}
	if _, ok := sv.At(1); ok {
		t.Fatalf("taken.At(1) ok = true, want false (was null)")
	}
}

func TestStringVecTakeOutOfRange(t *testing.T) {
	v := buildStrings(t, []string{"a"}, nil)
	defer v.Release()

	if _, err := v.Take([]int32{3}); err == nil {
		t.Fatalf("Take out of range error = nil, want error")
	}
}

func TestStringVecToArrow(t *testing.T) {
	v := buildStrings(t, []string{"a", "b"}, []bool{false, true})
	defer v.Release()

	arr, err := v.ToArrow()
	if err != nil {
		t.Fatalf("ToArrow: %v", err)
	}
	defer arr.Release()
	if arr.Len() != 2 {
		t.Fatalf("arr.Len() = %d, want 2", arr.Len())
	}
	if !arr.IsNull(1) {
		t.Fatalf("arr.IsNull(1) = false, want true")
	}
}

func TestStringVecHashNullIsConstant(t *testing.T) {
	v := buildStrings(t, []string{"a", "b"}, []bool{true, false})
	defer v.Release()

	hashes := v.Hash()
	if hashes[0] != vector.NullHash {
		t.Fatalf("Hash()[0] = %#x, want NullHash", hashes[0])
	}
}
