package vector_test

import (
	"testing"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/vector"
)

func TestBoolVecAt(t *testing.T) {
	v := vector.NewBool(alloc.Default(), []bool{true, false, true}, []bool{false, true, false})
	defer v.Release()

	if val, ok := v.At(0); !ok || !val {
		t.Fatalf("At(0) = (%v, %v), want (true, true)", val, ok)
	}
	if _, ok := v.At(1); ok {
		t.Fatalf("At(1) ok = true, want false (null)")
	}
}

func TestBoolVecEquals(t *testing.T) {
	v := vector.NewBool(alloc.Default(), []bool{true, false, true}, []bool{false, false, true})
	defer v.Release()

	got := v.Equals(true)
	want := []int8{1, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Equals(true)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBoolVecAndOrXor(t *testing.T) {
	a := vector.NewBool(alloc.Default(), []bool{true, true, false, false}, nil)
	defer a.Release()
	b := vector.NewBool(alloc.Default(), []bool{true, false, true, false}, nil)
	defer b.Release()

	and, err := a.And(b)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	defer and.Release()
	wantAnd := []bool{true, false, false, false}
	for i, want := range wantAnd {
		if val, _ := and.At(i); val != want {
			t.Fatalf("And.At(%d) = %v, want %v", i, val, want)
		}
	}

	or, err := a.Or(b)
	if err != nil {
		t.Fatalf("Or: %v", err)
	}
	defer or.Release()
	wantOr := []bool{true, true, true, false}
	for i, want := range wantOr {
		if val, _ := or.At(i); val != want {
			t.Fatalf("Or.At(%d) = %v, want %v", i, val, want)
		}
	}

	xor, err := a.Xor(b)
	if err != nil {
		t.Fatalf("Xor: %v", err)
	}
	defer xor.Release()
	wantXor := []bool{false, true, true, false}
	for i, want := range wantXor {
		if val, _ := xor.At(i); val != want {
			t.Fatalf("Xor.At(%d) = %v, want %v", i, val, want)
		}
	}
}

func TestBoolVecAndNullPropagates(t *testing.T) {
	a := vector.NewBool(alloc.Default(), []bool{true, true}, []bool{true, false})
	defer a.Release()
	b := vector.NewBool(alloc.Default(), []bool{true, true}, nil)
	defer b.Release()

	and, err := a.And(b)
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	defer and.Release()
	if _, ok := and.At(0); ok {
		t.Fatalf("And.At(0) ok = true, want false (null propagated)")
	}
	if val, ok := and.At(1); !ok || !val {
		t.Fatalf("And.At(1) = (%v, %v), want (true, true)", val, ok)
	}
}

func TestBoolVecAnyAll(t *testing.T) {
	v := vector.NewBool(alloc.Default(), []bool{false, false, true}, nil)
	defer v.Release()
	if !v.Any() {
		t.Fatalf("Any() = false, want true")
	}
	if v.All() {
		t.Fatalf("All() = true, want false")
	}
}

func TestBoolVecAllEmptyIsVacuouslyTrue(t *testing.T) {
	v := vector.NewBool(alloc.Default(), nil, nil)
	defer v.Release()
	if !v.All() {
		t.Fatalf("All() on empty vector = false, want true")
	}
	if v.Any() {
		t.Fatalf("Any() on empty vector = true, want false")
	}
}

func TestBoolVecLengthMismatch(t *testing.T) {
	a := vector.NewBool(alloc.Default(), []bool{true}, nil)
	defer a.Release()
	b := vector.NewBool(alloc.Default(), []bool{true, false}, nil)
	defer b.Release()

	if _, err := a.And(b); err == nil {
		t.Fatalf("And with mismatched lengths error = nil, want error")
	}
}

func TestBoolVecTake(t *testing.T) {
	v := vector.NewBool(alloc.Default(), []bool{true, false, true}, nil)
	defer v.Release()

	taken, err := v.Take([]int32{2, 1, 0})
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	defer taken.Release()

	bv := taken.(*vector.BoolVec)
	want := []bool{true, false, true}
	for i, w := range want {
		if val, ok := bv.At(i); !ok || val != w {
			t.Fatalf("taken.At(%d) = (%v, %v), want (%v, true)", i, val, ok, w)
		}
	}
}
