package ops_test

import (
	"testing"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/ops"
	"github.com/mabel-dev/draken/typeid"
	"github.com/mabel-dev/draken/vector"
)

func TestGetOpArithmeticSameType(t *testing.T) {
	h, ok := ops.GetOp(typeid.Int32, false, typeid.Int32, false, ops.Add)
	if !ok {
		t.Fatalf("GetOp(Int32, Int32, Add) ok = false, want true")
	}

	left := vector.NewInt32(alloc.Default(), []int32{1, 2, 3}, nil)
	defer left.Release()
	right := vector.NewInt32(alloc.Default(), []int32{10, 20, 30}, nil)
	defer right.Release()

	result, err := h(left, right)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	defer result.Release()

	iv := result.(*vector.Int32Vec)
	if val, ok := iv.At(0); !ok || val != 11 {
		t.Fatalf("At(0) = (%d, %v), want (11, true)", val, ok)
	}
	if val, ok := iv.At(2); !ok || val != 33 {
		t.Fatalf("At(2) = (%d, %v), want (33, true)", val, ok)
	}
}

func TestGetOpArithmeticMismatchedTypeRejected(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Int32, false, typeid.Int64, false, ops.Add); ok {
		t.Fatalf("GetOp(Int32, Int64, Add) ok = true, want false")
	}
}

func TestGetOpArithmeticOnBoolRejected(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Bool, false, typeid.Bool, false, ops.Add); ok {
		t.Fatalf("GetOp(Bool, Bool, Add) ok = true, want false")
	}
}

func TestGetOpBooleanRequiresBool(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Int32, false, typeid.Int32, false, ops.And); ok {
		t.Fatalf("GetOp(Int32, Int32, And) ok = true, want false")
	}
	if _, ok := ops.GetOp(typeid.Bool, false, typeid.Bool, false, ops.And); !ok {
		t.Fatalf("GetOp(Bool, Bool, And) ok = false, want true")
	}
}

func TestGetOpComparisonAcrossTypesRejected(t *testing.T) {
	if _, ok := ops.GetOp(typeid.String, false, typeid.Int32, false, ops.Eq); ok {
		t.Fatalf("GetOp(String, Int32, Eq) ok = true, want false")
	}
}

func TestGetOpScalarOnLeftVectorOnRightRejected(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Int32, true, typeid.Int32, false, ops.Add); ok {
		t.Fatalf("GetOp with scalar-left/vector-right ok = true, want false")
	}
}

func TestGetOpScalarOnRightVectorOnLeftAllowed(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Int32, false, typeid.Int32, true, ops.Add); !ok {
		t.Fatalf("GetOp with vector-left/scalar-right ok = false, want true")
	}
}

func TestGetOpBothScalarAllowed(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Int32, true, typeid.Int32, true, ops.Add); !ok {
		t.Fatalf("GetOp with both scalar ok = false, want true")
	}
}

func TestDivisionByZeroProducesNull(t *testing.T) {
	h, ok := ops.GetOp(typeid.Int64, false, typeid.Int64, false, ops.Div)
	if !ok {
		t.Fatalf("GetOp(Int64, Int64, Div) ok = false, want true")
	}

	left := vector.NewInt64(alloc.Default(), []int64{10, 20}, nil)
	defer left.Release()
	right := vector.NewInt64(alloc.Default(), []int64{2, 0}, nil)
	defer right.Release()

	result, err := h(left, right)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	defer result.Release()

	iv := result.(*vector.Int64Vec)
	if val, ok := iv.At(0); !ok || val != 5 {
		t.Fatalf("At(0) = (%d, %v), want (5, true)", val, ok)
	}
	if _, ok := iv.At(1); ok {
		t.Fatalf("At(1) ok = true, want false (division by zero)")
	}
}

func TestGetOpFloatComparison(t *testing.T) {
	h, ok := ops.GetOp(typeid.Float64, false, typeid.Float64, false, ops.Gt)
	if !ok {
		t.Fatalf("GetOp(Float64, Float64, Gt) ok = false, want true")
	}

	left := vector.NewFloat64(alloc.Default(), []float64{1.5, 3.5}, nil)
	defer left.Release()
	right := vector.NewFloat64(alloc.Default(), []float64{2.0, 3.0}, nil)
	defer right.Release()

	result, err := h(left, right)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	defer result.Release()

	bv := result.(*vector.BoolVec)
	if val, ok := bv.At(0); !ok || val {
		t.Fatalf("At(0) = (%v, %v), want (false, true)", val, ok)
	}
	if val, ok := bv.At(1); !ok || !val {
		t.Fatalf("At(1) = (%v, %v), want (true, true)", val, ok)
	}
}

func TestGetOpDateOrderingButNoArithmetic(t *testing.T) {
	if _, ok := ops.GetOp(typeid.Date32, false, typeid.Date32, false, ops.Lt); !ok {
		t.Fatalf("GetOp(Date32, Date32, Lt) ok = false, want true")
	}
	if _, ok := ops.GetOp(typeid.Date32, false, typeid.Date32, false, ops.Add); ok {
		t.Fatalf("GetOp(Date32, Date32, Add) ok = true, want false")
	}
}

func TestGetOpBoolEqualsHonoursNulls(t *testing.T) {
	h, ok := ops.GetOp(typeid.Bool, false, typeid.Bool, false, ops.Eq)
	if !ok {
		t.Fatalf("GetOp(Bool, Bool, Eq) ok = false, want true")
	}

	left := vector.NewBool(alloc.Default(), []bool{true, false, true}, []bool{false, false, true})
	defer left.Release()
	right := vector.NewBool(alloc.Default(), []bool{true, false, true}, nil)
	defer right.Release()

	result, err := h(left, right)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	defer result.Release()

	bv := result.(*vector.BoolVec)
	if val, ok := bv.At(0); !ok || !val {
		t.Fatalf("At(0) = (%v, %v), want (true, true)", val, ok)
	}
	if val, _ := bv.At(2); val {
		t.Fatalf("At(2) = %v, want false (left operand is null)", val)
	}
}

func TestGetOpStringEquals(t *testing.T) {
	h, ok := ops.GetOp(typeid.String, false, typeid.String, false, ops.Eq)
	if !ok {
		t.Fatalf("GetOp(String, String, Eq) ok = false, want true")
	}

	left := buildStringVec(t, []string{"foo", "bar"})
	defer left.Release()
	right := buildStringVec(t, []string{"foo", "baz"})
	defer right.Release()

	result, err := h(left, right)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	defer result.Release()

	bv := result.(*vector.BoolVec)
	if val, ok := bv.At(0); !ok || !val {
		t.Fatalf("At(0) = (%v, %v), want (true, true)", val, ok)
	}
	if val, ok := bv.At(1); !ok || val {
		t.Fatalf("At(1) = (%v, %v), want (false, true)", val, ok)
	}
}

func buildStringVec(t *testing.T, values []string) *vector.StringVec {
	t.Helper()
	total := 0
	for _, v := range values {
		total += len(v)
	}
	b := vector.WithCounts(len(values), total)
	for _, v := range values {
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
