package vector

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/typeid"
)

// Int8Vec, Int16Vec, Int32Vec and Int64Vec are the integer vector types.
// Each is a distinct instantiation of NumericVec sharing one kernel
// implementation (numeric.go); the Int8Sum..Int64Sum functions live here
// because the kernel contract (§4.2) scopes sum() to integer types only.
type (
	Int8Vec  = NumericVec[int8]
	Int16Vec = NumericVec[int16]
	Int32Vec = NumericVec[int32]
	Int64Vec = NumericVec[int64]
)

func NewInt8(a alloc.Allocator, values []int8, nullMask []bool) *Int8Vec {
	return newOwnedNumeric(a, typeid.Int8, values, nullMask, arrow.PrimitiveTypes.Int8, wrapArray(array.NewInt8Data))
}

func NewInt16(a alloc.Allocator, values []int16, nullMask []bool) *Int16Vec {
	return newOwnedNumeric(a, typeid.Int16, values, nullMask, arrow.PrimitiveTypes.Int16, wrapArray(array.NewInt16Data))
}

func NewInt32(a alloc.Allocator, values []int32, nullMask []bool) *Int32Vec {
	return newOwnedNumeric(a, typeid.Int32, values, nullMask, arrow.PrimitiveTypes.Int32, wrapArray(array.NewInt32Data))
}

func NewInt64(a alloc.Allocator, values []int64, nullMask []bool) *Int64Vec {
	return newOwnedNumeric(a, typeid.Int64, values, nullMask, arrow.PrimitiveTypes.Int64, wrapArray(array.NewInt64Data))
}

// BorrowInt64 wraps foreign buffers as a zero-copy Int64Vec.
func BorrowInt64(buf *buffer.FixedBuffer) *Int64Vec {
	return newNumericVec[int64](typeid.Int64, buf, arrow.PrimitiveTypes.Int64, wrapArray(array.NewInt64Data))
}

func BorrowInt32(buf *buffer.FixedBuffer) *Int32Vec {
	return newNumericVec[int32](typeid.Int32, buf, arrow.PrimitiveTypes.Int32, wrapArray(array.NewInt32Data))
}

func BorrowInt16(buf *buffer.FixedBuffer) *Int16Vec {
	return newNumericVec[int16](typeid.Int16, buf, arrow.PrimitiveTypes.Int16, wrapArray(array.NewInt16Data))
}

func BorrowInt8(buf *buffer.FixedBuffer) *Int8Vec {
	return newNumericVec[int8](typeid.Int8, buf, arrow.PrimitiveTypes.Int8, wrapArray(array.NewInt8Data))
}

// Int8Sum computes the wrap-on-overflow sum of non-null int8 values.
func Int8Sum(v *Int8Vec) int8 { return sumT(v) }

// Int16Sum computes the wrap-on-overflow sum of non-null int16 values.
func Int16Sum(v *Int16Vec) int16 { return sumT(v) }

// Int32Sum computes the wrap-on-overflow sum of non-null int32 values.
func Int32Sum(v *Int32Vec) int32 { return sumT(v) }

// Int64Sum computes the wrap-on-overflow sum of non-null int64 values.
func Int64Sum(v *Int64Vec) int64 { return sumT(v) }

// wrapArray adapts an array.New<T>Data constructor (which returns the
// concrete *array.Int64 etc.) to the arrow.Array-returning shape
// NumericVec.ToArrow needs.
func wrapArray[A arrow.Array](ctor func(arrow.ArrayData) A) func(arrow.ArrayData) arrow.Array {
	return func(d arrow.ArrayData) arrow.Array { return ctor(d) }
}
