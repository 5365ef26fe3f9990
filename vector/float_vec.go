package vector

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/typeid"
)

// Float32Vec and Float64Vec deliberately have no Sum: the kernel
// contract (§4.2) scopes sum() to integer types. Comparisons follow
// IEEE-754 (NaN != NaN, including NaN != NaN in EqualsVector).
type (
	Float32Vec = NumericVec[float32]
	Float64Vec = NumericVec[float64]
)

func NewFloat32(a alloc.Allocator, values []float32, nullMask []bool) *Float32Vec {
	return newOwnedNumeric(a, typeid.Float32, values, nullMask, arrow.PrimitiveTypes.Float32, wrapArray(array.NewFloat32Data))
}

func NewFloat64(a alloc.Allocator, values []float64, nullMask []bool) *Float64Vec {
	return newOwnedNumeric(a, typeid.Float64, values, nullMask, arrow.PrimitiveTypes.Float64, wrapArray(array.NewFloat64Data))
}

func BorrowFloat32(buf *buffer.FixedBuffer) *Float32Vec {
	return newNumericVec[float32](typeid.Float32, buf, arrow.PrimitiveTypes.Float32, wrapArray(array.NewFloat32Data))
}

func BorrowFloat64(buf *buffer.FixedBuffer) *Float64Vec {
	return newNumericVec[float64](typeid.Float64, buf, arrow.PrimitiveTypes.Float64, wrapArray(array.NewFloat64Data))
}
