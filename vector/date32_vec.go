package vector

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/typeid"
)

// Date32Vec stores days since the Unix epoch as int32, matching Arrow's
// date32 layout exactly (§4.2's note that Date32 kernels, only stubbed
// in the original implementation, are fully implemented here through the
// same NumericVec machinery every other fixed-width type uses).
type Date32Vec = NumericVec[int32]

func NewDate32(a alloc.Allocator, days []int32, nullMask []bool) *Date32Vec {
	return newOwnedNumeric(a, typeid.Date32, days, nullMask, arrow.FixedWidthTypes.Date32, wrapArray(array.NewDate32Data))
}

func BorrowDate32(buf *buffer.FixedBuffer) *Date32Vec {
	return newNumericVec[int32](typeid.Date32, buf, arrow.FixedWidthTypes.Date32, wrapArray(array.NewDate32Data))
}
