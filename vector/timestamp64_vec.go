package vector

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/typeid"
)

// Timestamp64Vec stores nanoseconds since the Unix epoch as int64.
// §9's timestamp-unit open question is resolved by canonicalizing every
// imported Arrow timestamp (whatever its unit) to nanoseconds at import
// time; the original unit is not retained.
type Timestamp64Vec = NumericVec[int64]

func NewTimestamp64(a alloc.Allocator, nanos []int64, nullMask []bool) *Timestamp64Vec {
	return newOwnedNumeric(a, typeid.Timestamp64, nanos, nullMask, arrow.FixedWidthTypes.Timestamp_ns, wrapArray(array.NewTimestampData))
}

func BorrowTimestamp64(buf *buffer.FixedBuffer) *Timestamp64Vec {
	return newNumericVec[int64](typeid.Timestamp64, buf, arrow.FixedWidthTypes.Timestamp_ns, wrapArray(array.NewTimestampData))
}
