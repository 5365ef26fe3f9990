package bridge

import (
	"math"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
	"github.com/mabel-dev/draken/vector"
)

func allocDefault() alloc.Allocator { return alloc.Default() }

// int32ViewOf reinterprets an Arrow offsets buffer's bytes as an []int32
// view without copying, mirroring buffer.bytesToInt32Slice's rationale
// for the same reinterpret-cast over allocator-owned storage.
func int32ViewOf(b []byte, n int) []int32 {
	if len(b) == 0 {
		return make([]int32, n)
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), n)
}

// int64ViewOf is int32ViewOf's 64-bit counterpart, used to read a
// large_string/large_binary/large_list offsets buffer before it is
// downcast to Draken's native int32 offsets.
func int64ViewOf(b []byte, n int) []int64 {
	if len(b) == 0 {
		return make([]int64, n)
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b[0])), n)
}

// int64OffsetsToInt32 downcasts a 64-bit offsets table to int32, copying
// rather than reinterpreting since the two widths aren't bit-compatible.
// It rejects any entry that would overflow int32 with errs.InvalidOffset,
// the same sentinel an out-of-range or non-monotone offset produces —
// a large_* column that genuinely needs 64-bit addressing cannot be
// represented by a native Draken buffer at all.
func int64OffsetsToInt32(offsets []int64) ([]int32, error) {
	out := make([]int32, len(offsets))
	for i, o := range offsets {
		if o < 0 || o > math.MaxInt32 {
			return nil, errs.Wrap(errs.InvalidOffset, "offset %d at index %d exceeds int32 range", o, i)
		}
		out[i] = int32(o)
	}
	return out, nil
}

// Import wraps an Arrow array as a Draken vector.Vector. Where possible
// this is zero-copy: the returned vector borrows the array's own buffers
// and keeps the array alive via KeepAlive rather than copying its bytes.
// A sliced array (Data().Offset() != 0) falls back to vector.ForeignVec,
// since Draken's native buffers assume a zero base offset throughout;
// large_string/large_binary/large_list columns still import to a native
// vector, paying a copy to downcast their 64-bit offsets to int32. Every
// offsets table, native-width or downcast, is validated before a buffer
// is built over it — see buffer.ValidateOffsets.
func Import(arr arrow.Array) (vector.Vector, error) {
	if arr.Data().Offset() != 0 {
		return vector.NewForeign(arr), nil
	}

	switch dt := arr.DataType().(type) {
	case *arrow.Int8Type:
		return vector.BorrowInt8(fixedBufferFrom(arr, typeid.Int8, 1)), nil
	case *arrow.Int16Type:
		return vector.BorrowInt16(fixedBufferFrom(arr, typeid.Int16, 2)), nil
	case *arrow.Int32Type:
		return vector.BorrowInt32(fixedBufferFrom(arr, typeid.Int32, 4)), nil
	case *arrow.Int64Type:
		return vector.BorrowInt64(fixedBufferFrom(arr, typeid.Int64, 8)), nil
	case *arrow.Float32Type:
		return vector.BorrowFloat32(fixedBufferFrom(arr, typeid.Float32, 4)), nil
	case *arrow.Float64Type:
		return vector.BorrowFloat64(fixedBufferFrom(arr, typeid.Float64, 8)), nil
	case *arrow.Date32Type:
		return vector.BorrowDate32(fixedBufferFrom(arr, typeid.Date32, 4)), nil
	case *arrow.TimestampType:
		return importTimestamp(arr, dt)
	case *arrow.BooleanType:
		return vector.BorrowBool(boolBufferFrom(arr)), nil
	case *arrow.StringType, *arrow.BinaryType:
		vb, err := varBufferFrom(arr, typeid.String)
		if err != nil {
			return nil, err
		}
		return vector.BorrowString(vb), nil
	case *arrow.LargeStringType, *arrow.LargeBinaryType:
		return importLargeVar(arr, typeid.String)
	case *arrow.ListType:
		return importList(arr)
	case *arrow.LargeListType:
		return importLargeList(arr)
	default:
		return vector.NewForeign(arr), nil
	}
}

// Export converts a Draken vector back to an Arrow array.
func Export(v vector.Vector) (arrow.Array, error) {
	return v.ToArrow()
}

func fixedBufferFrom(arr arrow.Array, tag typeid.Tag, itemSize int) *buffer.FixedBuffer {
	bufs := arr.Data().Buffers()
	var bitmap []byte
	if bufs[0] != nil {
		bitmap = bufs[0].Bytes()
	}
	data := bufs[1].Bytes()[:arr.Len()*itemSize]
	return buffer.NewBorrowedFixed(tag, itemSize, arr.Len(), data, bitmap, arr)
}

func boolBufferFrom(arr arrow.Array) *buffer.BoolBuffer {
	bufs := arr.Data().Buffers()
	var bitmap []byte
	if bufs[0] != nil {
		bitmap = bufs[0].Bytes()
	}
	data := bufs[1].Bytes()
	return buffer.NewBorrowedBool(arr.Len(), data, bitmap, arr)
}

// varBufferFrom wraps a 32-bit-offset string/binary array's buffers
// without copying, after checking the offsets table is monotone and never
// reaches past the data buffer — a borrowed Arrow array is not assumed
// trustworthy just because it came from the official builders.
func varBufferFrom(arr arrow.Array, tag typeid.Tag) (*buffer.VarBuffer, error) {
	bufs := arr.Data().Buffers()
	var bitmap []byte
	if bufs[0] != nil {
		bitmap = bufs[0].Bytes()
	}
	offsets := int32ViewOf(bufs[1].Bytes(), arr.Len()+1)
	data := bufs[2].Bytes()
	if err := buffer.ValidateOffsets(offsets, len(data)); err != nil {
		return nil, err
	}
	return buffer.NewBorrowedVar(tag, arr.Len(), data, offsets, bitmap, arr), nil
}

// importLargeVar handles large_string/large_binary: the data buffer is
// still borrowed zero-copy, but the 64-bit offsets table is downcast to a
// fresh int32 slice, mirroring importTimestamp's choice to pay a copy
// rather than give up a column's native kernels entirely.
func importLargeVar(arr arrow.Array, tag typeid.Tag) (vector.Vector, error) {
	bufs := arr.Data().Buffers()
	var bitmap []byte
	if bufs[0] != nil {
		bitmap = bufs[0].Bytes()
	}
	offsets64 := int64ViewOf(bufs[1].Bytes(), arr.Len()+1)
	data := bufs[2].Bytes()
	offsets, err := int64OffsetsToInt32(offsets64)
	if err != nil {
		return nil, err
	}
	if err := buffer.ValidateOffsets(offsets, len(data)); err != nil {
		return nil, err
	}
	return vector.BorrowString(buffer.NewBorrowedVar(tag, arr.Len(), data, offsets, bitmap, arr)), nil
}

// importTimestamp canonicalizes every imported timestamp to nanoseconds
// regardless of its Arrow unit (§9's resolution of the timestamp-unit
// open question); only the already-nanosecond case is zero-copy.
func importTimestamp(arr arrow.Array, dt *arrow.TimestampType) (vector.Vector, error) {
	if dt.Unit == arrow.Nanosecond {
		return vector.BorrowTimestamp64(fixedBufferFrom(arr, typeid.Timestamp64, 8)), nil
	}
	ts, ok := arr.(*array.Timestamp)
	if !ok {
		return nil, errs.Wrap(errs.UnsupportedType, "unexpected array type for timestamp data")
	}
	var scale int64
	switch dt.Unit {
	case arrow.Second:
		scale = 1_000_000_000
	case arrow.Millisecond:
		scale = 1_000_000
	case arrow.Microsecond:
		scale = 1_000
	default:
		return nil, errs.Wrap(errs.UnsupportedType, "unsupported timestamp unit %v", dt.Unit)
	}
	nanos := make([]int64, arr.Len())
	nullMask := make([]bool, arr.Len())
	anyNull := false
	for i := 0; i < arr.Len(); i++ {
		if ts.IsNull(i) {
			nullMask[i] = true
			anyNull = true
			continue
		}
		nanos[i] = int64(ts.Value(i)) * scale
	}
	if !anyNull {
		nullMask = nil
	}
	return vector.NewTimestamp64(allocDefault(), nanos, nullMask), nil
}

// importList recursively imports a 32-bit-offset list array's child and
// wraps it together with the parent's own offsets/bitmap, after checking
// those offsets are monotone and never index past the imported child.
func importList(arr arrow.Array) (vector.Vector, error) {
	list, ok := arr.(*array.List)
	if !ok {
		return vector.NewForeign(arr), nil
	}
	child, err := Import(list.ListValues())
	if err != nil {
		return nil, err
	}
	bufs := arr.Data().Buffers()
	var bitmap []byte
	if bufs[0] != nil {
		bitmap = bufs[0].Bytes()
	}
	offsets := int32ViewOf(bufs[1].Bytes(), arr.Len()+1)
	if err := buffer.ValidateOffsets(offsets, child.Length()); err != nil {
		child.Release()
		return nil, err
	}
	childTag := typeid.FromArrow(list.ListValues().DataType())
	buf := buffer.NewBorrowedArray(childTag, arr.Len(), offsets, bitmap, arr)
	return vector.NewArray(buf, child), nil
}

// importLargeList is importList's large_list counterpart: the child array
// imports the same way, and the parent's 64-bit offsets are downcast to
// int32 the same way importLargeVar downcasts a large_string's.
func importLargeList(arr arrow.Array) (vector.Vector, error) {
	list, ok := arr.(*array.LargeList)
	if !ok {
		return vector.NewForeign(arr), nil
	}
	child, err := Import(list.ListValues())
	if err != nil {
		return nil, err
	}
	bufs := arr.Data().Buffers()
	var bitmap []byte
	if bufs[0] != nil {
		bitmap = bufs[0].Bytes()
	}
	offsets64 := int64ViewOf(bufs[1].Bytes(), arr.Len()+1)
	offsets, err := int64OffsetsToInt32(offsets64)
	if err != nil {
		child.Release()
		return nil, err
	}
	if err := buffer.ValidateOffsets(offsets, child.Length()); err != nil {
		child.Release()
		return nil, err
	}
	childTag := typeid.FromArrow(list.ListValues().DataType())
	buf := buffer.NewBorrowedArray(childTag, arr.Len(), offsets, bitmap, arr)
	return vector.NewArray(buf, child), nil
}
