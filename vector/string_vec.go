package vector

import (
	"bytes"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
)

// offsetsToBytes is the package-local mirror of buffer's unexported
// int32SliceToBytes, needed here because ToArrow builds an Arrow buffer
// directly from the offsets slice without copying it.
func offsetsToBytes(s []int32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

// StringVec is the variable-width byte-string vector: value i occupies
// buf.Data[buf.Offsets[i]:buf.Offsets[i+1]], matching Arrow's String/Binary
// layout exactly (§4.2).
type StringVec struct {
	buf *buffer.VarBuffer
}

func BorrowString(buf *buffer.VarBuffer) *StringVec { return &StringVec{buf: buf} }

func (v *StringVec) Length() int     { return v.buf.Len }
func (v *StringVec) Tag() typeid.Tag { return typeid.String }
func (v *StringVec) NullCount() int  { return v.buf.NullCount() }
func (v *StringVec) IsNullMask() []byte {
	return buffer.IsNullMask(v.buf.Bitmap, v.buf.Len)
}
func (v *StringVec) Release() { v.buf.Release() }

// At returns the raw bytes at i (a view into the shared data buffer, not
// a copy) and whether the position is valid.
func (v *StringVec) At(i int) (value []byte, valid bool) {
	if !buffer.IsValid(v.buf.Bitmap, i) {
		return nil, false
	}
	start, end := v.buf.ValueRange(i)
	return v.buf.Data[start:end], true
}

// Take is two-pass: the first pass sums the byte length of the selected
// rows so the destination data buffer is allocated exactly once, the
// second pass copies each selected value's bytes and stamps its offset
// and null bit, preserving the source's byte ranges rather than
// collapsing a null row's range to zero width (§9's take-with-nulls
// resolution).
func (v *StringVec) Take(indices []int32) (Vector, error) {
	total := 0
	for _, idx := range indices {
		if idx < 0 || int(idx) >= v.buf.Len {
			return nil, errs.Wrap(errs.IndexOutOfRange, "take index %d out of range [0,%d)", idx, v.buf.Len)
		}
		start, end := v.buf.ValueRange(int(idx))
		total += int(end - start)
	}

	a := alloc.Default()
	out := buffer.NewOwnedVar(a, typeid.String, len(indices), total, false)
	pos := int32(0)
	var nullBitmap []byte
	for k, idx := range indices {
		start, end := v.buf.ValueRange(int(idx))
		n := copy(out.Data[pos:pos+(end-start)], v.buf.Data[start:end])
		pos += int32(n)
		out.Offsets[k+1] = pos
		if !buffer.IsValid(v.buf.Bitmap, int(idx)) {
			if nullBitmap == nil {
				nullBitmap = buffer.NewAllValidBitmap(a, len(indices))
			}
			buffer.SetNull(nullBitmap, k)
		}
	}
	out.Bitmap = nullBitmap
	return &StringVec{buf: out}, nil
}

func (v *StringVec) Hash() []uint64 {
	out := make([]uint64, v.buf.Len)
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if !valid {
			out[i] = NullHash
			continue
		}
		out[i] = fnv1a(fnvOffsetBasis, value)
	}
	return out
}

func (v *StringVec) ToArrow() (arrow.Array, error) {
	dataBuf := memory.NewBufferBytes(v.buf.Data)
	offsetBuf := memory.NewBufferBytes(offsetsToBytes(v.buf.Offsets))
	var bufs []*memory.Buffer
	if v.buf.Bitmap != nil {
		bufs = []*memory.Buffer{memory.NewBufferBytes(v.buf.Bitmap), offsetBuf, dataBuf}
	} else {
		bufs = []*memory.Buffer{nil, offsetBuf, dataBuf}
	}
	data := array.NewData(arrow.BinaryTypes.String, v.buf.Len, bufs, nil, v.buf.NullCount(), 0)
	defer data.Release()
	return array.NewStringData(data), nil
}

// Equals emits 1 where value i is byte-for-byte equal to want; a null
// position is never equal.
func (v *StringVec) Equals(want []byte) []int8 {
	out := make([]int8, v.buf.Len)
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if valid && bytes.Equal(value, want) {
			out[i] = 1
		}
	}
	return out
}

// Uppercase returns a new vector with every byte in [a-z] mapped to its
// ASCII uppercase equivalent; non-ASCII bytes pass through unchanged.
// Null positions stay null and their source byte range is preserved.
func (v *StringVec) Uppercase() *StringVec {
	a := alloc.Default()
	out := buffer.NewOwnedVar(a, typeid.String, v.buf.Len, len(v.buf.Data), v.buf.Bitmap != nil)
	copy(out.Data, v.buf.Data)
	for i := range out.Data {
		if out.Data[i] >= 'a' && out.Data[i] <= 'z' {
			out.Data[i] -= 'a' - 'A'
		}
	}
	copy(out.Offsets, v.buf.Offsets)
	if v.buf.Bitmap != nil {
		copy(out.Bitmap, v.buf.Bitmap)
	}
	return &StringVec{buf: out}
}

// --- StringVectorBuilder ---

type builderState int

const (
	builderFresh builderState = iota
	builderBuilding
	builderFinished
)

// StringVectorBuilder accumulates string/binary values one at a time
// before producing an immutable StringVec. It is a strict state machine:
// fresh -> building (first append/append_null) -> finished (finish()),
// and every mutating method after finish() returns errs.BuilderClosed.
type StringVectorBuilder struct {
	alloc   alloc.Allocator
	state   builderState
	strict  bool
	count   int
	data    []byte
	used    int
	offsets []int32
	nullMask []bool
	anyNull bool
	n       int
}

// WithCounts allocates a builder with exact capacity: count rows and
// totalBytes of data storage. Appending beyond either bound fails with
// errs.CapacityMismatch rather than growing.
func WithCounts(count, totalBytes int) *StringVectorBuilder {
	a := alloc.Default()
	return &StringVectorBuilder{
		alloc:    a,
		strict:   true,
		count:    count,
		data:     a.Allocate(totalBytes),
		offsets:  make([]int32, count+1),
		nullMask: make([]bool, count),
	}
}

// WithEstimate allocates a builder sized for count rows at roughly
// avgBytes bytes each; the data buffer grows (doubling) if that estimate
// is exceeded.
func WithEstimate(count, avgBytes int) *StringVectorBuilder {
	a := alloc.Default()
	return &StringVectorBuilder{
		alloc:    a,
		strict:   false,
		count:    count,
		data:     a.Allocate(count * avgBytes),
		offsets:  make([]int32, count+1),
		nullMask: make([]bool, count),
	}
}

func (b *StringVectorBuilder) BytesCapacity() int { return len(b.data) }
func (b *StringVectorBuilder) BytesUsed() int     { return b.used }
func (b *StringVectorBuilder) RemainingBytes() int { return len(b.data) - b.used }

func (b *StringVectorBuilder) ensureCapacity(extra int) error {
	if b.used+extra <= len(b.data) {
		return nil
	}
	if b.strict {
		return errs.Wrap(errs.CapacityMismatch, "builder capacity %d exceeded by %d bytes", len(b.data), b.used+extra-len(b.data))
	}
	newCap := len(b.data) * 2
	for newCap < b.used+extra {
		if newCap == 0 {
			newCap = extra
		} else {
			newCap *= 2
		}
	}
	grown := b.alloc.Reallocate(newCap, b.data)
	b.data = grown
	return nil
}

// Append adds value as the next row. The row count declared at
// construction is fixed for both builder variants — with_estimate only
// resizes the byte data buffer, never the row count.
func (b *StringVectorBuilder) Append(value []byte) error {
	if b.state == builderFinished {
		return errs.Wrap(errs.BuilderClosed, "append after finish")
	}
	if b.n >= b.count {
		return errs.Wrap(errs.CapacityMismatch, "builder row capacity %d exceeded", b.count)
	}
	if err := b.ensureCapacity(len(value)); err != nil {
		return err
	}
	b.state = builderBuilding
	copy(b.data[b.used:b.used+len(value)], value)
	b.used += len(value)
	b.n++
	b.offsets[b.n] = int32(b.used)
	return nil
}

// AppendNull adds a null row; its byte range is zero-width at the
// current write position.
func (b *StringVectorBuilder) AppendNull() error {
	if b.state == builderFinished {
		return errs.Wrap(errs.BuilderClosed, "append_null after finish")
	}
	if b.n >= b.count {
		return errs.Wrap(errs.CapacityMismatch, "builder row capacity %d exceeded", b.count)
	}
	b.state = builderBuilding
	b.n++
	b.offsets[b.n] = int32(b.used)
	b.nullMask[b.n-1] = true
	b.anyNull = true
	return nil
}

// Set overwrites row i (already appended) with value, keeping the same
// offsets-array length; it does not move later rows' byte ranges and is
// only valid to call before finish() because it assumes a monotone,
// previously-appended offset table — callers set a row at most once.
func (b *StringVectorBuilder) Set(i int, value []byte) error {
	if b.state == builderFinished {
		return errs.Wrap(errs.BuilderClosed, "set after finish")
	}
	if i < 0 || i >= b.n {
		return errs.Wrap(errs.IndexOutOfRange, "set index %d out of range [0,%d)", i, b.n)
	}
	start, end := b.offsets[i], b.offsets[i+1]
	if int32(len(value)) != end-start {
		return errs.Wrap(errs.CapacityMismatch, "set value length %d does not match existing range %d", len(value), end-start)
	}
	copy(b.data[start:end], value)
	b.nullMask[i] = false
	return nil
}

// SetNull marks an already-appended row i as null without altering its
// underlying bytes.
func (b *StringVectorBuilder) SetNull(i int) error {
	if b.state == builderFinished {
		return errs.Wrap(errs.BuilderClosed, "set_null after finish")
	}
	if i < 0 || i >= b.n {
		return errs.Wrap(errs.IndexOutOfRange, "set_null index %d out of range [0,%d)", i, b.n)
	}
	b.nullMask[i] = true
	b.anyNull = true
	return nil
}

// SetValidityMask overwrites the whole null mask at once; len(mask) must
// equal the number of rows appended so far.
func (b *StringVectorBuilder) SetValidityMask(mask []bool) error {
	if b.state == builderFinished {
		return errs.Wrap(errs.BuilderClosed, "set_validity_mask after finish")
	}
	if len(mask) != b.n {
		return errs.Wrap(errs.LengthMismatch, "validity mask length %d does not match %d appended rows", len(mask), b.n)
	}
	copy(b.nullMask, mask)
	for _, isNull := range mask {
		if isNull {
			b.anyNull = true
			break
		}
	}
	return nil
}

// Finish produces the immutable StringVec and closes the builder.
// errs.Incomplete is returned if the builder has not appended exactly
// its declared row count.
func (b *StringVectorBuilder) Finish() (*StringVec, error) {
	if b.state == builderFinished {
		return nil, errs.Wrap(errs.BuilderClosed, "finish called twice")
	}
	if b.n != b.count {
		return nil, errs.Wrap(errs.Incomplete, "builder declared %d rows, only %d appended", b.count, b.n)
	}
	if b.strict && b.used != len(b.data) {
		return nil, errs.Wrap(errs.CapacityMismatch, "strict builder declared %d bytes, only %d used", len(b.data), b.used)
	}
	b.state = builderFinished

	buf := &buffer.VarBuffer{
		Tag:     typeid.String,
		Len:     b.n,
		Data:    b.data[:b.used],
		Offsets: b.offsets[:b.n+1],
		Owned:   true,
	}
	if b.anyNull {
		bm := buffer.NewAllValidBitmap(b.alloc, b.n)
		for i, isNull := range b.nullMask[:b.n] {
			if isNull {
				buffer.SetNull(bm, i)
			}
		}
		buf.Bitmap = bm
	}
	return &StringVec{buf: buf}, nil
}
