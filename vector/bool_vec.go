package vector

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
)

// BoolVec is the bit-packed boolean vector (§4.2's boolean-vector
// specifics): values and null bitmap share the same layout, bit i at
// byte i>>3, bit i&7.
type BoolVec struct {
	buf *buffer.BoolBuffer
}

func NewBool(a alloc.Allocator, values []bool, nullMask []bool) *BoolVec {
	buf := buffer.NewOwnedBool(a, len(values), nullMask != nil)
	for i, val := range values {
		if val {
			buffer.SetValid(buf.Data, i)
		}
	}
	if nullMask != nil {
		for i, isNull := range nullMask {
			if isNull {
				buffer.SetNull(buf.Bitmap, i)
			}
		}
	}
	return &BoolVec{buf: buf}
}

func BorrowBool(buf *buffer.BoolBuffer) *BoolVec { return &BoolVec{buf: buf} }

func (v *BoolVec) Length() int      { return v.buf.Len }
func (v *BoolVec) Tag() typeid.Tag  { return typeid.Bool }
func (v *BoolVec) NullCount() int   { return v.buf.NullCount() }
func (v *BoolVec) IsNullMask() []byte {
	return buffer.IsNullMask(v.buf.Bitmap, v.buf.Len)
}
func (v *BoolVec) Release() { v.buf.Release() }

// At returns the bit at i and whether it is valid.
func (v *BoolVec) At(i int) (value, valid bool) {
	return v.buf.Value(i), buffer.IsValid(v.buf.Bitmap, i)
}

// Take reads single bits from the source and writes single bits to a
// zero-initialized destination buffer, per §4.2.
func (v *BoolVec) Take(indices []int32) (Vector, error) {
	a := alloc.Default()
	out := buffer.NewOwnedBool(a, len(indices), false)
	var nullBitmap []byte
	for k, idx := range indices {
		if idx < 0 || int(idx) >= v.buf.Len {
			return nil, errs.Wrap(errs.IndexOutOfRange, "take index %d out of range [0,%d)", idx, v.buf.Len)
		}
		value, valid := v.At(int(idx))
		if value {
			buffer.SetValid(out.Data, k)
		}
		if !valid {
			if nullBitmap == nil {
				nullBitmap = buffer.NewAllValidBitmap(a, len(indices))
			}
			buffer.SetNull(nullBitmap, k)
		}
	}
	out.Bitmap = nullBitmap
	return &BoolVec{buf: out}, nil
}

func (v *BoolVec) Hash() []uint64 {
	out := make([]uint64, v.buf.Len)
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if !valid {
			out[i] = NullHash
			continue
		}
		var b byte
		if value {
			b = 1
		}
		out[i] = fnv1a(fnvOffsetBasis, []byte{b})
	}
	return out
}

func (v *BoolVec) ToArrow() (arrow.Array, error) {
	dataBuf := memory.NewBufferBytes(v.buf.Data)
	var bufs []*memory.Buffer
	if v.buf.Bitmap != nil {
		bufs = []*memory.Buffer{memory.NewBufferBytes(v.buf.Bitmap), dataBuf}
	} else {
		bufs = []*memory.Buffer{nil, dataBuf}
	}
	data := array.NewData(arrow.FixedWidthTypes.Boolean, v.buf.Len, bufs, nil, v.buf.NullCount(), 0)
	defer data.Release()
	return array.NewBooleanData(data), nil
}

// Equals emits 1 where the data bit equals want; a null position is
// never equal to either true or false.
func (v *BoolVec) Equals(want bool) []int8 {
	out := make([]int8, v.buf.Len)
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if valid && value == want {
			out[i] = 1
		}
	}
	return out
}

func (v *BoolVec) lengthCheck(other *BoolVec) error {
	if v.buf.Len != other.buf.Len {
		return errs.Wrap(errs.LengthMismatch, "comparing lengths %d and %d", v.buf.Len, other.buf.Len)
	}
	return nil
}

// And, Or and Xor are the boolean-boolean vector kernels named by
// get_op's {and, or, xor} operation kinds (§4.5); a null on either side
// makes the corresponding output position null.
func (v *BoolVec) And(other *BoolVec) (*BoolVec, error) { return v.boolOp(other, func(a, b bool) bool { return a && b }) }
func (v *BoolVec) Or(other *BoolVec) (*BoolVec, error)  { return v.boolOp(other, func(a, b bool) bool { return a || b }) }
func (v *BoolVec) Xor(other *BoolVec) (*BoolVec, error) { return v.boolOp(other, func(a, b bool) bool { return a != b }) }

func (v *BoolVec) boolOp(other *BoolVec, op func(a, b bool) bool) (*BoolVec, error) {
	if err := v.lengthCheck(other); err != nil {
		return nil, err
	}
	values := make([]bool, v.buf.Len)
	nullMask := make([]bool, v.buf.Len)
	anyNull := false
	for i := 0; i < v.buf.Len; i++ {
		av, avalid := v.At(i)
		bv, bvalid := other.At(i)
		if !avalid || !bvalid {
			nullMask[i] = true
			anyNull = true
			continue
		}
		values[i] = op(av, bv)
	}
	if !anyNull {
		nullMask = nil
	}
	return NewBool(alloc.Default(), values, nullMask), nil
}

// Any reports whether any non-null value is true, short-circuiting on
// the first set bit found (§4.2). An all-null or empty vector is false.
func (v *BoolVec) Any() bool {
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if valid && value {
			return true
		}
	}
	return false
}

// All reports whether every value is both valid and true, short-circuiting
// on the first false or null found: a null makes All false. An empty
// vector is true (vacuous truth).
func (v *BoolVec) All() bool {
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if !valid || !value {
			return false
		}
	}
	return true
}
