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

// ArrayVec is the nested-list vector: row i is the child vector's slice
// [buf.Offsets[i]:buf.Offsets[i+1]]. The child lives here, not on
// buffer.ArrayBuffer, so the buffer package never needs to import vector
// (§4.2's layering note).
type ArrayVec struct {
	buf   *buffer.ArrayBuffer
	Child Vector
}

func NewArray(buf *buffer.ArrayBuffer, child Vector) *ArrayVec {
	return &ArrayVec{buf: buf, Child: child}
}

func (v *ArrayVec) Length() int     { return v.buf.Len }
func (v *ArrayVec) Tag() typeid.Tag { return typeid.Array }
func (v *ArrayVec) NullCount() int  { return v.buf.NullCount() }
func (v *ArrayVec) IsNullMask() []byte {
	return buffer.IsNullMask(v.buf.Bitmap, v.buf.Len)
}
func (v *ArrayVec) Release() {
	v.buf.Release()
	if v.Child != nil {
		v.Child.Release()
	}
}

// Range returns the child-vector row range backing element i, and
// whether row i itself is valid.
func (v *ArrayVec) Range(i int) (start, end int32, valid bool) {
	s, e := v.buf.Range(i)
	return s, e, buffer.IsValid(v.buf.Bitmap, i)
}

// Take builds a new ArrayVec whose child is the concatenation of each
// selected row's child-vector slice, taken via the child's own Take
// kernel and re-sliced into fresh offsets.
func (v *ArrayVec) Take(indices []int32) (Vector, error) {
	childIndices := make([]int32, 0)
	offsets := make([]int32, len(indices)+1)
	nullMask := make([]bool, len(indices))
	anyNull := false
	for k, idx := range indices {
		if idx < 0 || int(idx) >= v.buf.Len {
			return nil, errs.Wrap(errs.IndexOutOfRange, "take index %d out of range [0,%d)", idx, v.buf.Len)
		}
		start, end, valid := v.Range(int(idx))
		if !valid {
			nullMask[k] = true
			anyNull = true
		}
		for j := start; j < end; j++ {
			childIndices = append(childIndices, j)
		}
		offsets[k+1] = offsets[k] + (end - start)
	}
	if !anyNull {
		nullMask = nil
	}

	newChild, err := v.Child.Take(childIndices)
	if err != nil {
		return nil, err
	}

	a := alloc.Default()
	out := buffer.NewOwnedArray(a, v.buf.ChildType, len(indices), anyNull)
	copy(out.Offsets, offsets)
	if anyNull {
		for i, isNull := range nullMask {
			if isNull {
				buffer.SetNull(out.Bitmap, i)
			}
		}
	}
	return &ArrayVec{buf: out, Child: newChild}, nil
}

func (v *ArrayVec) Hash() []uint64 {
	childHashes := v.Child.Hash()
	out := make([]uint64, v.buf.Len)
	for i := 0; i < v.buf.Len; i++ {
		start, end, valid := v.Range(i)
		if !valid {
			out[i] = NullHash
			continue
		}
		h := fnvOffsetBasis
		for j := start; j < end; j++ {
			b := make([]byte, 8)
			for k := 0; k < 8; k++ {
				b[k] = byte(childHashes[j] >> (8 * k))
			}
			h = fnv1a(h, b)
		}
		out[i] = h
	}
	return out
}

func (v *ArrayVec) ToArrow() (arrow.Array, error) {
	childArr, err := v.Child.ToArrow()
	if err != nil {
		return nil, err
	}
	offsetBuf := memory.NewBufferBytes(offsetsToBytes(v.buf.Offsets))
	var bufs []*memory.Buffer
	if v.buf.Bitmap != nil {
		bufs = []*memory.Buffer{memory.NewBufferBytes(v.buf.Bitmap), offsetBuf}
	} else {
		bufs = []*memory.Buffer{nil, offsetBuf}
	}
	listType := arrow.ListOf(childArr.DataType())
	data := array.NewData(listType, v.buf.Len, bufs, []arrow.ArrayData{childArr.Data()}, v.buf.NullCount(), 0)
	defer data.Release()
	return array.NewListData(data), nil
}
