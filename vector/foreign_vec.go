package vector

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
)

// ForeignVec is the NonNative escape hatch (§3): it wraps an arrow.Array
// directly for any Arrow type Draken has no native vector for, and
// implements the Vector contract with local loops plus a single
// delegated call into arrow/compute for take, rather than a native
// Draken buffer. Hashing is a local loop; ForeignVec has no comparison
// or reduction kernels.
type ForeignVec struct {
	arr arrow.Array
}

func NewForeign(arr arrow.Array) *ForeignVec { return &ForeignVec{arr: arr} }

func (v *ForeignVec) Length() int     { return v.arr.Len() }
func (v *ForeignVec) Tag() typeid.Tag { return typeid.NonNative }
func (v *ForeignVec) NullCount() int  { return v.arr.NullN() }

func (v *ForeignVec) IsNullMask() []byte {
	out := make([]byte, v.arr.Len())
	for i := 0; i < v.arr.Len(); i++ {
		if v.arr.IsNull(i) {
			out[i] = 1
		}
	}
	return out
}

func (v *ForeignVec) Release() { v.arr.Release() }

// Take delegates to compute.TakeArray, the same array_take kernel
// pyarrow.compute.take backs in the fallback this type is grounded on.
func (v *ForeignVec) Take(indices []int32) (Vector, error) {
	for _, idx := range indices {
		if idx < 0 || int(idx) >= v.arr.Len() {
			return nil, errs.Wrap(errs.IndexOutOfRange, "take index %d out of range [0,%d)", idx, v.arr.Len())
		}
	}
	b := array.NewInt32Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues(indices, nil)
	idxArr := b.NewInt32Array()
	defer idxArr.Release()

	taken, err := compute.TakeArray(context.Background(), v.arr, idxArr)
	if err != nil {
		return nil, errs.Wrap(errs.UnsupportedType, "foreign take failed: %v", err)
	}
	return &ForeignVec{arr: taken}, nil
}

// Hash falls back to hashing each value's string representation; this is
// a correctness-preserving but slow fallback, acceptable since ForeignVec
// only exists for types with no native kernel.
func (v *ForeignVec) Hash() []uint64 {
	out := make([]uint64, v.arr.Len())
	for i := 0; i < v.arr.Len(); i++ {
		if v.arr.IsNull(i) {
			out[i] = NullHash
			continue
		}
		out[i] = fnv1a(fnvOffsetBasis, []byte(v.arr.ValueStr(i)))
	}
	return out
}

func (v *ForeignVec) ToArrow() (arrow.Array, error) {
	v.arr.Retain()
	return v.arr, nil
}
