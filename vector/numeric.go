package vector

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/exp/constraints"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/buffer"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
)

// Number is the set of fixed-width types Draken's numeric vectors carry.
type Number interface {
	constraints.Integer | constraints.Float
}

// NumericVec is the shared implementation behind every fixed-width
// numeric/date/timestamp vector. Each logical type is a distinct
// instantiation (NumericVec[int64], NumericVec[float64], ...), which is
// what gives Draken "one concrete vector per type" without duplicating
// the kernel loop bodies six times over.
type NumericVec[T Number] struct {
	tag       typeid.Tag
	buf       *buffer.FixedBuffer
	values    []T
	arrowType arrow.DataType
	newArray  func(arrow.ArrayData) arrow.Array
}

func valuesView[T Number](data []byte) []T {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/size)
}

func newNumericVec[T Number](tag typeid.Tag, buf *buffer.FixedBuffer, arrowType arrow.DataType, newArray func(arrow.ArrayData) arrow.Array) *NumericVec[T] {
	return &NumericVec[T]{
		tag:       tag,
		buf:       buf,
		values:    valuesView[T](buf.Data),
		arrowType: arrowType,
		newArray:  newArray,
	}
}

// newOwnedNumeric builds an owned vector from values, with an optional
// per-row null mask (nil means all-valid, no bitmap allocated at all).
func newOwnedNumeric[T Number](a alloc.Allocator, tag typeid.Tag, values []T, nullMask []bool, arrowType arrow.DataType, newArray func(arrow.ArrayData) arrow.Array) *NumericVec[T] {
	var zero T
	itemSize := int(unsafe.Sizeof(zero))
	buf := buffer.NewOwnedFixed(a, tag, itemSize, len(values), nullMask != nil)
	dst := valuesView[T](buf.Data)
	copy(dst, values)
	if nullMask != nil {
		for i, isNull := range nullMask {
			if isNull {
				buffer.SetNull(buf.Bitmap, i)
			}
		}
	}
	return newNumericVec[T](tag, buf, arrowType, newArray)
}

func (v *NumericVec[T]) Length() int      { return v.buf.Len }
func (v *NumericVec[T]) Tag() typeid.Tag  { return v.tag }
func (v *NumericVec[T]) NullCount() int   { return v.buf.NullCount() }
func (v *NumericVec[T]) IsNullMask() []byte {
	return buffer.IsNullMask(v.buf.Bitmap, v.buf.Len)
}
func (v *NumericVec[T]) Release() { v.buf.Release() }

// At returns the value at i and whether it is valid. A null position
// returns T's zero value with valid == false, so callers must check valid
// before trusting value.
func (v *NumericVec[T]) At(i int) (value T, valid bool) {
	if !buffer.IsValid(v.buf.Bitmap, i) {
		return value, false
	}
	return v.values[i], true
}

func (v *NumericVec[T]) Take(indices []int32) (Vector, error) {
	out := make([]T, len(indices))
	nullMask := make([]bool, len(indices))
	anyNull := false
	for k, idx := range indices {
		if idx < 0 || int(idx) >= v.buf.Len {
			return nil, errs.Wrap(errs.IndexOutOfRange, "take index %d out of range [0,%d)", idx, v.buf.Len)
		}
		value, valid := v.At(int(idx))
		out[k] = value
		if !valid {
			nullMask[k] = true
			anyNull = true
		}
	}
	if !anyNull {
		nullMask = nil
	}
	return newOwnedNumeric[T](alloc.Default(), v.tag, out, nullMask, v.arrowType, v.newArray), nil
}

func (v *NumericVec[T]) Hash() []uint64 {
	out := make([]uint64, v.buf.Len)
	var zero T
	size := int(unsafe.Sizeof(zero))
	for i := 0; i < v.buf.Len; i++ {
		if !buffer.IsValid(v.buf.Bitmap, i) {
			out[i] = NullHash
			continue
		}
		b := unsafe.Slice((*byte)(unsafe.Pointer(&v.values[i])), size)
		out[i] = fnv1a(fnvOffsetBasis, b)
	}
	return out
}

func (v *NumericVec[T]) ToArrow() (arrow.Array, error) {
	dataBuf := memory.NewBufferBytes(v.buf.Data)
	var bufs []*memory.Buffer
	if v.buf.Bitmap != nil {
		bufs = []*memory.Buffer{memory.NewBufferBytes(v.buf.Bitmap), dataBuf}
	} else {
		bufs = []*memory.Buffer{nil, dataBuf}
	}
	data := array.NewData(v.arrowType, v.buf.Len, bufs, nil, v.buf.NullCount(), 0)
	defer data.Release()
	return v.newArray(data), nil
}

// -------- comparisons --------

func compareScalar[T Number](v *NumericVec[T], scalar T, cmp func(a, b T) bool) []int8 {
	out := make([]int8, v.buf.Len)
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if valid && cmp(value, scalar) {
			out[i] = 1
		}
	}
	return out
}

func compareVector[T Number](a, b *NumericVec[T], cmp func(x, y T) bool) ([]int8, error) {
	if a.buf.Len != b.buf.Len {
		return nil, errs.Wrap(errs.LengthMismatch, "comparing lengths %d and %d", a.buf.Len, b.buf.Len)
	}
	out := make([]int8, a.buf.Len)
	for i := 0; i < a.buf.Len; i++ {
		av, avalid := a.At(i)
		bv, bvalid := b.At(i)
		if avalid && bvalid && cmp(av, bv) {
			out[i] = 1
		}
	}
	return out, nil
}

func (v *NumericVec[T]) Equals(scalar T) []int8 { return compareScalar(v, scalar, func(a, b T) bool { return a == b }) }
func (v *NumericVec[T]) NotEquals(scalar T) []int8 {
	return compareScalar(v, scalar, func(a, b T) bool { return a != b })
}
func (v *NumericVec[T]) GreaterThan(scalar T) []int8 {
	return compareScalar(v, scalar, func(a, b T) bool { return a > b })
}
func (v *NumericVec[T]) GreaterThanOrEquals(scalar T) []int8 {
	return compareScalar(v, scalar, func(a, b T) bool { return a >= b })
}
func (v *NumericVec[T]) LessThan(scalar T) []int8 {
	return compareScalar(v, scalar, func(a, b T) bool { return a < b })
}
func (v *NumericVec[T]) LessThanOrEquals(scalar T) []int8 {
	return compareScalar(v, scalar, func(a, b T) bool { return a <= b })
}

func (v *NumericVec[T]) EqualsVector(other *NumericVec[T]) ([]int8, error) {
	return compareVector(v, other, func(a, b T) bool { return a == b })
}
func (v *NumericVec[T]) NotEqualsVector(other *NumericVec[T]) ([]int8, error) {
	return compareVector(v, other, func(a, b T) bool { return a != b })
}
func (v *NumericVec[T]) GreaterThanVector(other *NumericVec[T]) ([]int8, error) {
	return compareVector(v, other, func(a, b T) bool { return a > b })
}
func (v *NumericVec[T]) GreaterThanOrEqualsVector(other *NumericVec[T]) ([]int8, error) {
	return compareVector(v, other, func(a, b T) bool { return a >= b })
}
func (v *NumericVec[T]) LessThanVector(other *NumericVec[T]) ([]int8, error) {
	return compareVector(v, other, func(a, b T) bool { return a < b })
}
func (v *NumericVec[T]) LessThanOrEqualsVector(other *NumericVec[T]) ([]int8, error) {
	return compareVector(v, other, func(a, b T) bool { return a <= b })
}

// -------- arithmetic --------

// arithVector applies op element-wise, propagating nulls from either side
// and from op itself (ok=false — used for integer division by zero, which
// would otherwise panic rather than produce a null).
func arithVector[T Number](a, b *NumericVec[T], op func(x, y T) (T, bool)) (*NumericVec[T], error) {
	if a.buf.Len != b.buf.Len {
		return nil, errs.Wrap(errs.LengthMismatch, "arithmetic on lengths %d and %d", a.buf.Len, b.buf.Len)
	}
	out := make([]T, a.buf.Len)
	nullMask := make([]bool, a.buf.Len)
	anyNull := false
	for i := 0; i < a.buf.Len; i++ {
		av, avalid := a.At(i)
		bv, bvalid := b.At(i)
		if !avalid || !bvalid {
			nullMask[i] = true
			anyNull = true
			continue
		}
		result, ok := op(av, bv)
		if !ok {
			nullMask[i] = true
			anyNull = true
			continue
		}
		out[i] = result
	}
	if !anyNull {
		nullMask = nil
	}
	return newOwnedNumeric[T](alloc.Default(), a.tag, out, nullMask, a.arrowType, a.newArray), nil
}

// AddVector returns an element-wise sum; nulls on either side propagate.
func (v *NumericVec[T]) AddVector(other *NumericVec[T]) (*NumericVec[T], error) {
	return arithVector(v, other, func(a, b T) (T, bool) { return a + b, true })
}

// SubVector returns an element-wise difference; nulls on either side propagate.
func (v *NumericVec[T]) SubVector(other *NumericVec[T]) (*NumericVec[T], error) {
	return arithVector(v, other, func(a, b T) (T, bool) { return a - b, true })
}

// MulVector returns an element-wise product; nulls on either side propagate.
func (v *NumericVec[T]) MulVector(other *NumericVec[T]) (*NumericVec[T], error) {
	return arithVector(v, other, func(a, b T) (T, bool) { return a * b, true })
}

// DivVector returns an element-wise quotient. Division by zero produces a
// null rather than panicking (integer zero divide) or propagating Inf/NaN
// (float zero divide) — the documented resolution for the divide-by-zero
// Open Question (§9).
func (v *NumericVec[T]) DivVector(other *NumericVec[T]) (*NumericVec[T], error) {
	return arithVector(v, other, func(a, b T) (T, bool) {
		var zero T
		if b == zero {
			return zero, false
		}
		return a / b, true
	})
}

// -------- reductions --------

// Min returns the smallest non-null value; ok is false for an empty or
// all-null vector.
func (v *NumericVec[T]) Min() (result T, ok bool) {
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if !valid {
			continue
		}
		if !ok || value < result {
			result, ok = value, true
		}
	}
	return
}

// Max returns the largest non-null value; ok is false for an empty or
// all-null vector.
func (v *NumericVec[T]) Max() (result T, ok bool) {
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if !valid {
			continue
		}
		if !ok || value > result {
			result, ok = value, true
		}
	}
	return
}

// sumT wraps arbitrary overflow with native Go integer semantics — the
// documented choice for the sum() Open Question (§9). It is exported
// only through the four integer functions Int8Sum..Int64Sum (int_vec.go);
// it is unexported here so no float sum is reachable from outside the
// package.
func sumT[T Number](v *NumericVec[T]) T {
	var total T
	for i := 0; i < v.buf.Len; i++ {
		value, valid := v.At(i)
		if valid {
			total += value
		}
	}
	return total
}
