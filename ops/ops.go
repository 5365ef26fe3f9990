package ops

import (
	"bytes"

	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
	"github.com/mabel-dev/draken/vector"
)

// Kind enumerates the binary operations a Handle can implement. The numeric
// values are part of the stable wire/debug contract and must never be
// renumbered.
type Kind uint8

const (
	Add Kind = 1
	Sub Kind = 2
	Mul Kind = 3
	Div Kind = 4

	Eq Kind = 10
	Ne Kind = 11
	Gt Kind = 12
	Ge Kind = 13
	Lt Kind = 14
	Le Kind = 15

	And Kind = 20
	Or  Kind = 21
	Xor Kind = 22
)

func (k Kind) isArithmetic() bool {
	switch k {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}

func (k Kind) isComparison() bool {
	switch k {
	case Eq, Ne, Gt, Ge, Lt, Le:
		return true
	default:
		return false
	}
}

func (k Kind) isBoolean() bool {
	switch k {
	case And, Or, Xor:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Sub:
		return "subtract"
	case Mul:
		return "multiply"
	case Div:
		return "divide"
	case Eq:
		return "equals"
	case Ne:
		return "not_equals"
	case Gt:
		return "greater_than"
	case Ge:
		return "greater_than_or_equals"
	case Lt:
		return "less_than"
	case Le:
		return "less_than_or_equals"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	default:
		return "unknown"
	}
}

// Handle is a resolved binary-operator kernel: given two same-shape
// vectors, it produces the result vector or an error (a length mismatch,
// most commonly).
type Handle func(left, right vector.Vector) (vector.Vector, error)

type opKey struct {
	kind Kind
	tag  typeid.Tag
}

var registry = make(map[opKey]Handle)

func register(kind Kind, tag typeid.Tag, h Handle) {
	registry[opKey{kind, tag}] = h
}

// typesCompatible mirrors ops_impl.cpp's types_compatible: comparisons
// require identical types on both sides; arithmetic additionally requires
// both sides to be one of the numeric types; boolean operations require
// both sides to be Bool.
func typesCompatible(left, right typeid.Tag, kind Kind) bool {
	switch {
	case kind.isBoolean():
		return left == typeid.Bool && right == typeid.Bool
	case kind.isArithmetic():
		return left == right && left.IsNumeric()
	case kind.isComparison():
		return left == right
	default:
		return false
	}
}

// GetOp resolves the kernel for kind over (leftType, rightType). It
// reproduces get_op's scalarity rule before anything else: a scalar left
// operand paired with a vector right operand is never resolvable,
// regardless of type. ok is false whenever no kernel applies — an
// incompatible type pairing, an unsupported (kind, type) combination, or
// the rejected scalarity case.
func GetOp(leftType typeid.Tag, leftScalar bool, rightType typeid.Tag, rightScalar bool, kind Kind) (Handle, bool) {
	if leftScalar && !rightScalar {
		return nil, false
	}
	if !typesCompatible(leftType, rightType, kind) {
		return nil, false
	}
	h, ok := registry[opKey{kind, leftType}]
	return h, ok
}

// maskToBoolVec wraps a 0/1 comparison mask as an all-valid BoolVec; every
// comparison kernel in package vector already collapses a null operand to
// a false (0) result, so there is no null information left to carry.
func maskToBoolVec(mask []int8) *vector.BoolVec {
	values := make([]bool, len(mask))
	for i, m := range mask {
		values[i] = m == 1
	}
	return vector.NewBool(alloc.Default(), values, nil)
}

func registerNumericOps[T vector.Number](tag typeid.Tag) {
	assertPair := func(left, right vector.Vector) (*vector.NumericVec[T], *vector.NumericVec[T], error) {
		l, ok := left.(*vector.NumericVec[T])
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "%s op: expected %s vector on the left, got %T", tag, tag, left)
		}
		r, ok := right.(*vector.NumericVec[T])
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "%s op: expected %s vector on the right, got %T", tag, tag, right)
		}
		return l, r, nil
	}

	register(Add, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.AddVector(r)
	})
	register(Sub, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.SubVector(r)
	})
	register(Mul, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.MulVector(r)
	})
	register(Div, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.DivVector(r)
	})

	register(Eq, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		mask, err := l.EqualsVector(r)
		if err != nil {
			return nil, err
		}
		return maskToBoolVec(mask), nil
	})
	register(Ne, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		mask, err := l.NotEqualsVector(r)
		if err != nil {
			return nil, err
		}
		return maskToBoolVec(mask), nil
	})
	register(Gt, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		mask, err := l.GreaterThanVector(r)
		if err != nil {
			return nil, err
		}
		return maskToBoolVec(mask), nil
	})
	register(Ge, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		mask, err := l.GreaterThanOrEqualsVector(r)
		if err != nil {
			return nil, err
		}
		return maskToBoolVec(mask), nil
	})
	register(Lt, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		mask, err := l.LessThanVector(r)
		if err != nil {
			return nil, err
		}
		return maskToBoolVec(mask), nil
	})
	register(Le, tag, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		mask, err := l.LessThanOrEqualsVector(r)
		if err != nil {
			return nil, err
		}
		return maskToBoolVec(mask), nil
	})
}

// registerOrderingOnly wires only the ordering/equality comparisons for a
// numeric-aliased type that does not take part in arithmetic (Date32,
// Timestamp64 — IsNumeric() excludes both, so typesCompatible already
// blocks Add/Sub/Mul/Div for them; registering only the comparisons here
// keeps the registry from implying otherwise).
func registerOrderingOnly[T vector.Number](tag typeid.Tag) {
	assertPair := func(left, right vector.Vector) (*vector.NumericVec[T], *vector.NumericVec[T], error) {
		l, ok := left.(*vector.NumericVec[T])
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "%s op: expected %s vector on the left, got %T", tag, tag, left)
		}
		r, ok := right.(*vector.NumericVec[T])
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "%s op: expected %s vector on the right, got %T", tag, tag, right)
		}
		return l, r, nil
	}
	cmp := func(fn func(l, r *vector.NumericVec[T]) ([]int8, error)) Handle {
		return func(left, right vector.Vector) (vector.Vector, error) {
			l, r, err := assertPair(left, right)
			if err != nil {
				return nil, err
			}
			mask, err := fn(l, r)
			if err != nil {
				return nil, err
			}
			return maskToBoolVec(mask), nil
		}
	}
	register(Eq, tag, cmp((*vector.NumericVec[T]).EqualsVector))
	register(Ne, tag, cmp((*vector.NumericVec[T]).NotEqualsVector))
	register(Gt, tag, cmp((*vector.NumericVec[T]).GreaterThanVector))
	register(Ge, tag, cmp((*vector.NumericVec[T]).GreaterThanOrEqualsVector))
	register(Lt, tag, cmp((*vector.NumericVec[T]).LessThanVector))
	register(Le, tag, cmp((*vector.NumericVec[T]).LessThanOrEqualsVector))
}

func registerBoolOps() {
	assertPair := func(left, right vector.Vector) (*vector.BoolVec, *vector.BoolVec, error) {
		l, ok := left.(*vector.BoolVec)
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "bool op: expected bool vector on the left, got %T", left)
		}
		r, ok := right.(*vector.BoolVec)
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "bool op: expected bool vector on the right, got %T", right)
		}
		return l, r, nil
	}

	register(And, typeid.Bool, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.And(r)
	})
	register(Or, typeid.Bool, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.Or(r)
	})
	register(Xor, typeid.Bool, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		return l.Xor(r)
	})

	register(Eq, typeid.Bool, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		if l.Length() != r.Length() {
			return nil, errs.Wrap(errs.LengthMismatch, "comparing lengths %d and %d", l.Length(), r.Length())
		}
		values := make([]bool, l.Length())
		for i := 0; i < l.Length(); i++ {
			av, avalid := l.At(i)
			bv, bvalid := r.At(i)
			values[i] = avalid && bvalid && av == bv
		}
		return vector.NewBool(alloc.Default(), values, nil), nil
	})
	register(Ne, typeid.Bool, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		if l.Length() != r.Length() {
			return nil, errs.Wrap(errs.LengthMismatch, "comparing lengths %d and %d", l.Length(), r.Length())
		}
		values := make([]bool, l.Length())
		for i := 0; i < l.Length(); i++ {
			av, avalid := l.At(i)
			bv, bvalid := r.At(i)
			values[i] = avalid && bvalid && av != bv
		}
		return vector.NewBool(alloc.Default(), values, nil), nil
	})
}

func registerStringOps() {
	assertPair := func(left, right vector.Vector) (*vector.StringVec, *vector.StringVec, error) {
		l, ok := left.(*vector.StringVec)
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "string op: expected string vector on the left, got %T", left)
		}
		r, ok := right.(*vector.StringVec)
		if !ok {
			return nil, nil, errs.Wrap(errs.UnsupportedType, "string op: expected string vector on the right, got %T", right)
		}
		return l, r, nil
	}

	register(Eq, typeid.String, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		if l.Length() != r.Length() {
			return nil, errs.Wrap(errs.LengthMismatch, "comparing lengths %d and %d", l.Length(), r.Length())
		}
		values := make([]bool, l.Length())
		for i := 0; i < l.Length(); i++ {
			av, avalid := l.At(i)
			bv, bvalid := r.At(i)
			values[i] = avalid && bvalid && bytes.Equal(av, bv)
		}
		return vector.NewBool(alloc.Default(), values, nil), nil
	})
	register(Ne, typeid.String, func(left, right vector.Vector) (vector.Vector, error) {
		l, r, err := assertPair(left, right)
		if err != nil {
			return nil, err
		}
		if l.Length() != r.Length() {
			return nil, errs.Wrap(errs.LengthMismatch, "comparing lengths %d and %d", l.Length(), r.Length())
		}
		values := make([]bool, l.Length())
		for i := 0; i < l.Length(); i++ {
			av, avalid := l.At(i)
			bv, bvalid := r.At(i)
			values[i] = avalid && bvalid && !bytes.Equal(av, bv)
		}
		return vector.NewBool(alloc.Default(), values, nil), nil
	})
}

func init() {
	registerNumericOps[int8](typeid.Int8)
	registerNumericOps[int16](typeid.Int16)
	registerNumericOps[int32](typeid.Int32)
	registerNumericOps[int64](typeid.Int64)
	registerNumericOps[float32](typeid.Float32)
	registerNumericOps[float64](typeid.Float64)

	registerOrderingOnly[int32](typeid.Date32)
	registerOrderingOnly[int64](typeid.Timestamp64)

	registerBoolOps()
	registerStringOps()
}
