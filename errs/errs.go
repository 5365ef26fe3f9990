package errs

import "fmt"

// Kind is the closed enumeration of error meanings the core can return.
// Each kind has exactly one meaning across every package (see spec §7).
type Kind int

const (
	_ Kind = iota
	KindOutOfMemory
	KindIndexOutOfRange
	KindLengthMismatch
	KindColumnNotFound
	KindUnsupportedType
	KindIncomplete
	KindCapacityMismatch
	KindBuilderClosed
	KindInvalidOffset
)

func (k Kind) String() string {
	switch k {
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindIndexOutOfRange:
		return "IndexOutOfRange"
	case KindLengthMismatch:
		return "LengthMismatch"
	case KindColumnNotFound:
		return "ColumnNotFound"
	case KindUnsupportedType:
		return "UnsupportedType"
	case KindIncomplete:
		return "Incomplete"
	case KindCapacityMismatch:
		return "CapacityMismatch"
	case KindBuilderClosed:
		return "BuilderClosed"
	case KindInvalidOffset:
		return "InvalidOffset"
	default:
		return "Unknown"
	}
}

// Error is a sentinel carrying one of the closed Kind values. Sentinels
// are compared by errors.Is, which Error implements so that a wrapped
// instance (fmt.Errorf("...: %w", errs.IndexOutOfRange)) still matches
// errors.Is(err, errs.IndexOutOfRange).
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinels, one per closed error kind.
var (
	OutOfMemory      = &Error{Kind: KindOutOfMemory, Msg: "out of memory"}
	IndexOutOfRange  = &Error{Kind: KindIndexOutOfRange, Msg: "index out of range"}
	LengthMismatch   = &Error{Kind: KindLengthMismatch, Msg: "length mismatch"}
	ColumnNotFound   = &Error{Kind: KindColumnNotFound, Msg: "column not found"}
	UnsupportedType  = &Error{Kind: KindUnsupportedType, Msg: "unsupported type"}
	Incomplete       = &Error{Kind: KindIncomplete, Msg: "incomplete"}
	CapacityMismatch = &Error{Kind: KindCapacityMismatch, Msg: "capacity mismatch"}
	BuilderClosed    = &Error{Kind: KindBuilderClosed, Msg: "builder closed"}
	InvalidOffset    = &Error{Kind: KindInvalidOffset, Msg: "invalid offset"}
)

// Wrap attaches context to a sentinel while preserving errors.Is matching.
func Wrap(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// Internalf panics on an invariant violation an implementer cannot
// recover from (e.g. a bitmap whose byte length disagrees with the
// length-derived expectation). It is never reachable from well-formed
// public-API input.
func Internalf(format string, args ...any) {
	panic(fmt.Sprintf("draken: internal invariant violated: "+format, args...))
}
