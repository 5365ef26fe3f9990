package typeid

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Tag is Draken's closed logical-type enumeration. The numeric values are
// part of the wire/debug contract and must never be renumbered.
type Tag uint8

const (
	Int8    Tag = 1
	Int16   Tag = 2
	Int32   Tag = 3
	Int64   Tag = 4
	Float32 Tag = 20
	Float64 Tag = 21

	Date32      Tag = 30
	Timestamp64 Tag = 40

	Bool Tag = 50

	String Tag = 60

	Array Tag = 80

	// NonNative is the escape hatch for any Arrow type Draken has no
	// native vector for; kernels on it delegate to a ForeignVec.
	NonNative Tag = 100
)

func (t Tag) String() string {
	switch t {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Date32:
		return "date32"
	case Timestamp64:
		return "timestamp64"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Array:
		return "array"
	case NonNative:
		return "non_native"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// IsNumeric reports whether t is one of the fixed-width integer or
// floating-point types arithmetic/comparison kernels operate over.
func (t Tag) IsNumeric() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is one of the integer types; sum() is only
// defined for these per the kernel contract.
func (t Tag) IsInteger() bool {
	switch t {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// FromArrow implements the authoritative Arrow-to-Draken type mapping
// table: unmappable types fall through to NonNative rather than erroring,
// matching the bridge's "unsupported types delegate, they don't fail"
// contract.
func FromArrow(dt arrow.DataType) Tag {
	switch dt.ID() {
	case arrow.INT8:
		return Int8
	case arrow.INT16:
		return Int16
	case arrow.INT32:
		return Int32
	case arrow.INT64:
		return Int64
	case arrow.FLOAT32:
		return Float32
	case arrow.FLOAT64:
		return Float64
	case arrow.DATE32:
		return Date32
	case arrow.TIMESTAMP:
		return Timestamp64
	case arrow.BOOL:
		return Bool
	case arrow.STRING, arrow.BINARY, arrow.LARGE_STRING, arrow.LARGE_BINARY:
		return String
	case arrow.LIST, arrow.LARGE_LIST:
		return Array
	default:
		return NonNative
	}
}
