package buffer

import (
	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/mabel-dev/draken/alloc"
)

// IsValid reports whether bit i of an Arrow little-endian validity bitmap
// is set (1 = valid, 0 = null). A nil bitmap means "all valid" (§4.1).
func IsValid(bitmap []byte, i int) bool {
	if bitmap == nil {
		return true
	}
	return bitmap[i>>3]&(1<<uint(i&7)) != 0
}

// SetValid sets bit i of bitmap to valid.
func SetValid(bitmap []byte, i int) {
	bitmap[i>>3] |= 1 << uint(i&7)
}

// SetNull clears bit i of bitmap to null.
func SetNull(bitmap []byte, i int) {
	bitmap[i>>3] &^= 1 << uint(i&7)
}

// BitmapByteLen returns ceil(length/8), the number of bytes a validity
// bitmap for length rows occupies.
func BitmapByteLen(length int) int {
	return int(bitutil.BytesForBits(int64(length)))
}

// NewAllValidBitmap allocates a bitmap for length rows with every bit set,
// matching the §4.1 policy that produced bitmaps start all-valid before
// individual nulls are stamped. Returns nil for length == 0.
func NewAllValidBitmap(a alloc.Allocator, length int) []byte {
	if length == 0 {
		return nil
	}
	nbytes := BitmapByteLen(length)
	bm := a.Allocate(nbytes)
	for i := range bm {
		bm[i] = 0xFF
	}
	return bm
}

// NullCount counts the zero bits in bitmap across length positions. A nil
// bitmap has zero nulls by definition.
func NullCount(bitmap []byte, length int) int {
	if bitmap == nil || length == 0 {
		return 0
	}
	reader := bitutil.NewBitmapReader(bitmap, 0, length)
	nulls := 0
	for i := 0; i < length; i++ {
		if reader.NotSet() {
			nulls++
		}
		reader.Next()
	}
	return nulls
}

// IsNullMask materializes a byte-per-row null mask (1 = null) from a
// validity bitmap, the representation §4.2's is_null_mask kernel returns.
func IsNullMask(bitmap []byte, length int) []byte {
	out := make([]byte, length)
	if bitmap == nil {
		return out
	}
	reader := bitutil.NewBitmapReader(bitmap, 0, length)
	for i := 0; i < length; i++ {
		if reader.NotSet() {
			out[i] = 1
		}
		reader.Next()
	}
	return out
}
