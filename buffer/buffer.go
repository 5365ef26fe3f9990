package buffer

import (
	"github.com/mabel-dev/draken/alloc"
	"github.com/mabel-dev/draken/errs"
	"github.com/mabel-dev/draken/typeid"
)

// ValidateOffsets checks a variable-width offsets table (Len+1 entries, as
// carried by VarBuffer and ArrayBuffer alike) for the two ways it can be
// malformed: a decreasing entry, or a final entry that reaches past the
// capacity of whatever it indexes into (a data buffer's byte length for
// VarBuffer, a child vector's row count for ArrayBuffer). Both return
// errs.InvalidOffset rather than let a borrowed Arrow buffer's corrupt
// offsets reach a later slice expression and panic or read out of bounds.
func ValidateOffsets(offsets []int32, capacity int) error {
	for i := 0; i+1 < len(offsets); i++ {
		if offsets[i+1] < offsets[i] {
			return errs.Wrap(errs.InvalidOffset, "offsets[%d]=%d is less than offsets[%d]=%d", i+1, offsets[i+1], i, offsets[i])
		}
	}
	if len(offsets) > 0 && int(offsets[len(offsets)-1]) > capacity {
		return errs.Wrap(errs.InvalidOffset, "final offset %d exceeds capacity %d", offsets[len(offsets)-1], capacity)
	}
	return nil
}

// FixedBuffer backs a fixed-width vector: Data holds Len*ItemSize bytes in
// native endianness, packed contiguously. Bitmap, when non-nil, is an
// Arrow little-endian validity bitmap.
type FixedBuffer struct {
	Tag      typeid.Tag
	ItemSize int
	Len      int
	Data     []byte
	Bitmap   []byte

	Owned     bool
	KeepAlive any
	alloc     alloc.Allocator
}

// NewOwnedFixed allocates a zeroed, owned FixedBuffer of the given length.
// withBitmap pre-allocates an all-valid validity bitmap; callers that
// never observe nulls on their inputs should pass false and leave Bitmap
// nil (§4.1).
func NewOwnedFixed(a alloc.Allocator, tag typeid.Tag, itemSize, length int, withBitmap bool) *FixedBuffer {
	b := &FixedBuffer{Tag: tag, ItemSize: itemSize, Len: length, Owned: true, alloc: a}
	b.Data = a.Allocate(length * itemSize)
	if withBitmap {
		b.Bitmap = NewAllValidBitmap(a, length)
	}
	return b
}

// NewBorrowedFixed wraps foreign memory without copying. keepAlive must
// keep data/bitmap alive for as long as the buffer is reachable.
func NewBorrowedFixed(tag typeid.Tag, itemSize, length int, data, bitmap []byte, keepAlive any) *FixedBuffer {
	return &FixedBuffer{Tag: tag, ItemSize: itemSize, Len: length, Data: data, Bitmap: bitmap, Owned: false, KeepAlive: keepAlive}
}

// NullCount returns the number of null positions, 0 if Bitmap is absent.
func (b *FixedBuffer) NullCount() int { return NullCount(b.Bitmap, b.Len) }

// Release frees owned storage; borrowed buffers instead drop the
// keep-alive reference so the foreign memory's own owner can reclaim it.
func (b *FixedBuffer) Release() {
	if b.Owned && b.alloc != nil {
		b.alloc.Free(b.Data)
		b.alloc.Free(b.Bitmap)
	}
	b.Data, b.Bitmap, b.KeepAlive = nil, nil, nil
}

// VarBuffer backs a variable-width (string/binary) vector. Offsets has
// Len+1 int32 entries; value i occupies Data[Offsets[i]:Offsets[i+1]].
type VarBuffer struct {
	Tag     typeid.Tag
	Len     int
	Data    []byte
	Offsets []int32
	Bitmap  []byte

	Owned     bool
	KeepAlive any
	alloc     alloc.Allocator
}

// NewOwnedVar allocates an owned VarBuffer with dataCap bytes of data
// storage (exactly dataCap if strict, a starting estimate otherwise —
// callers grow it themselves) and Len+1 offsets initialized to zero.
func NewOwnedVar(a alloc.Allocator, tag typeid.Tag, length, dataCap int, withBitmap bool) *VarBuffer {
	b := &VarBuffer{Tag: tag, Len: length, Owned: true, alloc: a}
	b.Data = a.Allocate(dataCap)
	offsetBytes := a.Allocate((length + 1) * 4)
	b.Offsets = bytesToInt32Slice(offsetBytes, length+1)
	if withBitmap {
		b.Bitmap = NewAllValidBitmap(a, length)
	}
	return b
}

// NewBorrowedVar wraps foreign memory without copying.
func NewBorrowedVar(tag typeid.Tag, length int, data []byte, offsets []int32, bitmap []byte, keepAlive any) *VarBuffer {
	return &VarBuffer{Tag: tag, Len: length, Data: data, Offsets: offsets, Bitmap: bitmap, Owned: false, KeepAlive: keepAlive}
}

func (b *VarBuffer) NullCount() int { return NullCount(b.Bitmap, b.Len) }

// ValueRange returns the byte range value i occupies.
func (b *VarBuffer) ValueRange(i int) (start, end int32) {
	return b.Offsets[i], b.Offsets[i+1]
}

func (b *VarBuffer) Release() {
	if b.Owned && b.alloc != nil {
		b.alloc.Free(b.Data)
		b.alloc.Free(b.Bitmap)
	}
	b.Data, b.Offsets, b.Bitmap, b.KeepAlive = nil, nil, nil, nil
}

// BoolBuffer backs the Bool vector: Data bit-packs one value per row in
// the same layout as a validity bitmap (bit i at byte i>>3, bit i&7).
type BoolBuffer struct {
	Len    int
	Data   []byte
	Bitmap []byte

	Owned     bool
	KeepAlive any
	alloc     alloc.Allocator
}

func NewOwnedBool(a alloc.Allocator, length int, withBitmap bool) *BoolBuffer {
	b := &BoolBuffer{Len: length, Owned: true, alloc: a}
	b.Data = a.Allocate(BitmapByteLen(length))
	if withBitmap {
		b.Bitmap = NewAllValidBitmap(a, length)
	}
	return b
}

func NewBorrowedBool(length int, data, bitmap []byte, keepAlive any) *BoolBuffer {
	return &BoolBuffer{Len: length, Data: data, Bitmap: bitmap, Owned: false, KeepAlive: keepAlive}
}

func (b *BoolBuffer) NullCount() int { return NullCount(b.Bitmap, b.Len) }

// Value reports whether bit i of the data buffer is set.
func (b *BoolBuffer) Value(i int) bool { return IsValid(b.Data, i) }

func (b *BoolBuffer) Release() {
	if b.Owned && b.alloc != nil {
		b.alloc.Free(b.Data)
		b.alloc.Free(b.Bitmap)
	}
	b.Data, b.Bitmap, b.KeepAlive = nil, nil, nil
}

// ArrayBuffer backs the Array (nested list) vector: Offsets slices the
// child vector held alongside it at the vector layer (ArrayVec.Child).
type ArrayBuffer struct {
	ChildType typeid.Tag
	Len       int
	Offsets   []int32
	Bitmap    []byte

	Owned     bool
	KeepAlive any
	alloc     alloc.Allocator
}

func NewOwnedArray(a alloc.Allocator, childType typeid.Tag, length int, withBitmap bool) *ArrayBuffer {
	b := &ArrayBuffer{ChildType: childType, Len: length, Owned: true, alloc: a}
	offsetBytes := a.Allocate((length + 1) * 4)
	b.Offsets = bytesToInt32Slice(offsetBytes, length+1)
	if withBitmap {
		b.Bitmap = NewAllValidBitmap(a, length)
	}
	return b
}

func NewBorrowedArray(childType typeid.Tag, length int, offsets []int32, bitmap []byte, keepAlive any) *ArrayBuffer {
	return &ArrayBuffer{ChildType: childType, Len: length, Offsets: offsets, Bitmap: bitmap, Owned: false, KeepAlive: keepAlive}
}

func (b *ArrayBuffer) NullCount() int { return NullCount(b.Bitmap, b.Len) }

func (b *ArrayBuffer) Range(i int) (start, end int32) {
	return b.Offsets[i], b.Offsets[i+1]
}

func (b *ArrayBuffer) Release() {
	if b.Owned && b.alloc != nil {
		b.alloc.Free(b.Bitmap)
	}
	b.Offsets, b.Bitmap, b.KeepAlive = nil, nil, nil
}
