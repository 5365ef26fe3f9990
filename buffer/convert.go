package buffer

import "unsafe"

// bytesToInt32Slice reinterprets a freshly allocated byte buffer as an
// []int32 view over the same storage, so an offsets buffer shares the
// exact allocation the allocator handed back rather than a second copy.
// Mirrors the reinterpret-cast arrow-go itself performs in
// arrow.CastFromBytesTo for the same reason (zero-copy typed views over
// byte-backed allocator storage).
func bytesToInt32Slice(b []byte, n int) []int32 {
	if b == nil {
		return make([]int32, n)
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), n)
}

// int32SliceToBytes is the inverse view, used when exporting an owned
// offsets slice back out as a raw Arrow buffer.
func int32SliceToBytes(s []int32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}
