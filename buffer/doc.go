// Package buffer implements Draken's four raw buffer shapes: fixed-width,
// variable-width (offset-indexed bytes), bit-packed boolean, and list.
// Layouts are byte-for-byte Arrow compatible so a buffer's storage can be
// handed to the Arrow bridge without copying.
package buffer
