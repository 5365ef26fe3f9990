// Package bridge converts between Draken's native vectors and Apache
// Arrow arrays.
//
// Import wraps an arrow.Array as a Draken vector.Vector, borrowing the
// underlying buffers where the layout allows (non-nanosecond timestamps
// and 64-bit offsets tables are copied); Export is the inverse, delegating to each
// vector's own ToArrow method. A raw C Data Interface wrapper (cdata.go,
// cgo-gated) hands the same conversion to out-of-process or
// foreign-language consumers via arrow-go's cdata package.
package bridge
