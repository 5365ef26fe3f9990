// Package morsel holds the row-batch container the kernel layer
// operates over: one Vector per column, a shared row count, and byte
// column names, built from (and convertible back to) an Arrow table.
package morsel
