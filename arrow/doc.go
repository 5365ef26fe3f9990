// Package arrow provides Arrow IPC serialization for zero-copy data
// transfer between Draken and any other Arrow-speaking process.
package arrow
