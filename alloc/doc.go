// Package alloc adapts Draken's owned-buffer allocations onto
// arrow-go's memory.Allocator, so every owned buffer in the core is
// backed by the same allocator an Arrow producer or consumer would use.
package alloc
