// Package heapalloc implements a segregated free-list allocator over a
// single, monotonically growing arena.
//
// The arena is supplied by the caller (see package arena) and exposes only
// Extend, Lo, Hi and Bytes; heapalloc never shrinks it and never returns
// memory to whatever backs the arena. Every block, free or allocated, is
// self-describing: a 4-byte header and a 4-byte footer word at the edges of
// the block encode its size and allocation state, which is what lets
// coalescing and splitting work without any side index of block addresses.
// Free blocks are additionally indexed by size into MaxSeg segregated
// doubly-linked lists (see seglist.go) so that allocation is a short,
// bounded walk rather than a scan of the whole arena.
//
// A *Heap is not safe for concurrent use; wrap one in a Locked (see
// heap_locked.go) if multiple goroutines need to share it.
//
// See internal/refalloc for a buddy-splitting allocator kept as a worked
// comparison: it trades the exact-size splitting and boundary-tag
// coalescing here for power-of-two rounding and branch-free buddy coalesce.
package heapalloc
