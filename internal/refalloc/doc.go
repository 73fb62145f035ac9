// Package refalloc is a worked alternative to the package's segregated
// free-list allocator: a buddy allocator over a fixed-size arena, kept here
// as a reference point rather than wired into Heap.
//
// The tradeoff it demonstrates: buddy splitting gets O(log n) alloc/free and
// branch-free coalescing (a buddy's address is always offset XOR blockSize)
// at the cost of internal fragmentation rounding every request up to the
// next power of two. The segregated-list design in the parent package
// accepts O(bucket-walk) placement and explicit boundary-tag coalescing in
// exchange for splitting blocks to the exact aligned size instead of the
// next power of two, which matters for a general-purpose allocator handling
// arbitrary, frequently non-power-of-two request sizes.
package refalloc
