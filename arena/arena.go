// Package arena provides the growable byte-region collaborators that back a
// heapalloc.Heap. An Arena can only grow; nothing in this package ever
// shrinks one.
package arena

// Arena is a linearly-extensible region of bytes, addressed by byte offset
// from 0. It plays the role of a sbrk-style heap primitive: Extend appends
// n bytes and returns where they start, and callers address everything
// they've been given by offset, never by a pointer into Bytes() directly,
// since growth may relocate the backing storage.
type Arena interface {
	// Extend appends n bytes (which need not be zeroed by the caller's
	// contract, but both implementations in this package do zero them)
	// and returns the offset of the first appended byte.
	Extend(n int) (base int, err error)
	// Lo is the inclusive lower bound of the committed region. It is
	// always 0 for the arenas in this package.
	Lo() int
	// Hi is the exclusive upper bound of the committed region.
	Hi() int
	// Bytes returns the current backing slice spanning [Lo, Hi). The
	// slice is only valid until the next call to Extend.
	Bytes() []byte
}
