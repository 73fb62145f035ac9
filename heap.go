package heapalloc

import (
	"fmt"

	"github.com/cznic/mathutil"

	"github.com/heapalloc/heapalloc/heaperr"
)

// defaultGrowthUnit is 0: by default a Heap grows the arena by exactly the
// block size it needs, matching new_block(size)'s contract of producing one
// large free block of precisely that size. Callers expecting many small,
// similarly-sized allocations can opt into batched growth with
// WithGrowthUnit to cut down on Extend calls.
const defaultGrowthUnit = 0

// Arena is the external collaborator that owns the actual backing storage.
// It can only grow: there is no Shrink. See package arena for concrete
// implementations.
type Arena interface {
	// Extend appends n bytes to the arena and returns the base address of
	// the newly appended region.
	Extend(n int) (base int, err error)
	// Lo returns the inclusive lower bound of the committed region.
	Lo() int
	// Hi returns the exclusive upper bound of the committed region.
	Hi() int
	// Bytes returns the current backing slice, valid until the next call
	// to Extend.
	Bytes() []byte
}

// Heap is a segregated free-list allocator over a single Arena. It is not
// safe for concurrent use; see Locked.
type Heap struct {
	arena      Arena
	buf        []byte
	base       int
	growthUnit int

	first [MaxSeg]int
	last  [MaxSeg]int
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithGrowthUnit sets the minimum number of bytes requested from the arena
// on each growth step. The default, 0, requests exactly what the triggering
// allocation needs.
func WithGrowthUnit(n int) Option {
	return func(h *Heap) {
		if n > 0 {
			h.growthUnit = n
		}
	}
}

// NewHeap creates a Heap backed by a, installing the left and right
// sentinels and clearing the segregated free lists. a must be freshly
// created (zero length); NewHeap is the sole owner of whatever it grows.
func NewHeap(a Arena, opts ...Option) (*Heap, error) {
	h := &Heap{arena: a, growthUnit: defaultGrowthUnit}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.init(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Heap) refresh() { h.buf = h.arena.Bytes() }

// init reserves the left sentinel (16 bytes, ALLOCATED) and the right
// sentinel terminator, and clears every segregated list.
func (h *Heap) init() error {
	a, err := h.arena.Extend(Overhead + 2*wordSize) // 24 bytes
	if err != nil {
		return fmt.Errorf("%w: %v", heaperr.ErrArenaExhausted, err)
	}
	h.refresh()
	// The first word of the reservation is unused padding: it puts every
	// block 4 bytes past an 8-byte boundary, so payloads are 8-aligned, and
	// it makes the right sentinel's single header word land exactly at the
	// end of these 24 bytes, with no gap and no overrun.
	h.base = a + wordSize
	h.setBlock(h.base, minBlockSize, stateAllocated)
	h.writeTerminator(h.base + minBlockSize)
	for i := range h.first {
		h.first[i] = 0
		h.last[i] = 0
	}
	return nil
}

// Allocate reserves size bytes and returns the payload address, or (0, nil)
// if size is zero. It returns a wrapped heaperr.ErrArenaExhausted if the
// arena cannot grow far enough to satisfy the request.
func (h *Heap) Allocate(size int) (int, error) {
	if size <= 0 {
		return 0, nil
	}
	h.refresh()
	bsize := alignUp(size+Overhead, 8)
	b, ok := h.findBlock(bsize)
	if !ok {
		grow := mathutil.Max(bsize, h.growthUnit)
		nb, err := h.newBlock(grow)
		if err != nil {
			return 0, fmt.Errorf("heapalloc: allocate %d bytes: %w: %v", size, heaperr.ErrArenaExhausted, err)
		}
		b = nb
	}
	h.listRemove(b)
	h.repackState(h.header(b), stateAllocated)
	h.repackState(h.footer(b), stateAllocated)
	h.split(b, bsize)
	return b, nil
}

// Free releases the block at payload address p. Passing a pointer not
// previously returned by Allocate or Reallocate, or freeing the same
// pointer twice, is undefined behavior: the in-band metadata scheme has no
// way to detect either.
func (h *Heap) Free(p int) {
	h.refresh()
	h.repackState(h.header(p), stateFree)
	h.repackState(h.footer(p), stateFree)
	h.coalesce(p)
}

// Reallocate resizes the block at p to size bytes, returning the (possibly
// new) payload address. p == 0 behaves like Allocate(size); size == 0
// behaves like Free(p) and returns (0, nil).
func (h *Heap) Reallocate(p, size int) (int, error) {
	if p == 0 {
		return h.Allocate(size)
	}
	if size == 0 {
		h.Free(p)
		return 0, nil
	}
	h.refresh()
	newsize := alignUp(size+Overhead, 8)
	oldsize := h.size(h.header(p))

	if newsize+Overhead < oldsize {
		h.split(p, newsize)
		return p, nil
	}
	if newsize < oldsize {
		return p, nil
	}

	if nh := h.nextHeader(p); h.state(nh) == stateFree {
		nextPayload := h.nextBlock(p)
		nextSize := h.size(nh)
		if oldsize+nextSize >= newsize {
			h.listRemove(nextPayload)
			h.setBlock(h.header(p), oldsize+nextSize, stateAllocated)
			h.split(p, newsize)
			return p, nil
		}
	}

	if pf := h.prevFooter(p); h.state(pf) == stateFree {
		prevSize := h.size(pf)
		if oldsize+prevSize >= newsize {
			q := h.prevBlock(p)
			h.listRemove(q)
			h.setBlock(h.header(q), prevSize+oldsize, stateAllocated)
			moveBytes(h.buf, q, p, oldsize-Overhead)
			h.split(q, newsize)
			return q, nil
		}
	}

	q, err := h.Allocate(size)
	if err != nil {
		return 0, err
	}
	if q != 0 {
		moveBytes(h.buf, q, p, oldsize-Overhead)
		h.Free(p)
	}
	return q, nil
}

// moveBytes copies n bytes from src to dst within the same backing slice,
// correct regardless of whether the ranges overlap.
func moveBytes(buf []byte, dst, src, n int) {
	copy(buf[dst:dst+n], buf[src:src+n])
}
