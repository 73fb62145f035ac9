package heapalloc

import (
	"fmt"

	"github.com/heapalloc/heapalloc/heaperr"
	"github.com/heapalloc/heapalloc/heapstats"
)

// walk visits every non-sentinel block from the left sentinel to the
// terminator, in address order.
func (h *Heap) walk(visit func(base, size int, st blockState)) {
	cur := h.base + minBlockSize
	for {
		w := h.wordAt(cur)
		size := sizeOf(w)
		if size == 0 {
			return
		}
		visit(cur, size, stateOf(w))
		cur += size
	}
}

// Stats walks the heap and reports block/byte counts for live and free
// memory, plus per-bucket free block occupancy.
func (h *Heap) Stats() heapstats.Stats {
	h.refresh()
	var s heapstats.Stats
	h.walk(func(base, size int, st blockState) {
		if st == stateFree {
			s.FreeBlocks++
			s.FreeBytes += size
			s.Buckets[bucketOf(size)]++
		} else {
			s.LiveBlocks++
			s.LiveBytes += size
		}
	})
	return s
}

// Check walks the heap and the segregated lists and verifies invariants
// I1-I7 from the design document. It returns the first violation found, or
// nil if the heap is consistent. Check is for tests and diagnostics; it is
// never called from Allocate/Free/Reallocate.
func (h *Heap) Check() error {
	h.refresh()

	free := map[int]bool{}
	lastWasFree := false
	var walkErr error
	h.walk(func(base, size int, st blockState) {
		if walkErr != nil {
			return
		}
		hdr := h.wordAt(base)
		ftr := h.wordAt(base + size - wordSize)
		if hdr != ftr {
			walkErr = invariant("I1", "block at %d: header %#x != footer %#x", base, hdr, ftr)
			return
		}
		if size%8 != 0 || size < minBlockSize {
			walkErr = invariant("I2", "block at %d has invalid size %d", base, size)
			return
		}
		isFree := st == stateFree
		if isFree && lastWasFree {
			walkErr = invariant("I4", "two adjacent free blocks meeting at %d", base)
			return
		}
		lastWasFree = isFree
		free[base] = isFree
	})
	if walkErr != nil {
		return walkErr
	}

	inList := map[int]bool{}
	for bucket := 0; bucket < MaxSeg; bucket++ {
		prev := 0
		for node := h.first[bucket]; node != 0; node = h.nextLink(node) {
			size := h.size(h.header(node))
			if bucketOf(size) != bucket {
				return invariant("I7", "block %d (size %d) listed in bucket %d", node, size, bucket)
			}
			if h.prevLink(node) != prev {
				return invariant("I6", "block %d prev link does not point back to %d", node, prev)
			}
			inList[node] = true
			prev = node
		}
		if prev != h.last[bucket] {
			return invariant("I6", "bucket %d tail is %d, expected %d", bucket, h.last[bucket], prev)
		}
	}

	for base, isFree := range free {
		payload := base + payloadOffset
		if isFree != inList[payload] {
			return invariant("I5", "block %d free=%v list-membership=%v disagree", base, isFree, inList[payload])
		}
	}
	return nil
}

func invariant(code, format string, args ...interface{}) error {
	return &heaperr.InvariantError{Code: code, Detail: fmt.Sprintf(format, args...)}
}
