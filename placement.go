package heapalloc

// findBlock performs a segregated first-fit search: starting at the bucket
// size itself belongs to and walking up through larger buckets, then
// finally the oversized bucket, it returns the first block (in list
// insertion order) whose size is at least size.
func (h *Heap) findBlock(size int) (int, bool) {
	seg := bucketOf(size)
	if seg > 0 {
		for i := seg; i < MaxSeg; i++ {
			for node := h.first[i]; node != 0; node = h.nextLink(node) {
				if h.size(h.header(node)) >= size {
					return node, true
				}
			}
		}
	}
	for node := h.first[0]; node != 0; node = h.nextLink(node) {
		if h.size(h.header(node)) >= size {
			return node, true
		}
	}
	return 0, false
}

// newBlock grows the arena by exactly size bytes and turns the growth into
// a single new FREE block of that size, reinterpreting the old terminator's
// header word as the new block's header. It then writes the new block's
// footer in the freshly extended bytes, installs a fresh terminator past it,
// and runs the result through coalesce.
func (h *Heap) newBlock(size int) (int, error) {
	justPast, err := h.arena.Extend(size)
	if err != nil {
		return 0, err
	}
	h.refresh()
	base := justPast - termSize
	h.setBlock(base, size, stateFree)
	h.writeTerminator(base + size)
	return h.coalesce(base + payloadOffset), nil
}
