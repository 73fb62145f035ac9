package heapalloc

// coalesce merges a FREE, not-yet-listed block at payload address b with any
// FREE immediate neighbors, then installs the (possibly larger) result in
// its segregated list. It returns the payload address of the merged block,
// which may differ from b if the left neighbor was absorbed.
func (h *Heap) coalesce(b int) int {
	if h.state(h.prevFooter(b)) == stateFree {
		left := h.prevBlock(b)
		h.listRemove(left)
		merged := h.size(h.header(left)) + h.size(h.header(b))
		oldFooter := h.footer(b)
		h.repackSize(h.header(left), merged)
		h.repackSize(oldFooter, merged)
		b = left
	}
	if h.state(h.nextHeader(b)) == stateFree {
		right := h.nextBlock(b)
		h.listRemove(right)
		merged := h.size(h.header(b)) + h.size(h.header(right))
		rightFooter := h.footer(right)
		h.repackSize(h.header(b), merged)
		h.repackSize(rightFooter, merged)
	}
	h.listAdd(b)
	return b
}

// split shrinks an ALLOCATED block b (not present in any list) to exactly
// size bytes, if a remainder of at least Overhead bytes would be left over.
// The remainder is carved off as a new FREE block and coalesced with
// whatever lies to its right; it is never merged to its left since b itself
// is allocated. split is a no-op if there isn't room for a remainder block.
func (h *Heap) split(b, size int) {
	oldsize := h.size(h.header(b))
	if oldsize < size+Overhead {
		return
	}
	base := h.header(b)
	h.setBlock(base, size, stateAllocated)
	remBase := base + size
	h.setBlock(remBase, oldsize-size, stateFree)
	h.coalesce(remBase + payloadOffset)
}
