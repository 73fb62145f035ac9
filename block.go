package heapalloc

import "encoding/binary"

// Word size and block layout constants, per the in-band header/footer
// encoding: every block starts 4 bytes past an 8-byte boundary, so that its
// payload (12 bytes in) is 8-aligned. A block carries a 4-byte header, a
// pair of 4-byte free-list links (prev, then next) filling the rest of the
// 12 bytes before the payload, and a 4-byte footer at its tail.
const (
	wordSize      = 4
	payloadOffset = 12 // payload address = block base + payloadOffset
	// Overhead is the number of non-payload bytes in every block: the
	// leading 12 bytes (header + prev-link + next-link) plus the trailing
	// 4-byte footer.
	Overhead = 16
	minBlockSize = 16

	// termSize is the width of the right sentinel: a single always-ALLOCATED,
	// zero-sized header word with no footer, matching the "fake zero-sized
	// allocated terminator" of the design document.
	termSize = wordSize

	// MaxSeg is the number of segregated free lists. Bucket 0 is the
	// oversized bin; buckets 1..MaxSeg-1 hold geometrically increasing
	// size classes, see bucketOf.
	MaxSeg = 13
)

type blockState uint32

const (
	stateFree      blockState = 0
	stateAllocated blockState = 1
)

func (s blockState) String() string {
	if s == stateFree {
		return "free"
	}
	return "allocated"
}

func readWord(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

func writeWord(buf []byte, off int, w uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], w)
}

func pack(size int, st blockState) uint32 {
	return uint32(size) | uint32(st)
}

func sizeOf(w uint32) int {
	return int(w &^ 7)
}

func stateOf(w uint32) blockState {
	return blockState(w & 1)
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// wordAt reads the header/footer word at byte offset off.
func (h *Heap) wordAt(off int) uint32 { return readWord(h.buf, off) }

// header returns the address of the header word of the block whose payload
// is at p.
func (h *Heap) header(p int) int { return p - payloadOffset }

// footer returns the address of the footer word of the block whose payload
// is at p.
func (h *Heap) footer(p int) int {
	return p - (payloadOffset + wordSize) + h.size(h.header(p))
}

// nextHeader returns the address of the header word of the block
// immediately following the block whose payload is at p.
func (h *Heap) nextHeader(p int) int {
	return p - payloadOffset + h.size(h.header(p))
}

// prevFooter returns the address of the footer word of the block
// immediately preceding the block whose payload is at p.
func (h *Heap) prevFooter(p int) int { return p - (payloadOffset + wordSize) }

// nextBlock returns the payload address of the block immediately following
// the block whose payload is at p.
func (h *Heap) nextBlock(p int) int { return p + h.size(h.header(p)) }

// prevBlock returns the payload address of the block immediately preceding
// the block whose payload is at p.
func (h *Heap) prevBlock(p int) int {
	return p - h.size(h.prevFooter(p))
}

func (h *Heap) size(wordOff int) int   { return sizeOf(h.wordAt(wordOff)) }
func (h *Heap) state(wordOff int) blockState { return stateOf(h.wordAt(wordOff)) }

// repackSize rewrites the word at wordOff, preserving its state field.
func (h *Heap) repackSize(wordOff, size int) {
	writeWord(h.buf, wordOff, pack(size, h.state(wordOff)))
}

// repackState rewrites the word at wordOff, preserving its size field.
func (h *Heap) repackState(wordOff int, st blockState) {
	writeWord(h.buf, wordOff, pack(h.size(wordOff), st))
}

// setBlock writes identical header and footer words for a block of the
// given size and state starting at base. Not valid for the zero-sized
// terminator; use writeTerminator for that.
func (h *Heap) setBlock(base, size int, st blockState) {
	w := pack(size, st)
	writeWord(h.buf, base, w)
	writeWord(h.buf, base+size-wordSize, w)
}

// writeTerminator installs the zero-sized, always-allocated right sentinel
// header at base. Unlike a real block it has no footer: nothing ever reads
// a terminator's footer, since next_header/prev_footer probes only ever
// need the header word of whatever lies at the far edge of the heap.
func (h *Heap) writeTerminator(base int) {
	writeWord(h.buf, base, pack(0, stateAllocated))
}

// Free-list link accessors. The two links are the 4-byte words at p-8 and
// p-4, so even a 16-byte free block holds both without touching its
// footer. They are only meaningful while the block is FREE; an allocated
// block leaves these bytes unused.
func (h *Heap) prevLink(p int) int {
	return int(int32(readWord(h.buf, p-8)))
}

func (h *Heap) setPrevLink(p, v int) {
	writeWord(h.buf, p-8, uint32(v))
}

func (h *Heap) nextLink(p int) int {
	return int(int32(readWord(h.buf, p-4)))
}

func (h *Heap) setNextLink(p, v int) {
	writeWord(h.buf, p-4, uint32(v))
}
