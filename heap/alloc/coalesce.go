package alloc

import (
	"fmt"

	"github.com/memlab/heapkit/internal/format"
)

// coalesce merges the freshly freed block at bp with any free neighbor and
// inserts the result at the head of the free list, returning its payload
// offset. The previous block's state is read from the footer word just
// before bp (the boundary-tag trick), the next block's from its header one
// span ahead. Four cases by (prev allocated, next allocated); the sentinels
// guarantee both neighbors exist.
//
// This is the single path through which both released blocks and freshly
// extended heap space enter the free list.
func (a *ListAllocator) coalesce(bp int64) int64 {
	data := a.h.Bytes()

	prevAlloc := format.IsAllocated(format.ReadU64(data, bp-format.DWordSize))
	nextAlloc := blockAllocated(data, nextBlock(data, bp))
	size := blockSize(data, bp)

	switch {
	case prevAlloc && nextAlloc:
		// Nothing adjacent to merge.

	case prevAlloc && !nextAlloc:
		a.stats.CoalesceForward++
		nb := nextBlock(data, bp)
		size += blockSize(data, nb)
		a.removeNode(nb)
		setTags(data, bp, size, false)

	case !prevAlloc && nextAlloc:
		a.stats.CoalesceBackward++
		pb := prevBlock(data, bp)
		size += blockSize(data, pb)
		a.removeNode(pb)
		bp = pb
		setTags(data, bp, size, false)

	default:
		a.stats.CoalesceBoth++
		pb, nb := prevBlock(data, bp), nextBlock(data, bp)
		size += blockSize(data, pb) + blockSize(data, nb)
		a.removeNode(pb)
		a.removeNode(nb)
		bp = pb
		setTags(data, bp, size, false)
	}

	a.insertHead(bp)
	return bp
}

// extend grows the heap by the given word count, rounded up to an even
// number of words to preserve the 16-byte granularity. The new span is
// tagged as one free block whose header overwrites the old epilogue, a fresh
// epilogue is stamped at the new heap end, and the span is folded into the
// free list through the coalescer (merging with a free block at the old heap
// top, if any).
//
// On growth failure the heap and the allocator are left exactly as before.
func (a *ListAllocator) extend(words int64) (int64, error) {
	size := format.EvenWords(words) * format.WordSize

	off, err := a.h.Extend(size)
	if err != nil {
		return NilRef, fmt.Errorf("alloc: extend heap by %d bytes: %w", size, err)
	}
	a.stats.ExtendCalls++
	a.stats.ExtendBytes += size
	debugLogf("extend: +%d bytes, heap now %d bytes", size, a.h.Size())

	data := a.h.Bytes()
	bp := off // the old epilogue header becomes this block's header
	setTags(data, bp, size, false)
	format.PutU64(data, hdr(nextBlock(data, bp)), format.Pack(0, true)) // new epilogue

	return a.coalesce(bp), nil
}
