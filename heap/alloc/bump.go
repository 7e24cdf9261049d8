package alloc

import (
	"fmt"

	"github.com/memlab/heapkit/heap"
	"github.com/memlab/heapkit/internal/format"
)

// BumpAllocator is an append-only strategy over the same heap layout:
// allocation carves blocks off the top of the heap in address order and Free
// never returns space for reuse. There is no free list and no fit search, so
// both initialization and allocation are O(1).
//
// The heap image it produces is identical in structure to the
// ListAllocator's — padding, prologue, boundary-tagged blocks, epilogue —
// with at most one free block (the unconsumed slack) sitting just below the
// epilogue. The structural checks in heap/verify (sentinels, block tagging)
// apply unchanged; the free-list check does not, since there is no list.
//
// Useful as a baseline in benchmarks and for one-pass trace replay where
// nothing is ever released.
type BumpAllocator struct {
	h *heap.Heap

	// top is the payload offset of the next allocation. The span from top to
	// the epilogue, when non-empty, is one free slack block.
	top int64

	chunk int64
	stats Stats
}

// NewBump initializes an append-only allocator over a fresh heap. Unlike
// New, no chunk is pre-extended: the heap grows on first allocation.
func NewBump(h *heap.Heap, opts *Options) (*BumpAllocator, error) {
	b := &BumpAllocator{h: h, chunk: opts.chunk()}

	off, err := h.Extend(4 * format.WordSize)
	if err != nil {
		return nil, fmt.Errorf("alloc: init heap: %w", err)
	}
	if off != 0 {
		return nil, fmt.Errorf("alloc: heap not empty (base at offset %d)", off)
	}

	data := h.Bytes()
	format.PutU64(data, 0, 0)
	format.PutU64(data, format.PrologueHeader, format.Pack(format.Overhead, true))
	format.PutU64(data, 2*format.WordSize, format.Pack(format.Overhead, true))
	format.PutU64(data, 3*format.WordSize, format.Pack(0, true))

	b.top = h.Size() // no slack yet
	return b, nil
}

// Alloc bumps the top of the heap by the adjusted size, growing the heap by
// max(adjusted size, chunk) whenever the slack runs out. Requests of
// size <= 0 are a defined no-op returning (NilRef, nil, nil).
func (b *BumpAllocator) Alloc(size int64) (Ref, []byte, error) {
	b.stats.AllocCalls++
	if size <= 0 {
		return NilRef, nil, nil
	}

	asize := format.AdjustRequest(size)

	grew := false
	for b.avail() < asize {
		if err := b.grow(asize); err != nil {
			return NilRef, nil, err
		}
		grew = true
	}
	if grew {
		b.stats.AllocSlowPath++
	} else {
		b.stats.AllocFastPath++
	}

	data := b.h.Bytes()
	rem := b.avail() - asize
	if rem < format.MinBlockSize {
		// Absorb unusable slack into this allocation.
		asize += rem
		rem = 0
	}

	bp := b.top
	setTags(data, bp, asize, true)
	b.top += asize
	b.stats.BytesAllocated += asize

	if rem > 0 {
		setTags(data, b.top, rem, false)
	}

	return bp, data[bp : bp+asize-format.Overhead], nil
}

// Free only validates and counts the release. The block keeps its allocated
// tags and its space is never reused; append-only callers rely on exactly
// that.
func (b *BumpAllocator) Free(ref Ref) error {
	b.stats.FreeCalls++
	data := b.h.Bytes()
	if ref < format.FirstBlock || ref%format.Alignment != 0 || ref >= int64(len(data)) {
		return ErrBadRef
	}
	b.stats.BytesFreed += blockSize(data, ref)
	return nil
}

// Stats returns a snapshot of the allocator's counters.
func (b *BumpAllocator) Stats() Stats { return b.stats }

// avail returns the size of the slack block under the epilogue.
func (b *BumpAllocator) avail() int64 {
	return b.h.Size() - b.top
}

// grow extends the heap by max(need, chunk) rounded to an even word count,
// restamps the slack block over the old epilogue, and writes a fresh
// epilogue at the new heap end.
func (b *BumpAllocator) grow(need int64) error {
	words := max(need, b.chunk) / format.WordSize
	size := format.EvenWords(words) * format.WordSize

	if _, err := b.h.Extend(size); err != nil {
		return fmt.Errorf("alloc: extend heap by %d bytes: %w", size, err)
	}
	b.stats.ExtendCalls++
	b.stats.ExtendBytes += size

	data := b.h.Bytes()
	end := b.h.Size()
	setTags(data, b.top, end-b.top, false)
	format.PutU64(data, end-format.WordSize, format.Pack(0, true))
	return nil
}
