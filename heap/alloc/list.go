package alloc

import (
	"fmt"
	"os"

	"github.com/memlab/heapkit/heap"
	"github.com/memlab/heapkit/heap/verify"
	"github.com/memlab/heapkit/internal/format"
)

// ListAllocator is the general-purpose allocator: boundary-tagged blocks,
// one intrusive doubly-linked free list, first-fit search, and eager
// coalescing. All of its state lives in the struct, so independent heaps can
// run independent allocators.
type ListAllocator struct {
	h *heap.Heap

	// head is the payload offset of the first free block, NilRef when the
	// list is empty.
	head int64

	chunk  int64
	poison bool

	stats Stats
}

// New initializes the allocator over a fresh heap: it lays down the padding
// word, the allocated prologue, and the zero-size allocated epilogue, then
// seeds the free list by extending the heap with one chunk.
//
// Parameters:
//   - h: the heap to manage; it must be empty (never extended)
//   - opts: configuration, nil for defaults
func New(h *heap.Heap, opts *Options) (*ListAllocator, error) {
	a := &ListAllocator{
		h:      h,
		head:   NilRef,
		chunk:  opts.chunk(),
		poison: opts.poison(),
	}

	off, err := h.Extend(4 * format.WordSize)
	if err != nil {
		return nil, fmt.Errorf("alloc: init heap: %w", err)
	}
	if off != 0 {
		return nil, fmt.Errorf("alloc: heap not empty (base at offset %d)", off)
	}

	// Alignment padding word, the allocated prologue pair, and the initial
	// epilogue header.
	data := h.Bytes()
	format.PutU64(data, 0, 0)
	format.PutU64(data, format.PrologueHeader, format.Pack(format.Overhead, true))
	format.PutU64(data, 2*format.WordSize, format.Pack(format.Overhead, true))
	format.PutU64(data, 3*format.WordSize, format.Pack(0, true))

	if _, err := a.extend(a.chunk / format.WordSize); err != nil {
		return nil, err
	}
	return a, nil
}

// Alloc returns a block of at least size bytes. Requests of size <= 0 are a
// defined no-op returning (NilRef, nil, nil) with no heap mutation. When no
// free block fits, the heap is grown by max(adjusted size, chunk) and the
// placement retried; only a failed growth makes Alloc return an error.
func (a *ListAllocator) Alloc(size int64) (Ref, []byte, error) {
	a.stats.AllocCalls++
	if size <= 0 {
		return NilRef, nil, nil
	}

	asize := format.AdjustRequest(size)

	if bp := a.findFit(asize); bp != NilRef {
		a.stats.AllocFastPath++
		a.place(bp, asize)
		return bp, a.payload(bp), nil
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] no fit for %d bytes (adjusted %d), growing heap\n", size, asize)
	}

	words := max(asize, a.chunk) / format.WordSize
	bp, err := a.extend(words)
	if err != nil {
		return NilRef, nil, err
	}
	a.stats.AllocSlowPath++
	a.place(bp, asize)
	return bp, a.payload(bp), nil
}

// Free releases the block at ref: its tags are flipped to free and the block
// is handed to the coalescer, which merges it with any free neighbor and
// reinserts it at the list head.
//
// Only cheap bounds checks guard ref. A reference that was not returned by
// Alloc, or one already released, is undefined behavior.
func (a *ListAllocator) Free(ref Ref) error {
	a.stats.FreeCalls++
	data := a.h.Bytes()

	if ref < format.FirstBlock || ref%format.Alignment != 0 || ref >= int64(len(data)) {
		return ErrBadRef
	}
	size := blockSize(data, ref)
	if size < format.MinBlockSize || ref+size > int64(len(data)) {
		return ErrBadRef
	}

	setTags(data, ref, size, false)
	a.stats.BytesFreed += size

	if a.poison {
		payload := data[ref : ref+size-format.Overhead]
		for i := range payload {
			payload[i] = PoisonByte
		}
	}

	a.coalesce(ref)
	return nil
}

// place carves an asize-byte allocated block out of the free block at bp.
// Leftover smaller than a minimum block is absorbed into the allocation
// rather than left as an unmanageable fragment; otherwise the tail becomes a
// new free block, fully tagged before it is inserted so the list never
// describes the pre-split span.
func (a *ListAllocator) place(bp, asize int64) {
	data := a.h.Bytes()
	free := blockSize(data, bp)
	leftover := free - asize

	a.removeNode(bp)

	if leftover < format.MinBlockSize {
		setTags(data, bp, free, true)
		a.stats.BytesAllocated += free
		return
	}

	a.stats.SplitCount++
	setTags(data, bp, asize, true)
	a.stats.BytesAllocated += asize

	tail := bp + asize
	setTags(data, tail, leftover, false)
	a.insertHead(tail)
}

// payload returns the usable byte range of the allocated block at bp.
func (a *ListAllocator) payload(bp int64) []byte {
	data := a.h.Bytes()
	return data[bp : bp+blockSize(data, bp)-format.Overhead]
}

// Stats returns a snapshot of the allocator's counters.
func (a *ListAllocator) Stats() Stats { return a.stats }

// CheckHeap validates every heap and free-list invariant. Diagnostic only:
// it is meant for tests and suspect-operation instrumentation, not the hot
// path.
func (a *ListAllocator) CheckHeap() error {
	return verify.AllInvariants(a.h.Bytes(), a.head)
}
