// Package alloc implements dynamic memory allocation over a heapkit heap.
//
// # Overview
//
// The core allocator, ListAllocator, manages blocks with boundary tags: every
// block carries an 8-byte header and an identical 8-byte footer encoding its
// size and an allocated bit. Free blocks are threaded onto one intrusive
// doubly-linked list whose link words live inside the freed payloads, so the
// free list costs no memory of its own. Allocation is first-fit over that
// list; release eagerly coalesces with both neighbors using the footers of
// adjacent blocks, so no two adjacent free blocks ever exist.
//
// # Heap layout
//
//	begin                                                              end
//	 -----------------------------------------------------------------------
//	| pad | hdr(16:a) | ftr(16:a) |  zero or more blocks  | hdr(0:a) |
//	 -----------------------------------------------------------------------
//	      |        prologue       |                       | epilogue |
//
// The allocated prologue and the zero-size allocated epilogue are permanent
// sentinels: every real block has two real neighbors, so coalescing never
// needs heap-boundary special cases. Each free block reuses its first two
// payload words for the previous/next free-list links:
//
//	 ---------------------------------------------------------------------
//	| hdr(size:f) |  prev free  |  next free  |   ...   |  ftr(size:f) |
//	 ---------------------------------------------------------------------
//
// # References
//
// Blocks are identified by the byte offset of their payload (Ref). NilRef
// (offset zero, inside the permanent padding word) is the null reference;
// an explicit zero word also terminates the free list at both ends.
//
// # Usage
//
//	h, err := heap.New(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	a, err := alloc.New(h, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	// buf is at least 100 bytes, 16-byte aligned within the heap.
//
//	err = a.Free(ref)
//
// # Trust boundary
//
// Free performs only cheap bounds checks. Releasing a reference that was not
// returned by Alloc, or releasing one twice, is undefined behavior — the
// allocator trusts its caller, as low-level allocators do. The optional
// Poison mode fills released payloads with a recognizable pattern to make
// use-after-free bugs visible in tests; it does not change the contract.
//
// # Strategies
//
// ListAllocator: the general-purpose allocator
//
//   - First-fit search, O(number of free blocks) per allocation
//   - O(1) free-list insertion and removal
//   - Eager boundary-tag coalescing, at most two neighbors touched
//   - Heap growth by max(request, chunk) when no free block fits
//
// BumpAllocator: an append-only strategy on the same interface
//
//   - O(1) allocation by advancing a bump pointer
//   - Free is a no-op (space is never reused)
//   - Useful as a baseline and for one-pass trace replay
//
// # Thread safety
//
// Allocator instances are not thread-safe. Exactly one goroutine may own an
// allocator at a time; callers needing concurrency must add their own
// mutual exclusion around the whole instance.
package alloc
