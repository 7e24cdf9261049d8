// Package verify validates the invariants of a boundary-tag heap image.
// These checks are diagnostic instrumentation: they are wired into tests and
// the trace runner, never into the allocation hot path, and they report
// violations without attempting to repair anything.
package verify

import (
	"fmt"

	"github.com/memlab/heapkit/internal/format"
)

// ValidationError describes a single failed heap invariant.
type ValidationError struct {
	Type    string // invariant category, e.g. "Prologue", "Blocks"
	Message string
	Offset  int64 // heap offset where the violation was found, -1 if n/a
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("verify: %s at offset %d: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("verify: %s: %s", e.Type, e.Message)
}

// AllInvariants runs every check against the heap image: sentinels, block
// tagging, and the free list rooted at head. It returns the first violation
// found, or nil.
func AllInvariants(data []byte, head int64) error {
	if err := Prologue(data); err != nil {
		return err
	}
	if err := Blocks(data); err != nil {
		return err
	}
	if err := Epilogue(data); err != nil {
		return err
	}
	return FreeList(data, head)
}

// Prologue checks the padding word and the permanently allocated prologue
// sentinel at the bottom of the heap.
func Prologue(data []byte) error {
	if len(data) < format.FirstBlock {
		return &ValidationError{
			Type:    "Prologue",
			Message: fmt.Sprintf("heap too small: %d bytes (need %d)", len(data), format.FirstBlock),
			Offset:  -1,
		}
	}
	if w := format.ReadU64(data, 0); w != 0 {
		return &ValidationError{
			Type:    "Prologue",
			Message: fmt.Sprintf("padding word not zero: %#x", w),
			Offset:  0,
		}
	}
	h := format.ReadU64(data, format.PrologueHeader)
	f := format.ReadU64(data, 2*format.WordSize)
	if format.SizeOf(h) != format.Overhead || !format.IsAllocated(h) {
		return &ValidationError{
			Type:    "Prologue",
			Message: fmt.Sprintf("bad prologue header: size %d, allocated %v", format.SizeOf(h), format.IsAllocated(h)),
			Offset:  format.PrologueHeader,
		}
	}
	if h != f {
		return &ValidationError{
			Type:    "Prologue",
			Message: "prologue header does not match footer",
			Offset:  2 * format.WordSize,
		}
	}
	return nil
}

// Blocks walks every block from the prologue to the epilogue in address
// order, checking alignment, matching header/footer tags, minimum size,
// reserved flag bits, and that no two adjacent blocks are both free.
func Blocks(data []byte) error {
	prevFree := false
	bp := int64(format.FirstBlock)
	for {
		if hdrOff(bp)+format.WordSize > int64(len(data)) {
			return &ValidationError{
				Type:    "Blocks",
				Message: "block walk ran past the end of the heap",
				Offset:  bp,
			}
		}
		h := format.ReadU64(data, hdrOff(bp))
		size := format.SizeOf(h)
		if size == 0 {
			return nil // epilogue reached; Epilogue validates it
		}

		if bp%format.Alignment != 0 {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("payload not %d-byte aligned", format.Alignment),
				Offset:  bp,
			}
		}
		if size < format.MinBlockSize || size%format.Alignment != 0 {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("illegal block size %d", size),
				Offset:  bp,
			}
		}
		if h&format.FlagsMask&^format.AllocatedFlag != 0 {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("reserved flag bits set: %#x", h&format.FlagsMask),
				Offset:  bp,
			}
		}
		if bp+size > int64(len(data)) {
			return &ValidationError{
				Type:    "Blocks",
				Message: fmt.Sprintf("block of %d bytes overruns the heap", size),
				Offset:  bp,
			}
		}
		if f := format.ReadU64(data, bp+size-format.DWordSize); f != h {
			return &ValidationError{
				Type:    "Blocks",
				Message: "header does not match footer",
				Offset:  bp,
			}
		}

		free := !format.IsAllocated(h)
		if free && prevFree {
			return &ValidationError{
				Type:    "Blocks",
				Message: "two adjacent free blocks (missed coalesce)",
				Offset:  bp,
			}
		}
		prevFree = free
		bp += size
	}
}

// Epilogue checks the zero-size allocated sentinel at the top of the heap.
func Epilogue(data []byte) error {
	off := int64(len(data)) - format.WordSize
	w := format.ReadU64(data, off)
	if format.SizeOf(w) != 0 || !format.IsAllocated(w) {
		return &ValidationError{
			Type:    "Epilogue",
			Message: fmt.Sprintf("bad epilogue header: size %d, allocated %v", format.SizeOf(w), format.IsAllocated(w)),
			Offset:  off,
		}
	}
	return nil
}

// FreeList checks the intrusive list rooted at head: every node must be a
// free, in-bounds block; the prev links must mirror the next links; and the
// node count must equal the number of free blocks found by the address-order
// walk, so every free block is on the list exactly once.
func FreeList(data []byte, head int64) error {
	// Upper bound on legal list length, used as a cycle guard.
	maxNodes := len(data)/format.MinBlockSize + 1

	nodes := 0
	prev := int64(0)
	for bp := head; bp != 0; bp = nextOf(data, bp) {
		if bp < format.FirstBlock || bp+format.DWordSize > int64(len(data)) || bp%format.Alignment != 0 {
			return &ValidationError{
				Type:    "FreeList",
				Message: "list node out of bounds or misaligned",
				Offset:  bp,
			}
		}
		if format.IsAllocated(format.ReadU64(data, hdrOff(bp))) {
			return &ValidationError{
				Type:    "FreeList",
				Message: "list node is marked allocated",
				Offset:  bp,
			}
		}
		if got := prevOf(data, bp); got != prev {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("previous link is %d, want %d", got, prev),
				Offset:  bp,
			}
		}
		nodes++
		if nodes > maxNodes {
			return &ValidationError{
				Type:    "FreeList",
				Message: "list does not terminate (cycle?)",
				Offset:  head,
			}
		}
		prev = bp
	}

	free := countFreeBlocks(data)
	if nodes != free {
		return &ValidationError{
			Type:    "FreeList",
			Message: fmt.Sprintf("list has %d nodes but the heap has %d free blocks", nodes, free),
			Offset:  -1,
		}
	}
	return nil
}

func hdrOff(bp int64) int64 { return bp - format.WordSize }

func prevOf(data []byte, bp int64) int64 {
	return int64(format.ReadU64(data, bp))
}

func nextOf(data []byte, bp int64) int64 {
	return int64(format.ReadU64(data, bp+format.WordSize))
}

// countFreeBlocks walks the heap in address order. It assumes Blocks has
// already validated the walk.
func countFreeBlocks(data []byte) int {
	n := 0
	for bp := int64(format.FirstBlock); ; {
		h := format.ReadU64(data, hdrOff(bp))
		size := format.SizeOf(h)
		if size == 0 {
			return n
		}
		if !format.IsAllocated(h) {
			n++
		}
		bp += size
	}
}
