// Package heap models the allocator's raw memory: one contiguous byte range
// with a fixed base address that only ever grows. It is the Go rendering of
// the classic sbrk contract — Extend advances the end of the range and hands
// back the offset of the new space — with failure reported through an
// explicit error instead of a sentinel address.
package heap

import (
	"errors"
	"fmt"

	"github.com/memlab/heapkit/internal/mmarena"
)

// ErrOutOfMemory indicates the heap's reservation cannot cover an extension.
var ErrOutOfMemory = errors.New("heap: out of memory")

// Heap is a contiguous, growable byte range. The offset of any byte is
// stable for the lifetime of the heap: the base never moves and the range
// never shrinks.
type Heap struct {
	region *mmarena.Region
}

// New reserves a heap that can grow to at most max bytes. The heap starts
// empty; callers grow it with Extend.
func New(max int64) (*Heap, error) {
	if max <= 0 {
		return nil, fmt.Errorf("heap: invalid maximum size %d", max)
	}
	r, err := mmarena.Reserve(int(max))
	if err != nil {
		return nil, err
	}
	return &Heap{region: r}, nil
}

// Extend grows the heap by n bytes and returns the offset of the first newly
// available byte. The new bytes are zeroed. On failure the heap is left
// exactly as it was; exhaustion of the reservation surfaces as
// ErrOutOfMemory.
func (h *Heap) Extend(n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("heap: invalid extension size %d", n)
	}
	old := h.region.Len()
	if err := h.region.Grow(old + int(n)); err != nil {
		if errors.Is(err, mmarena.ErrExhausted) {
			return 0, ErrOutOfMemory
		}
		return 0, err
	}
	return int64(old), nil
}

// Bytes returns the current heap image. The slice is remade by Extend, so
// callers must re-fetch it after any growth.
func (h *Heap) Bytes() []byte { return h.region.Bytes() }

// Size returns the current heap size in bytes.
func (h *Heap) Size() int64 { return int64(h.region.Len()) }

// Max returns the reserved maximum size in bytes.
func (h *Heap) Max() int64 { return int64(h.region.Cap()) }

// Close releases the heap's memory. All offsets become invalid.
func (h *Heap) Close() error { return h.region.Close() }
