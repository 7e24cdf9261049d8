// Package mmarena provides a contiguous memory region with a fixed base
// address that can grow up to a reserved maximum. On unix platforms the
// region is an anonymous mapping whose pages are committed in place as the
// region grows; elsewhere it falls back to a fully pre-allocated byte slice.
// Either way the base address never moves for the lifetime of the region,
// which is what lets callers hold plain byte offsets into it.
package mmarena

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted indicates a grow request beyond the reserved maximum.
	ErrExhausted = errors.New("mmarena: reservation exhausted")

	// errShrink indicates a grow request smaller than the committed length.
	// Regions never shrink.
	errShrink = errors.New("mmarena: regions never shrink")
)

// Region is a fixed-base, grow-only span of memory.
type Region struct {
	buf []byte // full reservation; only the first n bytes are committed
	n   int    // committed length
}

// Reserve claims max bytes of address space. No pages are committed yet;
// call Grow before touching the memory.
func Reserve(max int) (*Region, error) {
	if max <= 0 {
		return nil, fmt.Errorf("mmarena: invalid reservation size %d", max)
	}
	buf, err := reserve(max)
	if err != nil {
		return nil, fmt.Errorf("mmarena: reserve %d bytes: %w", max, err)
	}
	return &Region{buf: buf}, nil
}

// Grow commits the region up to newLen bytes. The newly committed bytes are
// zeroed. Growing past the reservation fails with ErrExhausted and leaves
// the region unchanged.
func (r *Region) Grow(newLen int) error {
	switch {
	case newLen < r.n:
		return errShrink
	case newLen == r.n:
		return nil
	case newLen > len(r.buf):
		return ErrExhausted
	}
	if err := commit(r.buf[:newLen]); err != nil {
		return fmt.Errorf("mmarena: commit %d bytes: %w", newLen, err)
	}
	r.n = newLen
	return nil
}

// Bytes returns the committed prefix of the region.
func (r *Region) Bytes() []byte { return r.buf[:r.n] }

// Len returns the committed length in bytes.
func (r *Region) Len() int { return r.n }

// Cap returns the reserved maximum in bytes.
func (r *Region) Cap() int { return len(r.buf) }

// Close releases the reservation. The region must not be used afterwards.
func (r *Region) Close() error {
	if r.buf == nil {
		return nil
	}
	err := release(r.buf)
	r.buf = nil
	r.n = 0
	return err
}
