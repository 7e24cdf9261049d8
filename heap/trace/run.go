package trace

import (
	"fmt"

	"github.com/memlab/heapkit/heap/alloc"
)

// RunOptions configures a replay. A nil *RunOptions selects the defaults
// (pattern filling on, per-op verification off).
type RunOptions struct {
	// Verify runs the allocator's consistency check after every operation.
	// Slow; meant for correctness runs, not benchmarking.
	Verify bool

	// SkipFill disables writing and re-checking per-ID byte patterns in
	// allocated payloads. Filling catches overlapping or corrupted blocks;
	// skip it only when measuring raw allocator throughput.
	SkipFill bool
}

// heapChecker is implemented by allocators that can validate their heap.
type heapChecker interface {
	CheckHeap() error
}

// Run replays t against a. Each allocated payload is filled with a byte
// pattern derived from its trace ID and the pattern is re-checked on free,
// so blocks that overlap or get trampled are detected at the first bad byte.
func Run(a alloc.Allocator, t *Trace, opts *RunOptions) (*Report, error) {
	if opts == nil {
		opts = &RunOptions{}
	}

	type live struct {
		ref  alloc.Ref
		buf  []byte
		size int64
	}
	blocks := make([]*live, t.MaxID+1)

	r := &Report{}
	for _, op := range t.Ops {
		switch op.Kind {
		case OpAlloc:
			if blocks[op.ID] != nil {
				return nil, fmt.Errorf("trace: line %d: id %d is already live", op.Line, op.ID)
			}
			ref, buf, err := a.Alloc(op.Size)
			if err != nil {
				return nil, fmt.Errorf("trace: line %d: alloc %d bytes: %w", op.Line, op.Size, err)
			}
			if ref == alloc.NilRef {
				return nil, fmt.Errorf("trace: line %d: alloc %d bytes returned nil", op.Line, op.Size)
			}
			if int64(len(buf)) < op.Size {
				return nil, fmt.Errorf("trace: line %d: got %d bytes, want at least %d",
					op.Line, len(buf), op.Size)
			}
			if !opts.SkipFill {
				fill(buf[:op.Size], pattern(op.ID))
			}
			blocks[op.ID] = &live{ref: ref, buf: buf, size: op.Size}
			r.Allocs++
			r.LiveBytes += op.Size
			if r.LiveBytes > r.PeakBytes {
				r.PeakBytes = r.LiveBytes
			}

		case OpFree:
			blk := blocks[op.ID]
			if blk == nil {
				return nil, fmt.Errorf("trace: line %d: id %d is not live", op.Line, op.ID)
			}
			if !opts.SkipFill {
				if off, ok := check(blk.buf[:blk.size], pattern(op.ID)); !ok {
					return nil, fmt.Errorf("trace: line %d: payload of id %d corrupted at byte %d",
						op.Line, op.ID, off)
				}
			}
			if err := a.Free(blk.ref); err != nil {
				return nil, fmt.Errorf("trace: line %d: free id %d: %w", op.Line, op.ID, err)
			}
			blocks[op.ID] = nil
			r.Frees++
			r.LiveBytes -= blk.size
		}
		r.Ops++

		if opts.Verify {
			if c, ok := a.(heapChecker); ok {
				if err := c.CheckHeap(); err != nil {
					return nil, fmt.Errorf("trace: line %d: %w", op.Line, err)
				}
			}
		}
	}

	r.Stats = a.Stats()
	return r, nil
}

// pattern returns the fill byte for a trace ID. Zero is avoided so freshly
// zeroed heap memory never masquerades as a filled payload.
func pattern(id int) byte {
	return byte(id%251 + 1)
}

func fill(b []byte, p byte) {
	for i := range b {
		b[i] = p
	}
}

func check(b []byte, p byte) (int, bool) {
	for i := range b {
		if b[i] != p {
			return i, false
		}
	}
	return 0, true
}
