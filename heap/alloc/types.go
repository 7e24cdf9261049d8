package alloc

import "github.com/memlab/heapkit/internal/format"

// Ref identifies an allocated block by the byte offset of its payload within
// the heap. Offsets are stable: the heap base never moves.
type Ref = int64

// NilRef is the null block reference. Offset zero lies inside the heap's
// permanent padding word and is never a payload.
const NilRef Ref = 0

// Allocator is the allocation contract shared by the strategies in this
// package, so callers and harnesses can swap one for another.
type Allocator interface {
	// Alloc returns a reference to, and a slice over, a payload of at least
	// size bytes. A request of size <= 0 is a defined no-op returning
	// (NilRef, nil, nil). A non-nil error means the heap could not be grown.
	Alloc(size int64) (Ref, []byte, error)

	// Free releases a block previously returned by Alloc. Only cheap bounds
	// checks are performed; foreign or repeated references are undefined
	// behavior. Append-only strategies may treat Free as a no-op.
	Free(ref Ref) error

	// Stats returns a snapshot of the allocator's counters.
	Stats() Stats
}

// Options configures an allocator. A nil *Options selects the defaults.
type Options struct {
	// ChunkSize is the minimum heap extension in bytes. Values below the
	// minimum block size select DefaultChunk. The chunk is rounded up to the
	// alignment granularity.
	ChunkSize int64

	// Poison fills released payloads with PoisonByte, making reads through
	// dangling references easy to spot in tests.
	Poison bool
}

// PoisonByte is the fill pattern written over released payloads when the
// Poison option is set.
const PoisonByte = 0xDD

func (o *Options) chunk() int64 {
	if o == nil || o.ChunkSize < format.MinBlockSize {
		return format.DefaultChunk
	}
	return format.Align(o.ChunkSize)
}

func (o *Options) poison() bool {
	return o != nil && o.Poison
}
