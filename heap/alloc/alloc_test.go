package alloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memlab/heapkit/internal/format"
)

func Test_AllocAlignment(t *testing.T) {
	a := newTestAllocator(t, nil)

	for _, size := range []int64{1, 7, 16, 17, 100, 1000, 4000} {
		ref, buf, err := a.Alloc(size)
		require.NoError(t, err, "size %d", size)
		assert.Zero(t, ref%format.Alignment, "size %d: payload at %d not 16-byte aligned", size, ref)
		assert.GreaterOrEqual(t, int64(len(buf)), size, "size %d: payload too small", size)
	}
	requireInvariants(t, a)
}

func Test_AllocNonPositive(t *testing.T) {
	a := newTestAllocator(t, nil)
	before := a.h.Size()

	for _, size := range []int64{0, -1, -4096} {
		ref, buf, err := a.Alloc(size)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, NilRef, ref, "size %d", size)
		assert.Nil(t, buf, "size %d", size)
	}

	assert.Equal(t, before, a.h.Size(), "no-op requests must not mutate the heap")
	requireInvariants(t, a)
}

func Test_AllocNoOverlap(t *testing.T) {
	a := newTestAllocator(t, nil)

	// Fill several payloads with distinct patterns, then check every byte:
	// overlapping blocks would trample one another's pattern.
	sizes := []int64{100, 16, 333, 48, 1000}
	bufs := make([][]byte, len(sizes))
	for i, size := range sizes {
		_, bufs[i] = mustAlloc(t, a, size, byte(i+1))
	}
	for i, buf := range bufs {
		for off, b := range buf[:sizes[i]] {
			require.Equal(t, byte(i+1), b, "block %d corrupted at byte %d", i, off)
		}
	}
	requireInvariants(t, a)
}

// Scenario: two back-to-back allocations get distinct, disjoint, aligned
// payloads.
func Test_TwoAllocations(t *testing.T) {
	a := newTestAllocator(t, nil)

	p1, buf1, err := a.Alloc(100)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, p1)
	assert.Zero(t, p1%format.Alignment)

	p2, buf2, err := a.Alloc(200)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, p2)
	assert.NotEqual(t, p1, p2)

	// Payload ranges must be disjoint.
	end1 := p1 + int64(len(buf1))
	end2 := p2 + int64(len(buf2))
	assert.True(t, end1 <= p2 || end2 <= p1,
		"payloads overlap: [%d,%d) and [%d,%d)", p1, end1, p2, end2)
	requireInvariants(t, a)
}

func Test_RoundTripReuse(t *testing.T) {
	a := newTestAllocator(t, nil)

	ref, _ := mustAlloc(t, a, 100, 0x11)
	require.NoError(t, a.Free(ref))
	requireInvariants(t, a)

	// LIFO insertion plus first-fit makes the just-freed space the first
	// candidate again.
	again, _ := mustAlloc(t, a, 100, 0x22)
	assert.Equal(t, ref, again, "just-freed block not reused")
	requireInvariants(t, a)
}

func Test_InvariantsAfterEveryOperation(t *testing.T) {
	a := newTestAllocator(t, nil)

	refs := make([]Ref, 0, 16)
	for i, size := range []int64{48, 200, 16, 1024, 90, 3000, 17, 512} {
		ref, _ := mustAlloc(t, a, size, byte(i+1))
		refs = append(refs, ref)
		requireInvariants(t, a)
	}
	// Release in an interleaved order to exercise all coalesce shapes.
	for _, i := range []int{1, 0, 3, 2, 7, 5, 6, 4} {
		require.NoError(t, a.Free(refs[i]))
		requireInvariants(t, a)
	}
}

func Test_FreeBadRef(t *testing.T) {
	a := newTestAllocator(t, nil)

	assert.ErrorIs(t, a.Free(3), ErrBadRef, "misaligned ref")
	assert.ErrorIs(t, a.Free(16), ErrBadRef, "ref below the first block")
	assert.ErrorIs(t, a.Free(1<<40), ErrBadRef, "ref past the heap")
	requireInvariants(t, a)
}

func Test_PoisonOnFree(t *testing.T) {
	a := newTestAllocator(t, &Options{Poison: true})

	ref, buf := mustAlloc(t, a, 100, 0x11)
	require.NoError(t, a.Free(ref))

	// The first two payload words become free-list links; everything after
	// them must carry the poison pattern.
	for i := format.DWordSize; i < 100; i++ {
		require.Equal(t, byte(PoisonByte), buf[i], "byte %d not poisoned", i)
	}
	requireInvariants(t, a)
}

func Test_DumpSmoke(t *testing.T) {
	a := newTestAllocator(t, nil)
	ref, _ := mustAlloc(t, a, 100, 0x11)

	var sb strings.Builder
	a.Dump(&sb)
	out := sb.String()
	assert.Contains(t, out, "epilogue")
	assert.Contains(t, out, "free list:")

	require.NoError(t, a.Free(ref))
}

func Test_StatsCounters(t *testing.T) {
	a := newTestAllocator(t, nil)

	ref, _ := mustAlloc(t, a, 100, 0x11)
	require.NoError(t, a.Free(ref))
	again, _ := mustAlloc(t, a, 100, 0x22)
	require.NoError(t, a.Free(again))
	a.Alloc(0)

	s := a.Stats()
	assert.Equal(t, 3, s.AllocCalls, "every call counts, the no-op included")
	assert.Equal(t, 2, s.AllocFastPath)
	assert.Equal(t, 2, s.FreeCalls)
	assert.Equal(t, 1, s.ExtendCalls, "only the init chunk")
	assert.Equal(t, int64(format.DefaultChunk), s.ExtendBytes)
	assert.Positive(t, s.BytesAllocated)
	assert.Equal(t, s.BytesAllocated, s.BytesFreed)
}
