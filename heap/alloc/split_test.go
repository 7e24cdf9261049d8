package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memlab/heapkit/internal/format"
)

func Test_SplitLargeBlock(t *testing.T) {
	a := newTestAllocator(t, nil)

	// The 100-byte request carves 128 bytes off the 4096-byte seed block.
	ref, _ := mustAlloc(t, a, 100, 0x01)
	data := a.h.Bytes()

	assert.Equal(t, int64(128), blockSize(data, ref), "front block must be exactly the adjusted size")
	assert.Equal(t, 1, a.Stats().SplitCount)

	// The tail is a fully tagged free block on the list.
	tail := ref + 128
	assert.False(t, blockAllocated(data, tail))
	assert.Equal(t, int64(format.DefaultChunk-128), blockSize(data, tail))
	assert.Equal(t, tail, a.head)

	requireInvariants(t, a)
}

func Test_AbsorbSmallLeftover(t *testing.T) {
	a := newTestAllocator(t, nil)

	// Build an isolated 64-byte free block.
	A, _ := mustAlloc(t, a, 48, 0x01) // block size 64
	mustAlloc(t, a, 112, 0x02)        // buffer keeps A off the remainder
	require.NoError(t, a.Free(A))

	splitsBefore := a.Stats().SplitCount

	// A 32-byte request adjusts to 48; the 16-byte leftover is below the
	// minimum block size and must be absorbed, not split off.
	got, buf := mustAlloc(t, a, 32, 0x03)
	data := a.h.Bytes()

	require.Equal(t, A, got)
	assert.Equal(t, int64(64), blockSize(data, got), "leftover must be donated to the allocation")
	assert.Equal(t, int64(64-format.Overhead), int64(len(buf)), "slack is part of the payload")
	assert.Equal(t, splitsBefore, a.Stats().SplitCount, "no split expected")

	requireInvariants(t, a)
}

func Test_ExactFitNoSplit(t *testing.T) {
	a := newTestAllocator(t, nil)

	A, _ := mustAlloc(t, a, 112, 0x01) // block size 128
	mustAlloc(t, a, 112, 0x02)
	require.NoError(t, a.Free(A))

	splitsBefore := a.Stats().SplitCount
	got, _ := mustAlloc(t, a, 112, 0x03)
	data := a.h.Bytes()

	require.Equal(t, A, got)
	assert.Equal(t, int64(128), blockSize(data, got))
	assert.Equal(t, splitsBefore, a.Stats().SplitCount)

	requireInvariants(t, a)
}

func Test_SplitTailIsReusable(t *testing.T) {
	a := newTestAllocator(t, nil)

	A, _ := mustAlloc(t, a, 240, 0x01) // block size 256
	mustAlloc(t, a, 112, 0x02)
	require.NoError(t, a.Free(A))

	// Take 128 of A's 256 bytes; the 128-byte tail must satisfy the next
	// request on its own.
	front, _ := mustAlloc(t, a, 112, 0x03)
	require.Equal(t, A, front)
	tail, _ := mustAlloc(t, a, 112, 0x04)
	assert.Equal(t, A+128, tail)

	requireInvariants(t, a)
}
