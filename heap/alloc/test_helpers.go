package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memlab/heapkit/heap"
)

// newTestAllocator builds a ListAllocator over a fresh 1 MiB-max heap.
// The heap is released when the test ends.
func newTestAllocator(t testing.TB, opts *Options) *ListAllocator {
	t.Helper()
	a, err := New(newTestHeap(t, 1<<20), opts)
	require.NoError(t, err)
	return a
}

// newTestHeap reserves a heap with the given maximum size.
func newTestHeap(t testing.TB, max int64) *heap.Heap {
	t.Helper()
	h, err := heap.New(max)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

// requireInvariants fails the test when any heap invariant is violated.
func requireInvariants(t testing.TB, a *ListAllocator) {
	t.Helper()
	require.NoError(t, a.CheckHeap())
}

// mustAlloc allocates or fails the test. The returned payload is filled with
// the given byte so overlap bugs surface as pattern corruption.
func mustAlloc(t testing.TB, a Allocator, size int64, fill byte) (Ref, []byte) {
	t.Helper()
	ref, buf, err := a.Alloc(size)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, int64(len(buf)), size)
	for i := range buf[:size] {
		buf[i] = fill
	}
	return ref, buf
}
