package alloc

// Stats holds allocator counters for tests, benchmarks, and trace reports.
type Stats struct {
	AllocCalls    int // total Alloc calls, including size <= 0 no-ops
	AllocFastPath int // allocations satisfied from the free list
	AllocSlowPath int // allocations that required growing the heap
	FreeCalls     int // total Free calls

	ExtendCalls int   // heap extensions
	ExtendBytes int64 // total bytes added by extensions

	SplitCount       int // placements that split off a free tail
	CoalesceForward  int // merges with the next block only
	CoalesceBackward int // merges with the previous block only
	CoalesceBoth     int // merges with both neighbors

	BytesAllocated int64 // total block bytes handed out (incl. overhead)
	BytesFreed     int64 // total block bytes released
}
