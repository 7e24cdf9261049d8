package alloc

// Intrusive free-list management. The list is doubly linked through the
// first two payload words of each free block, rooted at the allocator's
// head field, and terminated at both ends by an explicit NilRef word.
// Insertion is always at the head (LIFO), so the most recently freed blocks
// are examined first by findFit.

// insertHead links the free block at bp in at the head of the list. O(1).
func (a *ListAllocator) insertHead(bp int64) {
	data := a.h.Bytes()
	assertFree(data, bp, "insertHead")
	setPrevFree(data, bp, NilRef)
	setNextFree(data, bp, a.head)
	if a.head != NilRef {
		setPrevFree(data, a.head, bp)
	}
	a.head = bp
}

// removeNode unlinks the free block at bp from the list. O(1).
func (a *ListAllocator) removeNode(bp int64) {
	data := a.h.Bytes()
	assertFree(data, bp, "removeNode")
	prev, next := prevFree(data, bp), nextFree(data, bp)
	if prev != NilRef {
		setNextFree(data, prev, next)
	} else {
		a.head = next
	}
	if next != NilRef {
		setPrevFree(data, next, prev)
	}
}

// findFit returns the payload offset of the first free block of at least
// asize bytes, walking the list from the head, or NilRef if none fits. The
// walk terminates only on the structural NilRef terminator, never on a
// size- or address-derived condition.
func (a *ListAllocator) findFit(asize int64) int64 {
	data := a.h.Bytes()
	for bp := a.head; bp != NilRef; bp = nextFree(data, bp) {
		if blockSize(data, bp) >= asize {
			return bp
		}
	}
	return NilRef
}
