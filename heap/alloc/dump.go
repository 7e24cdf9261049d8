package alloc

import (
	"fmt"
	"io"

	"github.com/memlab/heapkit/internal/format"
)

// Dump writes every block in address order, then the free list in list
// order, to w. Debugging aid; the output format is not stable.
func (a *ListAllocator) Dump(w io.Writer) {
	data := a.h.Bytes()

	fmt.Fprintf(w, "heap: %d bytes\n", len(data))
	for bp := int64(format.FirstBlock) - format.DWordSize; ; bp = nextBlock(data, bp) {
		hw := format.ReadU64(data, hdr(bp))
		size := format.SizeOf(hw)
		if size == 0 {
			fmt.Fprintf(w, "  %8d: epilogue\n", bp)
			break
		}
		fw := format.ReadU64(data, ftr(data, bp))
		fmt.Fprintf(w, "  %8d: header [%d:%c] footer [%d:%c]\n", bp,
			size, allocChar(format.IsAllocated(hw)),
			format.SizeOf(fw), allocChar(format.IsAllocated(fw)))
	}

	fmt.Fprintf(w, "free list:\n")
	for bp := a.head; bp != NilRef; bp = nextFree(data, bp) {
		fmt.Fprintf(w, "  %8d: %d bytes (prev %d, next %d)\n",
			bp, blockSize(data, bp), prevFree(data, bp), nextFree(data, bp))
	}
}

func allocChar(allocated bool) byte {
	if allocated {
		return 'a'
	}
	return 'f'
}
