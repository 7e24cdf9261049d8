package alloc

import "github.com/memlab/heapkit/internal/format"

// Offset arithmetic over the raw heap image. Every function takes bp, the
// payload offset of a block, mirroring the layout in internal/format:
// the header sits one word before bp, the footer one double word before the
// end of the block.

func hdr(bp int64) int64 {
	return bp - format.WordSize
}

func ftr(data []byte, bp int64) int64 {
	return bp + blockSize(data, bp) - format.DWordSize
}

func blockSize(data []byte, bp int64) int64 {
	return format.SizeOf(format.ReadU64(data, hdr(bp)))
}

func blockAllocated(data []byte, bp int64) bool {
	return format.IsAllocated(format.ReadU64(data, hdr(bp)))
}

// nextBlock returns the payload offset of the block immediately after bp.
func nextBlock(data []byte, bp int64) int64 {
	return bp + blockSize(data, bp)
}

// prevBlock returns the payload offset of the block immediately before bp,
// found through the preceding block's footer. This is the boundary-tag
// trick: footers exist on allocated blocks too, precisely so this read is
// always valid.
func prevBlock(data []byte, bp int64) int64 {
	return bp - format.SizeOf(format.ReadU64(data, bp-format.DWordSize))
}

// setTags writes matching header and footer words for the block at bp.
func setTags(data []byte, bp, size int64, allocated bool) {
	w := format.Pack(size, allocated)
	format.PutU64(data, hdr(bp), w)
	format.PutU64(data, bp+size-format.DWordSize, w)
}

// Free-list links occupy the first two payload words of a free block:
// previous at bp, next at bp+8. They are meaningless while the block is
// allocated and must never be read then.

func prevFree(data []byte, bp int64) int64 {
	return int64(format.ReadU64(data, bp))
}

func nextFree(data []byte, bp int64) int64 {
	return int64(format.ReadU64(data, bp+format.WordSize))
}

func setPrevFree(data []byte, bp, v int64) {
	format.PutU64(data, bp, uint64(v))
}

func setNextFree(data []byte, bp, v int64) {
	format.PutU64(data, bp+format.WordSize, uint64(v))
}
