package format

// Tag word layout:
//
//	63                  4  3  2  1  0
//	------------------------------------
//	| s  s  s  ... s  s  0  0  0  a/f |
//	------------------------------------
//
// where the s bits are the block size (always a multiple of Alignment) and
// bit 0 is set while the block is allocated. Bits 1-3 are reserved and zero.

// Pack encodes a block size and its allocated flag into a tag word.
func Pack(size int64, allocated bool) uint64 {
	w := uint64(size)
	if allocated {
		w |= AllocatedFlag
	}
	return w
}

// SizeOf extracts the block size from a tag word.
func SizeOf(word uint64) int64 {
	return int64(word &^ uint64(FlagsMask))
}

// IsAllocated reports whether a tag word marks its block allocated.
func IsAllocated(word uint64) bool {
	return word&AllocatedFlag != 0
}
