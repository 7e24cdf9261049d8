package format

// Alignment utilities for the boundary-tag layout. Block sizes must be
// multiples of Alignment and heap extensions must cover an even number of
// words so the granularity is preserved across growth.

// Align returns n rounded up to the next multiple of the 16-byte granularity.
//
// Example:
//
//	Align(1)  = 16
//	Align(16) = 16
//	Align(17) = 32
func Align(n int64) int64 {
	return (n + AlignmentMask) &^ AlignmentMask
}

// EvenWords rounds a word count up to an even number of words, so a heap
// extension of EvenWords(n)*WordSize bytes keeps the 16-byte granularity.
func EvenWords(words int64) int64 {
	if words%2 == 1 {
		return words + 1
	}
	return words
}

// AdjustRequest converts a caller's requested payload size into the block
// size that will carry it: header and footer overhead are added, the result
// is rounded up to the granularity, and the minimum block size is enforced.
func AdjustRequest(size int64) int64 {
	if size <= DWordSize {
		return MinBlockSize
	}
	return Alignment * ((size + Overhead + (Alignment - 1)) / Alignment)
}
