// Package format defines the boundary-tag heap layout: tag word encoding,
// alignment rules, and the fixed offsets of the heap's sentinel regions.
// The goal is to keep the raw layout in one place so the allocator, the
// consistency checker, and any tooling that inspects a heap image agree on
// every byte.
package format

const (
	// WordSize is the size of a single tag (header/footer) word in bytes.
	WordSize = 8

	// DWordSize is a double word, the payload alignment unit.
	DWordSize = 16

	// Alignment is the granularity every block size is rounded to. Keeping
	// sizes multiples of 16 leaves the low four bits of every tag word free
	// for flags.
	Alignment = 16

	// AlignmentMask selects the reserved low bits of a tag word
	// (Alignment - 1).
	AlignmentMask = Alignment - 1

	// Overhead is the header plus footer cost carried by every block,
	// allocated or free.
	Overhead = 2 * WordSize

	// MinBlockSize is the smallest legal block: header, footer, and one
	// 16-byte payload area, which is exactly enough to hold the two
	// intrusive free-list links while the block is free.
	MinBlockSize = 32

	// DefaultChunk is the default heap extension size in bytes. The heap is
	// seeded with one chunk at init and grown by at least one chunk at a
	// time afterwards.
	DefaultChunk = 4096

	// AllocatedFlag is bit 0 of a tag word, set while the block is owned by
	// a caller. Bits 1-3 are reserved and must stay zero.
	AllocatedFlag = 0x1

	// FlagsMask covers all reserved low bits of a tag word.
	FlagsMask = 0xF

	// PrologueHeader is the offset of the prologue's header word. The word
	// before it is permanent alignment padding.
	PrologueHeader = WordSize

	// FirstBlock is the payload offset of the first real block: padding
	// word, prologue header, prologue footer, then the block's own header.
	FirstBlock = 4 * WordSize
)
