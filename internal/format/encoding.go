package format

import "encoding/binary"

// Binary accessors for tag and link words. The heap image uses little-endian
// 64-bit words throughout; offsets are int64 because block arithmetic is done
// in int64 everywhere above this package.

// PutU64 writes a 64-bit word at the given byte offset.
func PutU64(b []byte, off int64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a 64-bit word at the given byte offset.
func ReadU64(b []byte, off int64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
