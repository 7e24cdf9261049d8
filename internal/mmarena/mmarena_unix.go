//go:build unix

package mmarena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// reserve maps max bytes of anonymous, inaccessible memory. PROT_NONE keeps
// the reservation free until commit upgrades pages to read/write, so a large
// maximum costs address space but no physical memory.
func reserve(max int) ([]byte, error) {
	return unix.Mmap(-1, 0, max, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// commit makes the given prefix of the reservation readable and writable.
// The kernel zero-fills pages on first touch.
func commit(b []byte) error {
	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

func release(b []byte) error {
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
