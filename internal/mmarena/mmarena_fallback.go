//go:build !unix

package mmarena

// Without mmap the reservation is allocated up front. The slice is never
// reallocated, so the base address stays fixed just like the mapped variant.
func reserve(max int) ([]byte, error) {
	return make([]byte, max), nil
}

func commit(b []byte) error { return nil }

func release(b []byte) error { return nil }
