package alloc

import (
	"fmt"
	"os"
)

// Debug flag - set to true to enable link-field assertions and verbose
// logging (compile-time toggle).
const debugAlloc = false

// Runtime debug flag for allocation logging - controlled by the
// HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
	}
}

// assertFree panics when a block's link fields are about to be touched while
// the block is allocated. Compiled out unless debugAlloc is set.
func assertFree(data []byte, bp int64, op string) {
	if debugAlloc && blockAllocated(data, bp) {
		panic(fmt.Sprintf("alloc: %s on allocated block at %d", op, bp))
	}
}
