package alloc

import "errors"

// ErrBadRef indicates an out-of-bounds or misaligned block reference.
var ErrBadRef = errors.New("alloc: bad block reference")
