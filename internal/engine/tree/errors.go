package tree

import "errors"

// Errors returned by Map operations.
var (
	// ErrOutOfRange indicates a rank outside [0, Len).
	ErrOutOfRange = errors.New("rank out of range")

	// ErrCorrupt indicates a structural invariant does not hold.
	ErrCorrupt = errors.New("tree invariant violated")
)
