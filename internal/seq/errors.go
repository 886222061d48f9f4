package seq

import "errors"

// ErrNotOnly is returned by Only when a sequence does not hold exactly one element.
var ErrNotOnly = errors.New("sequence does not contain exactly one element")
