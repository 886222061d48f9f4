package event

import (
	"fmt"
	"strings"

	"github.com/dshills/orderly/internal/seq"
)

// Unpositioned is the Mod position used by collections without a meaningful order.
const Unpositioned = -1

// Mod is one batch of a change: the affected elements and the rank of the first one.
type Mod[T any] struct {
	// Elements are the affected elements in collection order.
	Elements seq.Sized[T]

	// At is the 0-based rank of the first element, or Unpositioned.
	At int
}

// Change describes one mutation of a collection.
// Changes are values; the zero Change describes no mutation and is never published.
type Change[T any] struct {
	// Cleared is the number of elements dropped by a full clear.
	// Only meaningful when HasCleared is set.
	Cleared int

	// HasCleared reports that the collection was cleared before any addition.
	HasCleared bool

	// Removed is the batch of removed elements, if any.
	Removed *Mod[T]

	// Added is the batch of added elements, if any.
	Added *Mod[T]
}

// Listener receives changes from a collection.
type Listener[T any] func(Change[T])

// Cleared returns a change describing a clear of n elements.
func Cleared[T any](n int) Change[T] {
	return Change[T]{Cleared: n, HasCleared: true}
}

// Add returns a change describing the addition of elems at rank at.
func Add[T any](elems seq.Sized[T], at int) Change[T] {
	return Change[T]{Added: &Mod[T]{Elements: elems, At: at}}
}

// Remove returns a change describing the removal of elems from rank at.
func Remove[T any](elems seq.Sized[T], at int) Change[T] {
	return Change[T]{Removed: &Mod[T]{Elements: elems, At: at}}
}

// Replace returns a change describing old being replaced by new at rank at.
func Replace[T any](old, new seq.Sized[T], at int) Change[T] {
	return Change[T]{
		Removed: &Mod[T]{Elements: old, At: at},
		Added:   &Mod[T]{Elements: new, At: at},
	}
}

// ClearAndAdd returns a change describing a clear of n elements followed by the
// addition of elems at rank 0.
func ClearAndAdd[T any](n int, elems seq.Sized[T]) Change[T] {
	return Change[T]{Cleared: n, HasCleared: true, Added: &Mod[T]{Elements: elems, At: 0}}
}

// IsZero reports whether the change describes no mutation.
func (c Change[T]) IsZero() bool {
	return !c.HasCleared && c.Removed == nil && c.Added == nil
}

// String renders the change with its element counts, e.g.
// "cleared=15 added=15@0".
func (c Change[T]) String() string {
	var parts []string
	if c.HasCleared {
		parts = append(parts, fmt.Sprintf("cleared=%d", c.Cleared))
	}
	if c.Removed != nil {
		parts = append(parts, fmt.Sprintf("removed=%d@%d", c.Removed.Elements.Len(), c.Removed.At))
	}
	if c.Added != nil {
		parts = append(parts, fmt.Sprintf("added=%d@%d", c.Added.Elements.Len(), c.Added.At))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// MapChange converts a change over T into a change over R by applying f lazily to
// every element of each batch. Positions and the clear count are unchanged.
func MapChange[T, R any](c Change[T], f func(T) R) Change[R] {
	out := Change[R]{Cleared: c.Cleared, HasCleared: c.HasCleared}
	if c.Removed != nil {
		out.Removed = &Mod[R]{Elements: seq.Map[T, R](c.Removed.Elements, f), At: c.Removed.At}
	}
	if c.Added != nil {
		out.Added = &Mod[R]{Elements: seq.Map[T, R](c.Added.Elements, f), At: c.Added.At}
	}
	return out
}
