// Package eventtest provides utilities for testing observable collections.
package eventtest

import (
	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// Source is anything that can be subscribed to.
type Source[T any] interface {
	Subscribe(keeper *event.Keeper, l event.Listener[T]) event.Handle
	Unsubscribe(h event.Handle)
}

// Batch is a materialised event.Mod.
type Batch[T any] struct {
	Elements []T
	At       int
}

// Snapshot is a materialised event.Change. Element views are copied into slices
// when the change is delivered, so snapshots stay valid after further mutation.
type Snapshot[T any] struct {
	Cleared    int
	HasCleared bool
	Removed    *Batch[T]
	Added      *Batch[T]

	// Earlier is the number of changes Get discarded in front of this one.
	// Expected snapshots leave it zero, so comparing against one also checks
	// that exactly one change was published.
	Earlier int
}

// Capture records every change published by a source.
type Capture[T any] struct {
	keeper *event.Keeper
	handle event.Handle
	src    Source[T]
	events []Snapshot[T]
}

// New subscribes to src and records changes from then on. The replay delivered
// by Subscribe is discarded.
func New[T any](src Source[T]) *Capture[T] {
	c := &Capture[T]{keeper: event.NewKeeper(), src: src}
	c.handle = src.Subscribe(c.keeper, c.record)
	c.events = nil
	return c
}

// Get returns the most recent change and forgets all recorded changes, counting
// the discarded ones in Earlier. It returns nil when nothing was recorded.
func (c *Capture[T]) Get() *Snapshot[T] {
	if len(c.events) == 0 {
		return nil
	}
	last := c.events[len(c.events)-1]
	last.Earlier = len(c.events) - 1
	c.events = nil
	return &last
}

// Take returns all recorded changes in order and forgets them.
func (c *Capture[T]) Take() []Snapshot[T] {
	out := c.events
	c.events = nil
	return out
}

// Len returns the number of recorded changes.
func (c *Capture[T]) Len() int {
	return len(c.events)
}

// Close unsubscribes from the source.
func (c *Capture[T]) Close() {
	c.src.Unsubscribe(c.handle)
}

func (c *Capture[T]) record(ch event.Change[T]) {
	c.events = append(c.events, Materialise(ch))
}

// Materialise copies the element views of ch into a Snapshot.
func Materialise[T any](ch event.Change[T]) Snapshot[T] {
	s := Snapshot[T]{Cleared: ch.Cleared, HasCleared: ch.HasCleared}
	if ch.Removed != nil {
		s.Removed = &Batch[T]{Elements: seq.Collect[T](ch.Removed.Elements), At: ch.Removed.At}
	}
	if ch.Added != nil {
		s.Added = &Batch[T]{Elements: seq.Collect[T](ch.Added.Elements), At: ch.Added.At}
	}
	return s
}

// Cleared is the expected snapshot of a clear of n elements.
func Cleared[T any](n int) *Snapshot[T] {
	return &Snapshot[T]{Cleared: n, HasCleared: true}
}

// Added is the expected snapshot of elems added at rank at.
func Added[T any](at int, elems ...T) *Snapshot[T] {
	return &Snapshot[T]{Added: &Batch[T]{Elements: elems, At: at}}
}

// Removed is the expected snapshot of elems removed from rank at.
func Removed[T any](at int, elems ...T) *Snapshot[T] {
	return &Snapshot[T]{Removed: &Batch[T]{Elements: elems, At: at}}
}

// Replaced is the expected snapshot of old replaced by new at rank at.
func Replaced[T any](at int, old, new T) *Snapshot[T] {
	return &Snapshot[T]{
		Removed: &Batch[T]{Elements: []T{old}, At: at},
		Added:   &Batch[T]{Elements: []T{new}, At: at},
	}
}

// ClearedAdded is the expected snapshot of a clear of n elements followed by
// elems added at 0.
func ClearedAdded[T any](n int, elems ...T) *Snapshot[T] {
	return &Snapshot[T]{Cleared: n, HasCleared: true, Added: &Batch[T]{Elements: elems, At: 0}}
}
