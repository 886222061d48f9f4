package hash

import (
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// SetConfig contains the construction parameters of a Set.
type SetConfig struct {
	// Logger receives debug records. Defaults to slog.Default().
	Logger *slog.Logger

	// Events configures the set's event.Observable.
	Events []event.Option
}

// Set is an observable unordered set.
type Set[T comparable] struct {
	*event.Observable[T]

	items  map[T]struct{}
	logger *slog.Logger
}

// NewSet creates an empty set.
func NewSet[T comparable](conf SetConfig) *Set[T] {
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	s := &Set[T]{
		items:  make(map[T]struct{}),
		logger: conf.Logger.With("system", "hash"),
	}
	s.Observable = event.NewObservable[T](s, conf.Events...)
	return s
}

// SetOf creates a set holding items.
func SetOf[T comparable](items ...T) *Set[T] {
	s := NewSet[T](SetConfig{})
	s.AddAll(slices.Values(items))
	return s
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no elements.
func (s *Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// All returns an iterator over the elements in unspecified order.
func (s *Set[T]) All() iter.Seq[T] {
	return maps.Keys(s.items)
}

// Has reports whether v is an element.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Add inserts v and reports whether it was new.
func (s *Set[T]) Add(v T) bool {
	if s.Has(v) {
		return false
	}
	s.items[v] = struct{}{}
	s.Publish(event.Add[T](seq.Of(v), event.Unpositioned))
	return true
}

// AddAll inserts every value and publishes at most one change: a live view of
// the whole set when it was empty, otherwise the new elements. It returns the
// number of elements added.
func (s *Set[T]) AddAll(values iter.Seq[T]) int {
	incoming := slices.Collect(values)
	if s.IsEmpty() {
		for _, v := range incoming {
			s.items[v] = struct{}{}
		}
		if !s.IsEmpty() {
			s.Publish(event.Add[T](s.view(), event.Unpositioned))
		}
		return s.Len()
	}

	var added []T
	for _, v := range incoming {
		if s.Has(v) {
			continue
		}
		s.items[v] = struct{}{}
		added = append(added, v)
	}
	s.Publish(change[T](0, false, nil, added))
	return len(added)
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	if !s.Has(v) {
		return false
	}
	delete(s.items, v)
	s.Publish(event.Remove[T](seq.Of(v), event.Unpositioned))
	return true
}

// Replace swaps the whole content for values.
func (s *Set[T]) Replace(values iter.Seq[T]) {
	incoming := slices.Collect(values)
	before := s.Len()

	clear(s.items)
	for _, v := range incoming {
		s.items[v] = struct{}{}
	}
	s.logger.Debug("replaced", "before", before, "after", s.Len())
	s.Publish(replacement(before, s.view()))
}

// Clear removes every element and returns how many there were.
func (s *Set[T]) Clear() int {
	n := s.Len()
	clear(s.items)
	if n > 0 {
		s.Publish(event.Cleared[T](n))
	}
	return n
}

// Drop removes every element matching pred, publishing one change per removed
// element. It returns the number of elements removed.
func (s *Set[T]) Drop(pred func(T) bool) int {
	dropped := 0
	for v := range s.items {
		if !pred(v) {
			continue
		}
		delete(s.items, v)
		s.Publish(event.Remove[T](seq.Of(v), event.Unpositioned))
		dropped++
	}
	return dropped
}

func (s *Set[T]) view() seq.View[T] {
	return seq.Counted(s.All(), s.Len)
}
