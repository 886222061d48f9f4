package hash

import (
	"iter"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/dshills/orderly/internal/engine/tree"
	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// Pair is one map entry. It is the entry type of the ordered map too, so
// listeners can follow either kind of map.
type Pair[K, V any] = tree.Pair[K, V]

// Config contains the construction parameters of a Map.
type Config[V any] struct {
	// ValueEq decides whether a Put changes a value. Defaults to reflect.DeepEqual.
	ValueEq func(a, b V) bool

	// Logger receives debug records. Defaults to slog.Default().
	Logger *slog.Logger

	// Events configures the map's event.Observable.
	Events []event.Option
}

// Map is an observable unordered map.
type Map[K comparable, V any] struct {
	*event.Observable[Pair[K, V]]

	items   map[K]V
	valueEq func(a, b V) bool
	logger  *slog.Logger
}

// NewMap creates an empty map.
func NewMap[K comparable, V any](conf Config[V]) *Map[K, V] {
	if conf.ValueEq == nil {
		conf.ValueEq = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}

	m := &Map[K, V]{
		items:   make(map[K]V),
		valueEq: conf.ValueEq,
		logger:  conf.Logger.With("system", "hash"),
	}
	m.Observable = event.NewObservable[Pair[K, V]](m, conf.Events...)
	return m
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.items)
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return len(m.items) == 0
}

// All returns an iterator over the entries in unspecified order.
func (m *Map[K, V]) All() iter.Seq[Pair[K, V]] {
	return func(yield func(Pair[K, V]) bool) {
		for k, v := range m.items {
			if !yield(Pair[K, V]{Key: k, Value: v}) {
				return
			}
		}
	}
}

// Keys returns a live view of the keys.
func (m *Map[K, V]) Keys() seq.View[K] {
	return seq.Counted(maps.Keys(m.items), m.Len)
}

// Values returns a live view of the values.
func (m *Map[K, V]) Values() seq.View[V] {
	return seq.Counted(maps.Values(m.items), m.Len)
}

// Pairs returns a snapshot of the entries. The result is never nil.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	return slices.AppendSeq(make([]Pair[K, V], 0, len(m.items)), m.All())
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.items[k]
	return v, ok
}

// HasKey reports whether k is present.
func (m *Map[K, V]) HasKey(k K) bool {
	_, ok := m.items[k]
	return ok
}

// Contains reports whether p's key is present with an equal value.
func (m *Map[K, V]) Contains(p Pair[K, V]) bool {
	v, ok := m.items[p.Key]
	return ok && m.valueEq(v, p.Value)
}

// put stores v under k and reports the previous value and whether the map
// changed.
func (m *Map[K, V]) put(k K, v V) (old V, replaced, changed bool) {
	old, replaced = m.items[k]
	m.items[k] = v
	return old, replaced, !replaced || !m.valueEq(old, v)
}

// Put stores v under k and publishes the change. Overwriting with an equal
// value publishes nothing but still reports the old value.
func (m *Map[K, V]) Put(k K, v V) (old V, replaced bool) {
	old, replaced, changed := m.put(k, v)
	if !changed {
		return old, replaced
	}
	added := Pair[K, V]{Key: k, Value: v}
	if !replaced {
		m.Publish(event.Add[Pair[K, V]](seq.Of(added), event.Unpositioned))
		return old, false
	}
	was := Pair[K, V]{Key: k, Value: old}
	m.Publish(event.Replace[Pair[K, V]](seq.Of(was), seq.Of(added), event.Unpositioned))
	return old, true
}

// PutAll stores every pair and publishes at most one change: a live view of
// the whole map when it was empty, otherwise the overwritten and the new
// entries. The pairs are collected first, so they may come from the map
// itself. It returns the number of pairs consumed.
func (m *Map[K, V]) PutAll(pairs iter.Seq[Pair[K, V]]) int {
	incoming := slices.Collect(pairs)
	if m.IsEmpty() {
		for _, p := range incoming {
			m.items[p.Key] = p.Value
		}
		if !m.IsEmpty() {
			m.Publish(event.Add[Pair[K, V]](m.view(), event.Unpositioned))
		}
		return len(incoming)
	}

	var removed, added []Pair[K, V]
	for _, p := range incoming {
		old, replaced, changed := m.put(p.Key, p.Value)
		if !changed {
			continue
		}
		if replaced {
			removed = append(removed, Pair[K, V]{Key: p.Key, Value: old})
		}
		added = append(added, p)
	}
	m.Publish(change(0, false, removed, added))
	return len(incoming)
}

// Replace swaps the whole content for pairs.
func (m *Map[K, V]) Replace(pairs iter.Seq[Pair[K, V]]) {
	incoming := slices.Collect(pairs)
	before := m.Len()

	clear(m.items)
	for _, p := range incoming {
		m.items[p.Key] = p.Value
	}
	m.logger.Debug("replaced", "before", before, "after", m.Len())
	m.Publish(replacement(before, m.view()))
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	n := m.Len()
	clear(m.items)
	if n > 0 {
		m.Publish(event.Cleared[Pair[K, V]](n))
	}
}

// RemoveKey removes the entry with key k and returns its value.
func (m *Map[K, V]) RemoveKey(k K) (V, bool) {
	v, ok := m.items[k]
	if !ok {
		return v, false
	}
	delete(m.items, k)
	m.Publish(event.Remove[Pair[K, V]](seq.Of(Pair[K, V]{Key: k, Value: v}), event.Unpositioned))
	return v, true
}

// Drop removes every entry matching pred, publishing one change per removed
// entry. It returns the number of entries removed.
func (m *Map[K, V]) Drop(pred func(Pair[K, V]) bool) int {
	dropped := 0
	for k, v := range m.items {
		p := Pair[K, V]{Key: k, Value: v}
		if !pred(p) {
			continue
		}
		delete(m.items, k)
		m.Publish(event.Remove[Pair[K, V]](seq.Of(p), event.Unpositioned))
		dropped++
	}
	return dropped
}

func (m *Map[K, V]) view() seq.View[Pair[K, V]] {
	return seq.Counted(m.All(), m.Len)
}

// change builds an unpositioned change from materialised batches. Empty
// batches are left out.
func change[T any](cleared int, hasCleared bool, removed, added []T) event.Change[T] {
	c := event.Change[T]{Cleared: cleared, HasCleared: hasCleared}
	if len(removed) > 0 {
		c.Removed = &event.Mod[T]{Elements: seq.Of(removed...), At: event.Unpositioned}
	}
	if len(added) > 0 {
		c.Added = &event.Mod[T]{Elements: seq.Of(added...), At: event.Unpositioned}
	}
	return c
}

// replacement is the change of a wholesale replacement of before elements by
// the content of view.
func replacement[T any](before int, view seq.View[T]) event.Change[T] {
	c := event.Change[T]{}
	if before > 0 {
		c.Cleared, c.HasCleared = before, true
	}
	if view.Len() > 0 {
		c.Added = &event.Mod[T]{Elements: view, At: event.Unpositioned}
	}
	return c
}
