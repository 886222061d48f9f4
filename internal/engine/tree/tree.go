package tree

import (
	"cmp"
	"log/slog"
	"reflect"

	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// Pair is one map entry.
type Pair[K, V any] struct {
	Key   K `json:"key" yaml:"key"`
	Value V `json:"value" yaml:"value"`
}

// Config contains the construction parameters of a Map.
type Config[K, V any] struct {
	// Compare orders keys. It is required.
	Compare func(a, b K) int

	// ValueEq decides whether a Put changes a value. Defaults to reflect.DeepEqual.
	ValueEq func(a, b V) bool

	// Duplicates allows several entries with equal keys. By default a Put on an
	// existing key overwrites its value.
	Duplicates bool

	// Logger receives debug records. Defaults to slog.Default().
	Logger *slog.Logger

	// Events configures the map's event.Observable.
	Events []event.Option
}

// Map is an observable ordered map backed by a weight-balanced tree.
type Map[K, V any] struct {
	*event.Observable[Pair[K, V]]

	root    *node[K, V]
	compare func(a, b K) int
	valueEq func(a, b V) bool
	unique  bool
	logger  *slog.Logger
}

// New creates an empty map.
func New[K, V any](conf Config[K, V]) *Map[K, V] {
	if conf.Compare == nil {
		panic("tree: nil Compare")
	}
	if conf.ValueEq == nil {
		conf.ValueEq = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}

	m := &Map[K, V]{
		compare: conf.Compare,
		valueEq: conf.ValueEq,
		unique:  !conf.Duplicates,
		logger:  conf.Logger.With("system", "tree"),
	}
	m.Observable = event.NewObservable[Pair[K, V]](m, conf.Events...)
	return m
}

// NewOrdered creates an empty unique map using the natural ordering of K and ==
// on values.
func NewOrdered[K cmp.Ordered, V comparable]() *Map[K, V] {
	return New(Config[K, V]{
		Compare: cmp.Compare[K],
		ValueEq: seq.Equal[V],
	})
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.root.size()
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.root == nil
}

// Unique reports whether Put overwrites existing keys.
func (m *Map[K, V]) Unique() bool {
	return m.unique
}

// Compare returns the current key comparator.
func (m *Map[K, V]) Compare() func(a, b K) int {
	return m.compare
}

// KeyEq reports whether a and b are equal under the comparator.
func (m *Map[K, V]) KeyEq(a, b K) bool {
	return m.compare(a, b) == 0
}

// PairEq reports whether two entries have equal keys and equal values.
func (m *Map[K, V]) PairEq(a, b Pair[K, V]) bool {
	return m.compare(a.Key, b.Key) == 0 && m.valueEq(a.Value, b.Value)
}

// Height returns the number of levels in the tree.
func (m *Map[K, V]) Height() int {
	return m.root.height()
}

// SetCompare replaces the comparator and re-sorts the map in O(n log n).
// Subscribers see a single {cleared, added} change covering the whole content.
// In unique mode, keys the new comparator considers equal collapse into one
// entry holding the first key and the last value in the old order.
func (m *Map[K, V]) SetCompare(compare func(a, b K) int) {
	if compare == nil {
		panic("tree: nil Compare")
	}
	m.compare = compare

	n := m.first()
	if n == nil {
		return
	}
	before := m.Len()
	m.root = nil
	for ; n != nil; n = n.next() {
		m.rawPut(n.key, n.value)
	}

	m.logger.Debug("comparator replaced", "before", before, "after", m.Len(), "height", m.Height())
	m.Publish(event.ClearAndAdd(before, m.view()))
}

// view returns a live, sized view over the map's entries.
func (m *Map[K, V]) view() seq.Sized[Pair[K, V]] {
	return seq.Counted(m.All(), m.Len)
}
