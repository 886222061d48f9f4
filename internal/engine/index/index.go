package index

import (
	"iter"
	"log/slog"

	"github.com/dshills/orderly/internal/engine/tree"
	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// Conf contains the construction parameters of an Index.
type Conf[K, V any] struct {
	// Key extracts the ordering key of a value. It is required.
	Key func(V) K

	// Compare orders keys. It is required.
	Compare func(a, b K) int

	// ValueEq decides whether adding a value changes the index.
	// Defaults to reflect.DeepEqual.
	ValueEq func(a, b V) bool

	// Logger receives debug records. Defaults to slog.Default().
	Logger *slog.Logger

	// Events configures the index's event.Observable.
	Events []event.Option
}

// Index is an observable set of values ordered by an extracted key.
type Index[K, V any] struct {
	*event.Observable[V]

	m      *tree.Map[K, V]
	key    func(V) K
	keeper *event.Keeper
}

// New creates an empty index.
func New[K, V any](conf Conf[K, V]) *Index[K, V] {
	if conf.Key == nil {
		panic("index: nil Key")
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	logger := conf.Logger.With("system", "index")

	ix := &Index[K, V]{
		key:    conf.Key,
		keeper: event.NewKeeper(),
	}
	ix.Observable = event.NewObservable[V](ix, conf.Events...)

	// The backing map shares the index's registry under its own ID.
	ix.m = tree.New(tree.Config[K, V]{
		Compare: conf.Compare,
		ValueEq: conf.ValueEq,
		Logger:  conf.Logger,
		Events:  []event.Option{event.WithRegistry(ix.Registry()), event.WithLogger(logger)},
	})

	replayed := false
	ix.m.Subscribe(ix.keeper, func(c event.Change[tree.Pair[K, V]]) {
		if !replayed {
			replayed = true
			return
		}
		ix.Publish(event.MapChange(c, valueOf[K, V]))
	})

	logger.Debug("index created", "collection", ix.ID(), "map", ix.m.ID())
	return ix
}

func valueOf[K, V any](p tree.Pair[K, V]) V {
	return p.Value
}

// pairs turns values into map entries.
func (ix *Index[K, V]) pairs(values iter.Seq[V]) iter.Seq[tree.Pair[K, V]] {
	return func(yield func(tree.Pair[K, V]) bool) {
		for v := range values {
			if !yield(tree.Pair[K, V]{Key: ix.key(v), Value: v}) {
				return
			}
		}
	}
}

// Key returns the ordering key of v.
func (ix *Index[K, V]) Key(v V) K {
	return ix.key(v)
}

// Len returns the number of values.
func (ix *Index[K, V]) Len() int {
	return ix.m.Len()
}

// IsEmpty reports whether the index holds no values.
func (ix *Index[K, V]) IsEmpty() bool {
	return ix.m.IsEmpty()
}

// All returns an iterator over the values in key order.
func (ix *Index[K, V]) All() iter.Seq[V] {
	return ix.m.Values().All()
}

// Reversed returns a live view of the values in descending key order.
func (ix *Index[K, V]) Reversed() seq.View[V] {
	return seq.Map[tree.Pair[K, V], V](ix.m.Reversed(), valueOf[K, V])
}

// Range returns a live view of the values whose keys lie between the keys of
// a and b.
func (ix *Index[K, V]) Range(a, b V, inc seq.Include) seq.View[V] {
	return seq.Map[tree.Pair[K, V], V](ix.m.Range(ix.key(a), ix.key(b), inc), valueOf[K, V])
}

// Add inserts v, replacing any value with the same key. It reports whether the
// index changed.
func (ix *Index[K, V]) Add(v V) bool {
	k := ix.key(v)
	old, replaced := ix.m.Put(k, v)
	if !replaced {
		return true
	}
	return !ix.m.PairEq(tree.Pair[K, V]{Key: k, Value: old}, tree.Pair[K, V]{Key: k, Value: v})
}

// AddAll adds every value, publishing at most one event. It returns the number
// of values consumed.
func (ix *Index[K, V]) AddAll(values iter.Seq[V]) int {
	return ix.m.PutAll(ix.pairs(values))
}

// Replace swaps the whole content for values.
func (ix *Index[K, V]) Replace(values iter.Seq[V]) {
	ix.m.Replace(ix.pairs(values))
}

// Clear removes every value.
func (ix *Index[K, V]) Clear() {
	ix.m.Clear()
}

// RemoveKey removes the value stored under k.
func (ix *Index[K, V]) RemoveKey(k K) (V, bool) {
	return ix.m.RemoveKey(k)
}

// Remove removes the value sharing v's key.
func (ix *Index[K, V]) Remove(v V) (V, bool) {
	return ix.m.RemoveKey(ix.key(v))
}

// Drop removes every value matching pred, publishing one event per value.
func (ix *Index[K, V]) Drop(pred func(V) bool) int {
	return ix.m.Drop(func(p tree.Pair[K, V]) bool { return pred(p.Value) })
}

// Get returns the value stored under k.
func (ix *Index[K, V]) Get(k K) (V, bool) {
	return ix.m.Get(k)
}

// Has reports whether a value equal to v is stored under v's key.
func (ix *Index[K, V]) Has(v V) bool {
	return ix.m.Contains(tree.Pair[K, V]{Key: ix.key(v), Value: v})
}

// At returns the value of rank i.
func (ix *Index[K, V]) At(i int) (V, error) {
	p, err := ix.m.At(i)
	return p.Value, err
}

// Rank returns the number of values ordered before v and whether v's key is
// present.
func (ix *Index[K, V]) Rank(v V) (int, bool) {
	return ix.m.Rank(ix.key(v))
}

func value[K, V any](p tree.Pair[K, V], ok bool) (V, bool) {
	return p.Value, ok
}

// First returns the value with the smallest key.
func (ix *Index[K, V]) First() (V, bool) {
	return value[K, V](ix.m.First())
}

// Last returns the value with the largest key.
func (ix *Index[K, V]) Last() (V, bool) {
	return value[K, V](ix.m.Last())
}

// Only returns the single value of a one-value index, or seq.ErrNotOnly.
func (ix *Index[K, V]) Only() (V, error) {
	p, err := ix.m.Only()
	return p.Value, err
}

// From returns the first value whose key is >= v's key.
func (ix *Index[K, V]) From(v V) (V, bool) {
	return value[K, V](ix.m.From(ix.key(v)))
}

// To returns the last value whose key is <= v's key.
func (ix *Index[K, V]) To(v V) (V, bool) {
	return value[K, V](ix.m.To(ix.key(v)))
}

// Before returns the last value whose key is < v's key.
func (ix *Index[K, V]) Before(v V) (V, bool) {
	return value[K, V](ix.m.Before(ix.key(v)))
}

// After returns the first value whose key is > v's key.
func (ix *Index[K, V]) After(v V) (V, bool) {
	return value[K, V](ix.m.After(ix.key(v)))
}

// Validate checks the structural invariants of the underlying tree.
func (ix *Index[K, V]) Validate() error {
	return ix.m.Validate()
}
