package tree

import (
	"iter"

	"github.com/dshills/orderly/internal/seq"
)

// All returns an iterator over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq[Pair[K, V]] {
	return func(yield func(Pair[K, V]) bool) {
		for n := m.first(); n != nil; n = n.next() {
			if !yield(n.pair()) {
				return
			}
		}
	}
}

// Keys returns a live view of the keys in ascending order.
func (m *Map[K, V]) Keys() seq.View[K] {
	return seq.Map[Pair[K, V], K](m.view(), func(p Pair[K, V]) K { return p.Key })
}

// Values returns a live view of the values in key order.
func (m *Map[K, V]) Values() seq.View[V] {
	return seq.Map[Pair[K, V], V](m.view(), func(p Pair[K, V]) V { return p.Value })
}

// Reversed returns a live view of the entries in descending key order.
func (m *Map[K, V]) Reversed() seq.View[Pair[K, V]] {
	return seq.Counted[Pair[K, V]](func(yield func(Pair[K, V]) bool) {
		for n := m.last(); n != nil; n = n.prev() {
			if !yield(n.pair()) {
				return
			}
		}
	}, m.Len)
}

// Range returns a live view of the entries between start and end, with inc
// selecting whether each bound is included. The bounds are resolved on every
// traversal. A range whose start lies after its end is empty.
func (m *Map[K, V]) Range(start, end K, inc seq.Include) seq.View[Pair[K, V]] {
	return seq.Counted[Pair[K, V]](func(yield func(Pair[K, V]) bool) {
		lo, hi := m.bounds(start, end, inc)
		if lo == nil {
			return
		}
		for n := lo; ; n = n.next() {
			if !yield(n.pair()) || n == hi {
				return
			}
		}
	}, func() int {
		lo, hi := m.bounds(start, end, inc)
		if lo == nil {
			return 0
		}
		return hi.index() - lo.index() + 1
	})
}

// bounds resolves the first and last node of a range, or two nils when the
// range is empty.
func (m *Map[K, V]) bounds(start, end K, inc seq.Include) (lo, hi *node[K, V]) {
	lop, hop := opGT, opLT
	if inc.Start {
		lop = opGE
	}
	if inc.End {
		hop = opLE
	}

	lo, hi = m.find(start, lop), m.find(end, hop)
	if lo == nil || hi == nil || lo.index() > hi.index() {
		return nil, nil
	}
	return lo, hi
}

// Pairs returns a snapshot of the entries in ascending key order.
// The result is never nil.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	out := make([]Pair[K, V], 0, m.Len())
	for p := range m.All() {
		out = append(out, p)
	}
	return out
}
