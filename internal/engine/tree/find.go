package tree

import (
	"fmt"

	"github.com/dshills/orderly/internal/seq"
)

// op selects which side of a key find settles on.
type op struct {
	lset   bool // record nodes whose key is less than the search key
	rset   bool // record nodes whose key is greater than the search key
	eset   bool // record nodes whose key equals the search key
	eright bool // on equal keys, continue right instead of left
}

var (
	opEQ = op{eset: true}
	opLT = op{lset: true}
	opLE = op{lset: true, eset: true, eright: true}
	opGT = op{rset: true, eright: true}
	opGE = op{rset: true, eset: true}
)

// find walks from the root to a leaf and returns the last node recorded under o.
// With duplicate keys, EQ and GE settle on the first of the equal keys and LE on
// the last one.
func (m *Map[K, V]) find(k K, o op) *node[K, V] {
	var found *node[K, V]
	n := m.root
	for n != nil {
		c := m.compare(k, n.key)
		switch {
		case c < 0:
			if o.rset {
				found = n
			}
			n = n.left
		case c > 0:
			if o.lset {
				found = n
			}
			n = n.right
		default:
			if o.eset {
				found = n
				if m.unique {
					return n
				}
			}
			if o.eright {
				n = n.right
			} else {
				n = n.left
			}
		}
	}
	return found
}

func (m *Map[K, V]) first() *node[K, V] {
	n := m.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

func (m *Map[K, V]) last() *node[K, V] {
	n := m.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// at returns the node of rank i, or nil.
func (m *Map[K, V]) at(i int) *node[K, V] {
	if i < 0 || i >= m.Len() {
		return nil
	}
	n := m.root
	for n != nil {
		lw := n.left.size()
		switch {
		case i < lw:
			n = n.left
		case i > lw:
			i -= lw + 1
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func pairOf[K, V any](n *node[K, V]) (Pair[K, V], bool) {
	if n == nil {
		return Pair[K, V]{}, false
	}
	return n.pair(), true
}

// Get returns the value stored under k. With duplicate keys it returns the value
// of the first equal key.
func (m *Map[K, V]) Get(k K) (V, bool) {
	n := m.find(k, opEQ)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// HasKey reports whether an entry with key k exists.
func (m *Map[K, V]) HasKey(k K) bool {
	return m.find(k, opEQ) != nil
}

// Contains reports whether an entry with p's key and an equal value exists.
func (m *Map[K, V]) Contains(p Pair[K, V]) bool {
	for n := m.find(p.Key, opEQ); n != nil && m.compare(n.key, p.Key) == 0; n = n.next() {
		if m.valueEq(n.value, p.Value) {
			return true
		}
	}
	return false
}

// At returns the entry of rank i.
func (m *Map[K, V]) At(i int) (Pair[K, V], error) {
	n := m.at(i)
	if n == nil {
		return Pair[K, V]{}, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, m.Len())
	}
	return n.pair(), nil
}

// Rank returns the number of keys less than k and whether k is present.
func (m *Map[K, V]) Rank(k K) (int, bool) {
	n := m.find(k, opGE)
	if n == nil {
		return m.Len(), false
	}
	return n.index(), m.compare(n.key, k) == 0
}

// From returns the first entry whose key is >= k.
func (m *Map[K, V]) From(k K) (Pair[K, V], bool) {
	return pairOf(m.find(k, opGE))
}

// To returns the last entry whose key is <= k.
func (m *Map[K, V]) To(k K) (Pair[K, V], bool) {
	return pairOf(m.find(k, opLE))
}

// Before returns the last entry whose key is < k.
func (m *Map[K, V]) Before(k K) (Pair[K, V], bool) {
	return pairOf(m.find(k, opLT))
}

// After returns the first entry whose key is > k.
func (m *Map[K, V]) After(k K) (Pair[K, V], bool) {
	return pairOf(m.find(k, opGT))
}

// First returns the entry with the smallest key.
func (m *Map[K, V]) First() (Pair[K, V], bool) {
	return pairOf(m.first())
}

// Last returns the entry with the largest key.
func (m *Map[K, V]) Last() (Pair[K, V], bool) {
	return pairOf(m.last())
}

// Only returns the single entry of a one-entry map, or seq.ErrNotOnly.
func (m *Map[K, V]) Only() (Pair[K, V], error) {
	if m.Len() != 1 {
		return Pair[K, V]{}, fmt.Errorf("%w: map has %d entries", seq.ErrNotOnly, m.Len())
	}
	return m.root.pair(), nil
}
