package tree

import (
	"iter"
	"slices"

	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

// rawPut inserts k. In unique mode an existing equal key has its value
// overwritten and is returned with the old value. Otherwise a new node is linked
// after all equal keys and the path to the root is rebalanced.
func (m *Map[K, V]) rawPut(k K, v V) (n *node[K, V], old V, replaced bool) {
	n = &node[K, V]{key: k, value: v, weight: 1}
	if m.root == nil {
		m.root = n
		return n, old, false
	}

	x := m.root
	for {
		c := m.compare(k, x.key)
		if c == 0 && m.unique {
			old = x.value
			x.value = v
			return x, old, true
		}
		if c < 0 {
			if x.left == nil {
				x.left = n
				break
			}
			x = x.left
		} else {
			if x.right == nil {
				x.right = n
				break
			}
			x = x.right
		}
	}
	n.parent = x
	m.rebalance(x)
	return n, old, false
}

// remove unlinks n, splicing its in-order successor into its place when it has
// two children, and rebalances from the lowest modified node.
func (m *Map[K, V]) remove(n *node[K, V]) {
	p := n.parent
	left, right := n.left, n.right

	var bal, next *node[K, V]
	switch {
	case right == nil:
		bal, next = p, left
		left = nil
	case right.left != nil:
		next = right
		for next.left != nil {
			bal = next
			next = next.left
		}
		bal.left = next.right
		if next.right != nil {
			next.right.parent = bal
		}
	default:
		bal, next = right, right
		right = nil
	}

	m.relink(p, n, next)
	if next != nil {
		next.parent = p
		if left != nil {
			next.left = left
			left.parent = next
		}
		if right != nil {
			next.right = right
			right.parent = next
		}
	}
	n.parent, n.left, n.right = nil, nil, nil
	m.rebalance(bal)
}

// RawPut inserts or overwrites k without publishing an event.
func (m *Map[K, V]) RawPut(k K, v V) (old V, replaced bool) {
	_, old, replaced = m.rawPut(k, v)
	return old, replaced
}

// Put inserts k, or overwrites its value in unique mode, and publishes the
// change. Overwriting with an equal value publishes nothing but still reports
// the old value.
func (m *Map[K, V]) Put(k K, v V) (old V, replaced bool) {
	n, old, replaced := m.rawPut(k, v)
	if c, ok := m.putChange(n, old, replaced); ok {
		m.Publish(c)
	}
	return old, replaced
}

// putChange builds the event of a single rawPut, if it changed anything.
func (m *Map[K, V]) putChange(n *node[K, V], old V, replaced bool) (event.Change[Pair[K, V]], bool) {
	if !replaced {
		return event.Add[Pair[K, V]](seq.Of(n.pair()), n.index()), true
	}
	if m.valueEq(old, n.value) {
		return event.Change[Pair[K, V]]{}, false
	}
	was := Pair[K, V]{Key: n.key, Value: old}
	return event.Replace[Pair[K, V]](seq.Of(was), seq.Of(n.pair()), n.index()), true
}

// PutAll puts every pair and publishes at most one event: the minimal event when
// exactly one entry changed, a clear-and-add of the whole map otherwise.
// The pairs are collected before the first insert, so they may come from the
// map itself. It returns the number of pairs consumed.
func (m *Map[K, V]) PutAll(pairs iter.Seq[Pair[K, V]]) int {
	incoming := slices.Collect(pairs)
	if m.IsEmpty() {
		for _, p := range incoming {
			m.rawPut(p.Key, p.Value)
		}
		if !m.IsEmpty() {
			m.Publish(event.Add(m.view(), 0))
		}
		return len(incoming)
	}

	before := m.Len()
	changes := 0
	var single event.Change[Pair[K, V]]
	for _, p := range incoming {
		n, old, replaced := m.rawPut(p.Key, p.Value)
		c, ok := m.putChange(n, old, replaced)
		if !ok {
			continue
		}
		changes++
		if changes == 1 {
			single = c
		}
	}

	switch changes {
	case 0:
	case 1:
		m.Publish(single)
	default:
		m.Publish(event.ClearAndAdd(before, m.view()))
	}
	return len(incoming)
}

// Replace swaps the whole content for pairs. The pairs are collected before the
// map is cleared, so they may come from the map itself.
func (m *Map[K, V]) Replace(pairs iter.Seq[Pair[K, V]]) {
	m.Rebuild(m.compare, pairs)
}

// Rebuild replaces the comparator and the whole content at once, publishing the
// single event Replace would.
func (m *Map[K, V]) Rebuild(compare func(a, b K) int, pairs iter.Seq[Pair[K, V]]) {
	if compare == nil {
		panic("tree: nil Compare")
	}
	incoming := slices.Collect(pairs)
	before := m.Len()

	m.compare = compare
	m.root = nil
	for _, p := range incoming {
		m.rawPut(p.Key, p.Value)
	}

	after := m.Len()
	switch {
	case before > 0 && after > 0:
		m.Publish(event.ClearAndAdd(before, m.view()))
	case after > 0:
		m.Publish(event.Add(m.view(), 0))
	case before > 0:
		m.Publish(event.Cleared[Pair[K, V]](before))
	}
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	n := m.Len()
	m.root = nil
	if n > 0 {
		m.Publish(event.Cleared[Pair[K, V]](n))
	}
}

// RemoveKey removes the entry with key k (the first one, with duplicate keys)
// and returns its value.
func (m *Map[K, V]) RemoveKey(k K) (V, bool) {
	n := m.find(k, opEQ)
	if n == nil {
		var zero V
		return zero, false
	}
	at := n.index()
	p := n.pair()
	m.remove(n)
	m.Publish(event.Remove[Pair[K, V]](seq.Of(p), at))
	return p.Value, true
}

// Drop removes every entry matching pred, in ascending order, publishing one
// event per removed entry with its rank at the time of removal. It returns the
// number of entries removed.
func (m *Map[K, V]) Drop(pred func(Pair[K, V]) bool) int {
	dropped := 0
	for n := m.first(); n != nil; {
		next := n.next()
		if p := n.pair(); pred(p) {
			at := n.index()
			m.remove(n)
			m.Publish(event.Remove[Pair[K, V]](seq.Of(p), at))
			dropped++
		}
		n = next
	}
	return dropped
}
