package tree

import "fmt"

// tooHeavy reports whether a subtree of weight a outweighs its sibling of
// weight b beyond the 5:2 (plus slack) bound.
func tooHeavy(a, b int) bool {
	return b*5+2 < a*2
}

// rebalance restores weights and the balance bound on the path from n to the
// root. At each node a heavy side is fixed with a single rotation, or with a
// double rotation when the heavy child's inner subtree carries most of its weight.
func (m *Map[K, V]) rebalance(n *node[K, V]) {
	for n != nil {
		parent := n.parent
		orig := n
		lw, rw := n.left.size(), n.right.size()

		switch {
		case tooHeavy(lw, rw):
			if n.left.left.size()*5 < lw*2 {
				n.left = n.left.rotateLeft()
			}
			n = n.rotateRight()
		case tooHeavy(rw, lw):
			if n.right.right.size()*5 < rw*2 {
				n.right = n.right.rotateRight()
			}
			n = n.rotateLeft()
		default:
			n.weight = lw + rw + 1
			n = parent
			continue
		}

		m.relink(parent, orig, n)
		n = parent
	}
}

// relink makes repl take old's place under parent (or as the root).
func (m *Map[K, V]) relink(parent, old, repl *node[K, V]) {
	switch {
	case parent == nil:
		m.root = repl
	case parent.left == old:
		parent.left = repl
	default:
		parent.right = repl
	}
}

// Validate checks the structural invariants: parent back-links, subtree weights,
// the balance bound and key order. It returns an error wrapping ErrCorrupt
// describing the first violation found.
func (m *Map[K, V]) Validate() error {
	if m.root != nil && m.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrCorrupt)
	}
	if err := m.validate(m.root); err != nil {
		return err
	}

	var prev *node[K, V]
	for n := m.first(); n != nil; n = n.next() {
		if prev != nil {
			c := m.compare(prev.key, n.key)
			if c > 0 || (c == 0 && m.unique) {
				return fmt.Errorf("%w: key %v out of order after %v", ErrCorrupt, n.key, prev.key)
			}
		}
		prev = n
	}
	return nil
}

func (m *Map[K, V]) validate(n *node[K, V]) error {
	if n == nil {
		return nil
	}
	lw, rw := n.left.size(), n.right.size()
	if n.weight != lw+rw+1 {
		return fmt.Errorf("%w: node %v weighs %d, children %d+%d", ErrCorrupt, n.key, n.weight, lw, rw)
	}
	if tooHeavy(lw, rw) {
		return fmt.Errorf("%w: node %v leans left (%d vs %d)", ErrCorrupt, n.key, lw, rw)
	}
	if tooHeavy(rw, lw) {
		return fmt.Errorf("%w: node %v leans right (%d vs %d)", ErrCorrupt, n.key, lw, rw)
	}
	if n.left != nil && n.left.parent != n {
		return fmt.Errorf("%w: left child of %v has a stale parent", ErrCorrupt, n.key)
	}
	if n.right != nil && n.right.parent != n {
		return fmt.Errorf("%w: right child of %v has a stale parent", ErrCorrupt, n.key)
	}
	if err := m.validate(n.left); err != nil {
		return err
	}
	return m.validate(n.right)
}
