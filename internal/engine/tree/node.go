package tree

// node is a tree node. The tree owns its nodes through root, left and right;
// parent is a back-link used for traversal and rank computation.
type node[K, V any] struct {
	key    K
	value  V
	weight int // nodes in this subtree, including this one

	parent *node[K, V]
	left   *node[K, V]
	right  *node[K, V]
}

// size returns the subtree weight; nil subtrees weigh 0.
func (n *node[K, V]) size() int {
	if n == nil {
		return 0
	}
	return n.weight
}

// weigh recomputes the node's weight from its children.
func (n *node[K, V]) weigh() {
	n.weight = 1 + n.left.size() + n.right.size()
}

// pair returns the node's key and value.
func (n *node[K, V]) pair() Pair[K, V] {
	return Pair[K, V]{Key: n.key, Value: n.value}
}

// index returns the node's rank: its 0-based position in order.
// It walks to the root, counting the left subtree and the node itself at every
// step that arrives from a right child.
func (n *node[K, V]) index() int {
	i := -1
	prev := n.right
	for x := n; x != nil; x = x.parent {
		if x.right == prev {
			i += x.left.size() + 1
		}
		prev = x
	}
	return i
}

// next returns the in-order successor, or nil.
func (n *node[K, V]) next() *node[K, V] {
	if x := n.right; x != nil {
		for x.left != nil {
			x = x.left
		}
		return x
	}
	child, x := n, n.parent
	for x != nil && x.right == child {
		child, x = x, x.parent
	}
	return x
}

// prev returns the in-order predecessor, or nil.
func (n *node[K, V]) prev() *node[K, V] {
	if x := n.left; x != nil {
		for x.right != nil {
			x = x.right
		}
		return x
	}
	child, x := n, n.parent
	for x != nil && x.left == child {
		child, x = x, x.parent
	}
	return x
}

// rotateLeft lifts the right child above n and returns it.
// The caller relinks the returned node into n's former parent.
//
//	  n               b
//	 / \             / \
//	a   b    =>     n   d
//	   / \         / \
//	  c   d       a   c
func (n *node[K, V]) rotateLeft() *node[K, V] {
	b := n.right
	c := b.left
	b.parent = n.parent
	b.left = n
	n.parent = b
	n.right = c
	if c != nil {
		c.parent = n
	}
	n.weigh()
	b.weigh()
	return b
}

// rotateRight lifts the left child above n and returns it.
// The caller relinks the returned node into n's former parent.
func (n *node[K, V]) rotateRight() *node[K, V] {
	b := n.left
	c := b.right
	b.parent = n.parent
	b.right = n
	n.parent = b
	n.left = c
	if c != nil {
		c.parent = n
	}
	n.weigh()
	b.weigh()
	return b
}

// height returns the number of levels in the subtree.
func (n *node[K, V]) height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.left.height(), n.right.height())
}
