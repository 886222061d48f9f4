package tree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the tree structure, one node per line with its subtree weight.
// Children are prefixed with L or R.
//
//	2=two (w=3)
//	├── L 1=one (w=1)
//	└── R 3=three (w=1)
func (m *Map[K, V]) Dump() string {
	if m.root == nil {
		return "(empty)\n"
	}
	t := treeprint.NewWithRoot(label(m.root))
	dumpChildren(t, m.root)
	return t.String()
}

func dumpChildren[K, V any](t treeprint.Tree, n *node[K, V]) {
	for _, c := range []struct {
		side  string
		child *node[K, V]
	}{{"L ", n.left}, {"R ", n.right}} {
		switch {
		case c.child == nil:
		case c.child.weight == 1:
			t.AddNode(c.side + label(c.child))
		default:
			dumpChildren(t.AddBranch(c.side+label(c.child)), c.child)
		}
	}
}

func label[K, V any](n *node[K, V]) string {
	return fmt.Sprintf("%v=%v (w=%d)", n.key, n.value, n.weight)
}
