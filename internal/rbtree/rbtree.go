// Package rbtree implements a generic Red-Black Tree: an ordered
// key-value index with insertion, deletion, point lookup, minimum,
// maximum and ordered traversal.
//
// Red-Black Tree is a self-balancing binary search tree that guarantees
// O(log n) time complexity for basic operations.
//
// A Tree is not safe for concurrent use; callers serialize access.
package rbtree

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Tree represents a Red-Black Tree instance.
// Use New or NewFunc to create a new tree instance.
type Tree[K, V any] struct {
	bst *ordered[K, V]
}

// New creates and returns a new empty tree ordered by the natural
// ordering of K.
func New[K constraints.Ordered, V any]() *Tree[K, V] {
	return NewFunc[K, V](cmp.Compare[K])
}

// NewFunc creates an empty tree ordered by compare, which must return a
// negative number, zero or a positive number when a is less than, equal
// to or greater than b.
func NewFunc[K, V any](compare func(a, b K) int) *Tree[K, V] {
	return &Tree[K, V]{bst: newOrdered[K, V](compare)}
}

// Len returns the number of entries.
func (t *Tree[K, V]) Len() int {
	return t.bst.size
}

// Insert adds key with value while maintaining Red-Black Tree
// properties. If key is already present its node is replaced by a new one
// in the same position and with the same color. The inserted node is
// returned.
func (t *Tree[K, V]) Insert(key K, value V) *Node[K, V] {
	n, replaced := t.bst.insert(key, value)
	if !replaced {
		t.fixInsert(n)
	}
	return n
}

// fixInsert restores the coloring after n was attached as a red leaf.
func (t *Tree[K, V]) fixInsert(n *Node[K, V]) {
	for {
		p := n.parent

		// Case 1: n is the root.
		if p == nil {
			n.color = Black
			return
		}

		// Case 2: parent is black, nothing is violated.
		if p.color == Black {
			return
		}

		// p is red, so it is not the root and g exists.
		g := p.parent
		uncle := g.left
		if p == g.left {
			uncle = g.right
		}

		// Case 3: parent and uncle red. Push the blackness down from g
		// and continue from g, which may now be a red child of a red node.
		if uncle.color == Red {
			p.color = Black
			uncle.color = Black
			g.color = Red
			n = g
			continue
		}

		// Case 4: n is an inner grandchild. Rotate it outward.
		if n == p.right && p == g.left {
			t.leftRotate(p)
			n, p = p, n
		} else if n == p.left && p == g.right {
			t.rightRotate(p)
			n, p = p, n
		}

		// Case 5: n is an outer grandchild.
		p.color = Black
		g.color = Red
		if n == p.left {
			t.rightRotate(g)
		} else {
			t.leftRotate(g)
		}
		return
	}
}

func (t *Tree[K, V]) leftRotate(x *Node[K, V]) {
	/*
		Left rotation around node x:
			    Before:               After:
		          P                    P
		          |                    |
		          x                    y
		         / \                  / \
		        A   y       →        x   C
		           / \              / \
		          B   C            A   B
	*/
	y := x.right
	x.right = y.left
	if y.left != t.bst.nilNode {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		t.bst.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree[K, V]) rightRotate(y *Node[K, V]) {
	/*
		Right rotation around node y:
		    Before:               After:
		       P                    P
		       |                    |
		       y                    x
		      / \                  / \
		     x   C       →        A   y
		    / \                      / \
		   A   B                    B   C
	*/
	x := y.left
	y.left = x.right
	if x.right != t.bst.nilNode {
		x.right.parent = y
	}
	x.parent = y.parent
	if y.parent == nil {
		t.bst.root = x
	} else if y == y.parent.right {
		y.parent.right = x
	} else {
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

// Delete removes key from the tree while maintaining Red-Black Tree
// properties and returns the value it held. If key doesn't exist, the
// operation is a no-op and reports false.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	s, value, ok := t.bst.delete(key)
	if !ok {
		return value, false
	}

	switch {
	case s.color == Red:
		// Removing a red node never changes a black-height.
	case s.child.color == Red:
		s.child.color = Black
	default:
		t.fixDelete(s.child, s.parent)
	}
	return value, true
}

// fixDelete resolves the missing black on the path through x, which now
// sits under parent. x may be the sentinel, hence parent is passed in
// rather than read from x.
func (t *Tree[K, V]) fixDelete(x, parent *Node[K, V]) {
	for {
		// Case 1: the deficiency reached the root and is absorbed.
		if parent == nil {
			return
		}

		if x == parent.left {
			w := parent.right

			// Case 2: Red sibling. Rotate so that x gets a black sibling.
			if w.color == Red {
				w.color = Black
				parent.color = Red
				t.leftRotate(parent)
				w = parent.right
			}

			if w.left.color == Black && w.right.color == Black {
				w.color = Red
				// Case 4: Red parent takes the missing black.
				if parent.color == Red {
					parent.color = Black
					return
				}
				// Case 3: everything black, move the deficiency up.
				x, parent = parent, parent.parent
				continue
			}

			// Case 5: only the near nephew is red. Turn it into the far one.
			if w.right.color == Black {
				w.left.color = Black
				w.color = Red
				t.rightRotate(w)
				w = parent.right
			}

			// Case 6: far nephew red.
			w.color = parent.color
			parent.color = Black
			w.right.color = Black
			t.leftRotate(parent)
			return
		}

		w := parent.left

		if w.color == Red {
			w.color = Black
			parent.color = Red
			t.rightRotate(parent)
			w = parent.left
		}

		if w.right.color == Black && w.left.color == Black {
			w.color = Red
			if parent.color == Red {
				parent.color = Black
				return
			}
			x, parent = parent, parent.parent
			continue
		}

		if w.left.color == Black {
			w.right.color = Black
			w.color = Red
			t.leftRotate(w)
			w = parent.left
		}

		w.color = parent.color
		parent.color = Black
		w.left.color = Black
		t.rightRotate(parent)
		return
	}
}

// Search returns the node holding key.
func (t *Tree[K, V]) Search(key K) (*Node[K, V], bool) {
	n := t.bst.search(key)
	if n == t.bst.nilNode {
		return nil, false
	}
	return n, true
}

// Get returns the value stored under key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	n := t.bst.search(key)
	if n == t.bst.nilNode {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains checks if a key is present in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.bst.search(key) != t.bst.nilNode
}

// Min returns the node with the smallest key, false on an empty tree.
func (t *Tree[K, V]) Min() (*Node[K, V], bool) {
	n := t.bst.minimum(t.bst.root)
	if n == t.bst.nilNode {
		return nil, false
	}
	return n, true
}

// Max returns the node with the largest key, false on an empty tree.
func (t *Tree[K, V]) Max() (*Node[K, V], bool) {
	n := t.bst.maximum(t.bst.root)
	if n == t.bst.nilNode {
		return nil, false
	}
	return n, true
}

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	return t.height(t.bst.root)
}

func (t *Tree[K, V]) height(n *Node[K, V]) int {
	if n == t.bst.nilNode {
		return 0
	}
	return 1 + max(t.height(n.left), t.height(n.right))
}

// BlackHeight is the number of black nodes on any root-to-leaf path,
// the sentinel excluded. Only meaningful on a valid tree.
func (t *Tree[K, V]) BlackHeight() int {
	bh := 0
	for n := t.bst.root; n != t.bst.nilNode; n = n.left {
		if n.color == Black {
			bh++
		}
	}
	return bh
}

// Clear tears the tree down, releasing every node in post-order, and
// returns how many nodes were released.
func (t *Tree[K, V]) Clear() int {
	released := 0
	for n := range t.PostOrder() {
		n.detach()
		released++
	}
	t.bst.root = t.bst.nilNode
	t.bst.size = 0
	return released
}
