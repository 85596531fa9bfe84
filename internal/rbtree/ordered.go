package rbtree

// ordered is the balance-agnostic layer: descent, placement and splicing
// of nodes by key. It never looks at colors except to carry them along.
// Tree owns one and repairs the coloring after every mutation.
type ordered[K, V any] struct {
	root    *Node[K, V]
	nilNode *Node[K, V] // Sentinel, shared by every leaf position
	compare func(a, b K) int
	size    int
}

// splice describes what a removal physically unlinked.
type splice[K, V any] struct {
	removed *Node[K, V] // node taken out of the graph
	color   Color       // its color at the moment of removal
	child   *Node[K, V] // node (possibly the sentinel) now in its slot
	parent  *Node[K, V] // parent of that slot, nil if it is the root
}

func newOrdered[K, V any](compare func(a, b K) int) *ordered[K, V] {
	nilNode := &Node[K, V]{color: Black}
	return &ordered[K, V]{
		root:    nilNode,
		nilNode: nilNode,
		compare: compare,
	}
}

// insert places a new red node at the leaf where key belongs. If a node
// with an equal key exists it is replaced by a fresh node that inherits its
// color and position, and replaced is true.
func (b *ordered[K, V]) insert(key K, value V) (n *Node[K, V], replaced bool) {
	var parent *Node[K, V]
	current := b.root
	goLeft := false

	for current != b.nilNode {
		c := b.compare(key, current.key)
		if c == 0 {
			n = newNode(key, value, b.nilNode)
			b.replace(current, n)
			return n, true
		}
		parent = current
		goLeft = c < 0
		if goLeft {
			current = current.left
		} else {
			current = current.right
		}
	}

	n = newNode(key, value, b.nilNode)
	n.parent = parent
	switch {
	case parent == nil:
		b.root = n
	case goLeft:
		parent.left = n
	default:
		parent.right = n
	}
	b.size++
	return n, false
}

// replace puts fresh exactly where old is: same color, same children, same
// parent, with every back-link re-pointed. old is left with no links.
func (b *ordered[K, V]) replace(old, fresh *Node[K, V]) {
	fresh.color = old.color
	fresh.left = old.left
	fresh.right = old.right
	b.transplant(old, fresh)
	if fresh.left != b.nilNode {
		fresh.left.parent = fresh
	}
	if fresh.right != b.nilNode {
		fresh.right.parent = fresh
	}
	old.detach()
}

// transplant hangs v where u hangs. u's own links are not touched.
func (b *ordered[K, V]) transplant(u, v *Node[K, V]) {
	switch {
	case u.parent == nil:
		b.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != b.nilNode {
		v.parent = u.parent
	}
}

// search returns the node holding key, or the sentinel.
func (b *ordered[K, V]) search(key K) *Node[K, V] {
	current := b.root
	for current != b.nilNode {
		c := b.compare(key, current.key)
		switch {
		case c == 0:
			return current
		case c < 0:
			current = current.left
		default:
			current = current.right
		}
	}
	return b.nilNode
}

func (b *ordered[K, V]) minimum(x *Node[K, V]) *Node[K, V] {
	if x == b.nilNode {
		return x
	}
	for x.left != b.nilNode {
		x = x.left
	}
	return x
}

func (b *ordered[K, V]) maximum(x *Node[K, V]) *Node[K, V] {
	if x == b.nilNode {
		return x
	}
	for x.right != b.nilNode {
		x = x.right
	}
	return x
}

// delete unlinks the entry for key. A node with two children keeps its
// place: its in-order successor is unlinked instead and the successor's
// key and value move into it. The returned value is the one stored under
// key before the call.
func (b *ordered[K, V]) delete(key K) (s splice[K, V], value V, ok bool) {
	z := b.search(key)
	if z == b.nilNode {
		return s, value, false
	}
	value = z.value

	y := z
	if z.left != b.nilNode && z.right != b.nilNode {
		y = b.minimum(z.right)
	}

	// y has at most one real child.
	child := y.left
	if child == b.nilNode {
		child = y.right
	}

	s = splice[K, V]{
		removed: y,
		color:   y.color,
		child:   child,
		parent:  y.parent,
	}
	b.transplant(y, child)
	if y != z {
		z.movePayload(y)
	}
	y.detach()
	b.size--
	return s, value, true
}
