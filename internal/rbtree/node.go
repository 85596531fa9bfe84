package rbtree

// Color of a node. New nodes are red; the sentinel and the root are black.
type Color bool

const (
	Red   Color = true
	Black Color = false
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Node is a single entry of a Tree. Only the owning tree mutates its color
// and links; callers read it through Key, Value and Color.
type Node[K, V any] struct {
	key                 K
	value               V
	color               Color
	left, right, parent *Node[K, V]
}

// newNode returns a red node whose children both point at the sentinel.
func newNode[K, V any](key K, value V, sentinel *Node[K, V]) *Node[K, V] {
	return &Node[K, V]{
		key:   key,
		value: value,
		color: Red,
		left:  sentinel,
		right: sentinel,
	}
}

func (n *Node[K, V]) Key() K {
	return n.key
}

func (n *Node[K, V]) Value() V {
	return n.value
}

func (n *Node[K, V]) Color() Color {
	return n.color
}

// movePayload copies key and value from src. Links and color stay put.
func (n *Node[K, V]) movePayload(src *Node[K, V]) {
	n.key = src.key
	n.value = src.value
}

// detach drops every link so a released node keeps nothing reachable.
func (n *Node[K, V]) detach() {
	n.left, n.right, n.parent = nil, nil, nil
}
