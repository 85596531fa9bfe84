package rbtree

import (
	"github.com/pkg/errors"
)

// ErrInvariant is the cause of every error returned by Verify.
var ErrInvariant = errors.New("red-black invariant violated")

// Verify validates Red-Black Tree invariants:
//  1. Keys are in strict binary-search order
//  2. Root and sentinel are black, the sentinel is untouched
//  3. Red nodes have black children
//  4. All paths from a node to its leaves have the same black count
//  5. Parent links mirror child links
//
// and that Len matches the number of reachable nodes.
func (t *Tree[K, V]) Verify() error {
	nilNode := t.bst.nilNode
	if nilNode.color != Black || nilNode.left != nil || nilNode.right != nil || nilNode.parent != nil {
		return errors.Wrap(ErrInvariant, "sentinel modified")
	}

	root := t.bst.root
	if root == nilNode {
		if t.bst.size != 0 {
			return errors.Wrapf(ErrInvariant, "size %d != counted 0", t.bst.size)
		}
		return nil
	}
	if root.parent != nil {
		return errors.Wrapf(ErrInvariant, "root %v has a parent", root.key)
	}
	if root.color != Black {
		return errors.Wrapf(ErrInvariant, "root %v is red", root.key)
	}

	count := 0
	if _, err := t.checkSubtree(root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.bst.size {
		return errors.Wrapf(ErrInvariant, "size %d != counted %d", t.bst.size, count)
	}
	return nil
}

// VerifyTreeProperties reports whether Verify finds no violation.
func (t *Tree[K, V]) VerifyTreeProperties() bool {
	return t.Verify() == nil
}

// checkSubtree returns the black count below node, the sentinel counted
// as one. lo and hi are exclusive key bounds inherited from ancestors.
func (t *Tree[K, V]) checkSubtree(node *Node[K, V], lo, hi *K, count *int) (int, error) {
	if node == t.bst.nilNode {
		return 1, nil
	}
	*count++

	if node.left == nil || node.right == nil {
		return 0, errors.Wrapf(ErrInvariant, "node %v has a nil child link", node.key)
	}
	if lo != nil && t.bst.compare(*lo, node.key) >= 0 {
		return 0, errors.Wrapf(ErrInvariant, "order violated at %v", node.key)
	}
	if hi != nil && t.bst.compare(node.key, *hi) >= 0 {
		return 0, errors.Wrapf(ErrInvariant, "order violated at %v", node.key)
	}
	for _, child := range []*Node[K, V]{node.left, node.right} {
		if child != t.bst.nilNode && child.parent != node {
			return 0, errors.Wrapf(ErrInvariant, "broken parent link at %v", child.key)
		}
	}
	if node.color == Red && (node.left.color == Red || node.right.color == Red) {
		return 0, errors.Wrapf(ErrInvariant, "red node %v has red child", node.key)
	}

	leftCount, err := t.checkSubtree(node.left, lo, &node.key, count)
	if err != nil {
		return 0, err
	}
	rightCount, err := t.checkSubtree(node.right, &node.key, hi, count)
	if err != nil {
		return 0, err
	}
	if leftCount != rightCount {
		return 0, errors.Wrapf(ErrInvariant, "black-height mismatch at %v: %d != %d",
			node.key, leftCount, rightCount)
	}

	if node.color == Black {
		leftCount++
	}
	return leftCount, nil
}
