package rbtree

import (
	"iter"
)

// InOrder yields every entry in ascending key order.
func (t *Tree[K, V]) InOrder() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := range t.Nodes() {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Nodes yields every node in ascending key order. The tree must not be
// modified while the sequence is being consumed.
func (t *Tree[K, V]) Nodes() iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		nilNode := t.bst.nilNode
		stack := []*Node[K, V]{}
		current := t.bst.root
		for current != nilNode || len(stack) > 0 {

			for current != nilNode {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current) {
				return
			}

			current = current.right
		}
	}
}

// Descending yields every entry in descending key order.
func (t *Tree[K, V]) Descending() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		nilNode := t.bst.nilNode
		stack := []*Node[K, V]{}
		current := t.bst.root
		for current != nilNode || len(stack) > 0 {

			for current != nilNode {
				stack = append(stack, current)
				current = current.right
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key, current.value) {
				return
			}

			current = current.left
		}
	}
}

// PostOrder yields left subtree, right subtree, then the node itself.
// A node's links are not read again once it has been yielded, so the
// consumer may release it (see Clear).
func (t *Tree[K, V]) PostOrder() iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		nilNode := t.bst.nilNode
		stack := []*Node[K, V]{}
		var last *Node[K, V]
		current := t.bst.root
		for current != nilNode || len(stack) > 0 {
			if current != nilNode {
				stack = append(stack, current)
				current = current.left
				continue
			}

			top := stack[len(stack)-1]
			if top.right != nilNode && top.right != last {
				current = top.right
				continue
			}

			stack = stack[:len(stack)-1]
			last = top
			if !yield(top) {
				return
			}
		}
	}
}

// Traverse applies visit to every node in post-order.
func (t *Tree[K, V]) Traverse(visit func(*Node[K, V])) {
	for n := range t.PostOrder() {
		visit(n)
	}
}
