package rbtree

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds 50(40(30,45),60(55,70)) with 50 and both 40, 60 black
// and the four leaves red.
func sample(t *testing.T) *Tree[int, int] {
	t.Helper()
	tree := New[int, int]()
	for _, k := range []int{50, 40, 60, 30, 45, 55, 70} {
		tree.Insert(k, k)
	}
	require.NoError(t, tree.Verify())
	return tree
}

func node(t *testing.T, tree *Tree[int, int], key int) *Node[int, int] {
	t.Helper()
	n, ok := tree.Search(key)
	require.True(t, ok, "key %d", key)
	return n
}

func TestVerifyDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, tree *Tree[int, int])
		want    string
	}{
		{
			name: "RedRoot",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				tree.bst.root.color = Red
			},
			want: "root 50 is red",
		},
		{
			name: "RedRed",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				node(t, tree, 40).color = Red
			},
			want: "red node 40 has red child",
		},
		{
			name: "BlackHeight",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				node(t, tree, 30).color = Black
			},
			want: "black-height mismatch at 40",
		},
		{
			name: "Order",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				node(t, tree, 45).key = 52
			},
			want: "order violated at 52",
		},
		{
			name: "ParentLink",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				node(t, tree, 55).parent = node(t, tree, 40)
			},
			want: "broken parent link at 55",
		},
		{
			name: "Size",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				tree.bst.size++
			},
			want: "size 8 != counted 7",
		},
		{
			name: "Sentinel",
			corrupt: func(t *testing.T, tree *Tree[int, int]) {
				tree.bst.nilNode.parent = tree.bst.root
			},
			want: "sentinel modified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sample(t)
			tt.corrupt(t, tree)

			err := tree.Verify()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvariant))
			assert.Equal(t, ErrInvariant, errors.Cause(err))
			assert.Contains(t, err.Error(), tt.want)
			assert.False(t, tree.VerifyTreeProperties())
		})
	}
}

func TestDeleteTwoChildrenSplicesSuccessor(t *testing.T) {
	tree := sample(t)
	target := node(t, tree, 40)
	successor := node(t, tree, 45)

	_, ok := tree.Delete(40)
	require.True(t, ok)
	require.NoError(t, tree.Verify())

	// The node that held 40 stays in place and now carries 45; the
	// successor's node is the one unlinked.
	assert.Same(t, target, tree.bst.root.left)
	assert.Equal(t, 45, target.key)
	assert.Equal(t, Black, target.color)
	assert.Same(t, target, node(t, tree, 45))
	assert.Nil(t, successor.parent)
	assert.Nil(t, successor.left)
	assert.Nil(t, successor.right)
}

func TestReplaceRelinksChildren(t *testing.T) {
	tree := sample(t)
	old := node(t, tree, 40)
	left, right := old.left, old.right

	fresh := tree.Insert(40, 400)

	require.NoError(t, tree.Verify())
	assert.Same(t, fresh, tree.bst.root.left)
	assert.Same(t, fresh, left.parent)
	assert.Same(t, fresh, right.parent)
	assert.Same(t, tree.bst.root, fresh.parent)
	assert.Nil(t, old.left)
	assert.Nil(t, old.right)
	assert.Nil(t, old.parent)
}

func TestSentinelNeverWritten(t *testing.T) {
	tree := New[int, int]()
	sentinel := tree.bst.nilNode
	for i := 0; i < 2000; i++ {
		tree.Insert(i*7%2003, i)
	}
	for i := 0; i < 2000; i += 2 {
		tree.Delete(i * 7 % 2003)
	}
	require.NoError(t, tree.Verify())
	tree.Clear()

	assert.Same(t, sentinel, tree.bst.nilNode)
	assert.Equal(t, Black, sentinel.color)
	assert.Nil(t, sentinel.left)
	assert.Nil(t, sentinel.right)
	assert.Nil(t, sentinel.parent)
	assert.Same(t, sentinel, tree.bst.root)
}

func TestDeleteFixupCases(t *testing.T) {
	// Each sequence drives a deletion through a different branch of the
	// fix-up; the checker must pass after every step.
	tests := []struct {
		name    string
		inserts []int
		deletes []int
	}{
		{"RedLeaf", []int{20, 10, 30}, []int{10}},
		{"RedChildTakesOver", []int{20, 10, 30, 5}, []int{10}},
		{"RedSibling", []int{10, 5, 30, 20, 40, 25, 35, 50}, []int{5}},
		{"BlackSiblingBlackNephews", []int{20, 10, 30, 5, 15, 25, 35, 1}, []int{1, 5, 15}},
		{"RedParentAbsorbs", []int{20, 10, 30, 5, 15, 25, 35, 1}, []int{1, 25, 35, 30}},
		{"NearNephewRed", []int{20, 10, 30, 25}, []int{10}},
		{"FarNephewRed", []int{20, 10, 30, 35}, []int{10}},
		{"MirrorNearNephewRed", []int{20, 10, 30, 15}, []int{30}},
		{"MirrorFarNephewRed", []int{20, 10, 30, 5}, []int{30}},
		{"Root", []int{1}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New[int, int]()
			for _, k := range tt.inserts {
				tree.Insert(k, k)
			}
			require.NoError(t, tree.Verify())
			for _, k := range tt.deletes {
				_, ok := tree.Delete(k)
				require.True(t, ok, "delete %d", k)
				require.NoError(t, tree.Verify(), "after delete %d", k)
				assert.False(t, tree.Contains(k))
			}
			assert.Equal(t, len(tt.inserts)-len(tt.deletes), tree.Len())
		})
	}
}
