package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTreePushAndAt(t *testing.T) {
	tree := NewSearchTree(1)
	ref, ok := tree.Push(Node{Visits: 7})
	require.True(t, ok)
	assert.Equal(t, uint32(0), ref)
	assert.Equal(t, uint32(7), tree.At(ref).Visits)
}

func TestSearchTreeFillsGracefully(t *testing.T) {
	tree := NewSearchTree(1)
	tree.halfSize = 2
	tree.halves[0] = newTreeHalf(2)
	tree.halves[1] = newTreeHalf(2)

	_, ok := tree.Push(Node{})
	require.True(t, ok)
	_, ok = tree.Push(Node{})
	require.True(t, ok)
	_, ok = tree.Push(Node{})
	assert.False(t, ok, "pushing past half capacity must fail, not panic")
}

func TestSearchTreeCopyChildren(t *testing.T) {
	tree := NewSearchTree(1)
	rootRef, _ := tree.Push(Node{})

	childA, _ := tree.Push(Node{Policy: 0.6})
	childB, _ := tree.Push(Node{Policy: 0.4})
	tree.At(rootRef).FirstChild = childA
	tree.At(rootRef).ChildCount = 2
	require.Equal(t, childB, childA+1)

	tree.SwitchHalves()

	ok := tree.CopyChildren(tree.RootRef())
	require.True(t, ok)

	start, end := tree.At(tree.RootRef()).ChildrenRange()
	assert.Equal(t, uint32(tree.currentHalf)<<31, start&^indexMask)
	assert.Equal(t, uint32(2), end-start)
	assert.Equal(t, float32(0.6), tree.At(start).Policy)
}

func TestSearchTreeSwitchHalvesCarriesRoot(t *testing.T) {
	tree := NewSearchTree(1)
	rootRef, _ := tree.Push(Node{Visits: 42})

	tree.SwitchHalves()

	newRoot := tree.At(tree.RootRef())
	assert.Equal(t, uint32(42), newRoot.Visits)
	assert.NotEqual(t, rootRef>>31, tree.RootRef()>>31)
}

func TestSearchTreeDereferenceScrubsDanglingChildren(t *testing.T) {
	tree := NewSearchTree(1)
	rootRef, _ := tree.Push(Node{})
	childRef, _ := tree.Push(Node{})
	tree.At(rootRef).FirstChild = childRef
	tree.At(rootRef).ChildCount = 1

	// Point a sibling node's children into the half about to be cleared,
	// mimicking a node left behind after a previous switch.
	strayRef, _ := tree.Push(Node{})
	tree.At(strayRef).FirstChild = 1<<31 | 0
	tree.At(strayRef).ChildCount = 1

	tree.SwitchHalves()

	assert.Equal(t, nullRef, tree.At(strayRef).FirstChild)
	assert.Equal(t, uint8(0), tree.At(strayRef).ChildCount)
}

func TestSearchTreeHashfull(t *testing.T) {
	tree := NewSearchTree(1)
	tree.halfSize = 10
	tree.halves[0] = newTreeHalf(10)
	tree.Push(Node{})
	tree.Push(Node{})
	assert.Equal(t, uint16(200), tree.Hashfull())
}

func TestSearchTreeResetClearsBothHalves(t *testing.T) {
	tree := NewSearchTree(1)
	tree.Push(Node{})
	tree.SwitchHalves()
	tree.Push(Node{})

	tree.Reset()
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.currentHalf)
}
