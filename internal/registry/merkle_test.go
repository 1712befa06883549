package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "credchat/pkg/domain"
)

func mustAddr(t *testing.T, s string) id.Address {
	t.Helper()
	addr, err := id.ParseAddress(s)
	require.NoError(t, err)
	return addr
}

func TestLeafNodePadding(t *testing.T) {
	addr := mustAddr(t, "0x1111111111111111111111111111111111111111")
	node := LeafNode(addr)

	assert.Equal(t, make([]byte, 12), node[:12])
	assert.Equal(t, addr.Bytes(), node[12:])
}

func TestBuildTreeSingleMember(t *testing.T) {
	addr := mustAddr(t, "0x1111111111111111111111111111111111111111")
	tree := BuildTree(1, []id.Address{addr})

	require.Len(t, tree.Layers, 1)
	assert.Equal(t, LeafNode(addr), [32]byte(tree.Root))
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(1, nil)

	require.Len(t, tree.Layers, 1)
	assert.Equal(t, [32]byte{}, [32]byte(tree.Root))
}

func TestBuildTreePairs(t *testing.T) {
	members := []id.Address{
		mustAddr(t, "0x1111111111111111111111111111111111111111"),
		mustAddr(t, "0x2222222222222222222222222222222222222222"),
		mustAddr(t, "0x3333333333333333333333333333333333333333"),
		mustAddr(t, "0x4444444444444444444444444444444444444444"),
	}
	tree := BuildTree(7, members)

	require.Len(t, tree.Layers, 3)
	assert.Len(t, tree.Layers[0], 4)
	assert.Len(t, tree.Layers[1], 2)
	assert.Len(t, tree.Layers[2], 1)
	assert.Equal(t, tree.Layers[2][0], [32]byte(tree.Root))
	assert.Equal(t, uint32(7), tree.TreeID)

	assert.Equal(t, hashPair(tree.Layers[0][0], tree.Layers[0][1]), tree.Layers[1][0])
	assert.Equal(t, hashPair(tree.Layers[1][0], tree.Layers[1][1]), tree.Layers[2][0])
}

func TestBuildTreeOddPromotion(t *testing.T) {
	members := []id.Address{
		mustAddr(t, "0x1111111111111111111111111111111111111111"),
		mustAddr(t, "0x2222222222222222222222222222222222222222"),
		mustAddr(t, "0x3333333333333333333333333333333333333333"),
	}
	tree := BuildTree(1, members)

	require.Len(t, tree.Layers, 3)
	// The odd third leaf is carried up unchanged.
	assert.Equal(t, tree.Layers[0][2], tree.Layers[1][1])
}

func TestBuildTreeDeterministic(t *testing.T) {
	members := []id.Address{
		mustAddr(t, "0x1111111111111111111111111111111111111111"),
		mustAddr(t, "0x2222222222222222222222222222222222222222"),
	}
	a := BuildTree(1, members)
	b := BuildTree(1, members)
	assert.Equal(t, a.Root, b.Root)

	// Leaf order is part of the commitment.
	swapped := BuildTree(1, []id.Address{members[1], members[0]})
	assert.NotEqual(t, a.Root, swapped.Root)
}

func TestLeafIndex(t *testing.T) {
	members := []id.Address{
		mustAddr(t, "0x1111111111111111111111111111111111111111"),
		mustAddr(t, "0x2222222222222222222222222222222222222222"),
	}
	tree := BuildTree(1, members)

	assert.Equal(t, 0, LeafIndex(tree, members[0]))
	assert.Equal(t, 1, LeafIndex(tree, members[1]))
	assert.Equal(t, -1, LeafIndex(tree, mustAddr(t, "0x3333333333333333333333333333333333333333")))
}
