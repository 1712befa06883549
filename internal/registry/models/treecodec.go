package models

import (
	"encoding/binary"
	"fmt"
)

// Wire format for distributed trees, read by provers:
//
//	[4]  tree id, big-endian
//	[4]  layer count, big-endian
//	per layer:
//	  [4]  node count, big-endian
//	  [32] * count  nodes
//
// Nodes are fixed 32-byte values; layer 0 carries the padded address leaves.

const treeNodeSize = 32

// maxCodecNodes bounds decode allocations for untrusted blobs.
const maxCodecNodes = 1 << 22

// EncodeTree serializes a tree into the distribution format.
func EncodeTree(tree MerkleTree) []byte {
	size := 8
	for _, layer := range tree.Layers {
		size += 4 + treeNodeSize*len(layer)
	}

	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, tree.TreeID)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(tree.Layers)))
	for _, layer := range tree.Layers {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(layer)))
		for _, node := range layer {
			buf = append(buf, node[:]...)
		}
	}
	return buf
}

// DecodeTree parses a distribution blob back into a tree. The root is taken
// from the top layer; blobs whose layer structure is inconsistent are
// rejected rather than patched up.
func DecodeTree(blob []byte) (MerkleTree, error) {
	if len(blob) < 8 {
		return MerkleTree{}, fmt.Errorf("tree blob too short: %d bytes", len(blob))
	}

	tree := MerkleTree{TreeID: binary.BigEndian.Uint32(blob[:4])}
	layerCount := binary.BigEndian.Uint32(blob[4:8])
	offset := 8

	var total uint64
	for l := uint32(0); l < layerCount; l++ {
		if len(blob)-offset < 4 {
			return MerkleTree{}, fmt.Errorf("tree blob truncated at layer %d header", l)
		}
		count := binary.BigEndian.Uint32(blob[offset : offset+4])
		offset += 4

		total += uint64(count)
		if total > maxCodecNodes {
			return MerkleTree{}, fmt.Errorf("tree blob exceeds %d nodes", maxCodecNodes)
		}
		if len(blob)-offset < treeNodeSize*int(count) {
			return MerkleTree{}, fmt.Errorf("tree blob truncated in layer %d", l)
		}

		layer := make([][32]byte, count)
		for i := range layer {
			copy(layer[i][:], blob[offset:offset+treeNodeSize])
			offset += treeNodeSize
		}
		tree.Layers = append(tree.Layers, layer)
	}

	if offset != len(blob) {
		return MerkleTree{}, fmt.Errorf("tree blob has %d trailing bytes", len(blob)-offset)
	}
	if len(tree.Layers) == 0 || len(tree.Layers[len(tree.Layers)-1]) != 1 {
		return MerkleTree{}, fmt.Errorf("tree blob top layer must hold exactly the root")
	}
	tree.Root = Root(tree.Layers[len(tree.Layers)-1][0])
	return tree, nil
}
