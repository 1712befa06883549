package registry

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"credchat/internal/registry/models"
	id "credchat/pkg/domain"
)

// Tree hashing uses MiMC over the BN254 scalar field, the same permutation
// the membership circuit enforces, so a root computed here is verifiable
// in-circuit without any re-encoding.

// LeafNode converts a 20-byte member address into a 32-byte tree node by
// left-padding. The padded value stays below the field modulus, so it is a
// valid MiMC input as-is.
func LeafNode(addr id.Address) [32]byte {
	var node [32]byte
	copy(node[12:], addr.Bytes())
	return node
}

// hashPair computes parent = MiMC(left, right).
func hashPair(left, right [32]byte) [32]byte {
	h := mimc.NewMiMC()
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// BuildTree constructs a full Merkle tree over the given member addresses.
// Leaf order is preserved; an odd node is promoted to the next layer
// unchanged. An empty member set yields a single zero leaf so every group
// has a well-defined root.
func BuildTree(treeID uint32, members []id.Address) models.MerkleTree {
	leaves := make([][32]byte, 0, max(len(members), 1))
	for _, m := range members {
		leaves = append(leaves, LeafNode(m))
	}
	if len(leaves) == 0 {
		leaves = append(leaves, [32]byte{})
	}

	layers := [][][32]byte{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([][32]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 == len(current) {
				next = append(next, current[i])
				continue
			}
			next = append(next, hashPair(current[i], current[i+1]))
		}
		layers = append(layers, next)
		current = next
	}

	return models.MerkleTree{
		TreeID: treeID,
		Root:   models.Root(current[0]),
		Layers: layers,
	}
}

// LeafIndex returns the position of the address in the tree's leaf set, or
// -1 when absent. Membership is an exact byte match of the padded address
// against a leaf; there is no partial or fuzzy matching.
func LeafIndex(tree models.MerkleTree, addr id.Address) int {
	want := LeafNode(addr)
	for i, leaf := range tree.Leaves() {
		if leaf == want {
			return i
		}
	}
	return -1
}
