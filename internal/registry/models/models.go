// Package models defines the group registry types: reputation groups and the
// Merkle trees that anchor their member sets.
package models

import (
	"encoding/hex"
	"fmt"
	"time"

	id "credchat/pkg/domain"
)

// Root is a 32-byte Merkle root. Roots are the trust anchor for membership
// proofs: only roots published by the registry are ever trusted.
type Root [32]byte

// RootFromBytes builds a Root from exactly 32 bytes.
func RootFromBytes(b []byte) (Root, error) {
	var r Root
	if len(b) != len(r) {
		return Root{}, fmt.Errorf("root must be exactly %d bytes, got %d", len(r), len(b))
	}
	copy(r[:], b)
	return r, nil
}

// Hex returns the 0x-prefixed lowercase hex form.
func (r Root) Hex() string {
	return "0x" + hex.EncodeToString(r[:])
}

// IsZero reports whether the root is all zeroes.
func (r Root) IsZero() bool {
	return r == Root{}
}

// Group is a named reputation cohort. ActiveRoot anchors the current member
// set; RootHistory holds every previously published root. Old roots never
// expire from the trust set, so proofs generated against them stay valid.
type Group struct {
	ID          id.GroupID
	DisplayName string

	// RoomID is the chat room a verified member of this group can write in.
	RoomID id.RoomID

	ActiveRoot  Root
	RootHistory []Root

	UpdatedAt time.Time
}

// TrustedRoots returns the active root plus all historical roots.
func (g Group) TrustedRoots() []Root {
	roots := make([]Root, 0, len(g.RootHistory)+1)
	if !g.ActiveRoot.IsZero() {
		roots = append(roots, g.ActiveRoot)
	}
	return append(roots, g.RootHistory...)
}

// MerkleTree is a full tree distributed to provers. Layer 0 holds the leaves
// (20-byte member addresses left-padded into 32-byte nodes); each following
// layer halves until the single root node.
type MerkleTree struct {
	TreeID uint32
	Root   Root
	Layers [][][32]byte
}

// Leaves returns layer 0, or nil for an empty tree.
func (t MerkleTree) Leaves() [][32]byte {
	if len(t.Layers) == 0 {
		return nil
	}
	return t.Layers[0]
}
