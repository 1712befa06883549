// Package store persists groups and their Merkle trees. An off-band indexer
// creates and updates these records; the service layer only reads them.
package store

import (
	"context"

	"credchat/internal/registry/models"
	id "credchat/pkg/domain"
)

// Store is the group registry persistence contract.
//
// FindByRoot must be an exact-match lookup across every root ever published
// for any group (active and historical). It is the anchor of trust for proof
// verification and returns sentinel.ErrNotFound for any root the registry
// never issued.
type Store interface {
	FindByID(ctx context.Context, groupID id.GroupID) (models.Group, error)
	FindByRoot(ctx context.Context, root models.Root) (models.Group, error)
	FindTree(ctx context.Context, groupID id.GroupID) (models.MerkleTree, error)

	// SaveGroup upserts a group. A changed active root is appended to the
	// published-root history; prior roots are never removed.
	SaveGroup(ctx context.Context, group models.Group) error
	// SaveTree replaces the distributed tree for a group.
	SaveTree(ctx context.Context, groupID id.GroupID, tree models.MerkleTree) error
}
