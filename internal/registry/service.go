// Package registry reads and distributes the Merkle trees that define
// reputation groups. Trees are produced by an off-band indexer; this service
// is the read side the verification pipeline trusts.
package registry

import (
	"context"
	"errors"
	"log/slog"

	"credchat/internal/registry/models"
	"credchat/internal/registry/store"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"

	dErrors "credchat/pkg/domain-errors"
)

// Service exposes registry lookups over a Store.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// ActiveRoot returns the group's current Merkle root.
func (s *Service) ActiveRoot(ctx context.Context, groupID id.GroupID) (models.Root, error) {
	group, err := s.store.FindByID(ctx, groupID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Root{}, dErrors.New(dErrors.CodeNotFound, "group not found")
	}
	if err != nil {
		return models.Root{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load group")
	}
	return group.ActiveRoot, nil
}

// GroupByRoot resolves the group that published the given root. This is the
// anchor of trust for proof verification: a root the registry never issued
// fails here no matter how valid the proof is, so the lookup is an exact
// match with no fallback.
func (s *Service) GroupByRoot(ctx context.Context, root models.Root) (models.Group, error) {
	group, err := s.store.FindByRoot(ctx, root)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Group{}, dErrors.New(dErrors.CodeUnknownGroupRoot, "root was never published by the registry")
	}
	if err != nil {
		return models.Group{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve root")
	}
	return group, nil
}

// Tree returns the group's full distributed tree.
func (s *Service) Tree(ctx context.Context, groupID id.GroupID) (models.MerkleTree, error) {
	tree, err := s.store.FindTree(ctx, groupID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.MerkleTree{}, dErrors.New(dErrors.CodeNotFound, "group tree not found")
	}
	if err != nil {
		return models.MerkleTree{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load group tree")
	}
	return tree, nil
}

// HasLeaf reports whether the address is a member of the group's current
// tree leaf set (exact 20-byte match).
func (s *Service) HasLeaf(ctx context.Context, groupID id.GroupID, addr id.Address) (bool, error) {
	tree, err := s.Tree(ctx, groupID)
	if err != nil {
		return false, err
	}
	return LeafIndex(tree, addr) >= 0, nil
}

// Publish upserts a group and its tree in one step. Used by the indexer
// import path and test seeding; verification never writes.
func (s *Service) Publish(ctx context.Context, group models.Group, tree models.MerkleTree) error {
	group.ActiveRoot = tree.Root
	if err := s.store.SaveGroup(ctx, group); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save group")
	}
	if err := s.store.SaveTree(ctx, group.ID, tree); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save tree")
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "group root published",
			"group_id", group.ID,
			"root", tree.Root.Hex(),
			"leaves", len(tree.Leaves()),
		)
	}
	return nil
}
