package store

import (
	"context"
	"sync"
	"time"

	"credchat/internal/registry/models"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"
)

// InMemory is the map-backed registry store used in dev mode and unit tests.
type InMemory struct {
	mu     sync.RWMutex
	groups map[id.GroupID]models.Group
	byRoot map[models.Root]id.GroupID
	trees  map[id.GroupID]models.MerkleTree
}

func NewInMemory() *InMemory {
	return &InMemory{
		groups: make(map[id.GroupID]models.Group),
		byRoot: make(map[models.Root]id.GroupID),
		trees:  make(map[id.GroupID]models.MerkleTree),
	}
}

func (s *InMemory) FindByID(_ context.Context, groupID id.GroupID) (models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[groupID]
	if !ok {
		return models.Group{}, sentinel.ErrNotFound
	}
	return group, nil
}

func (s *InMemory) FindByRoot(_ context.Context, root models.Root) (models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groupID, ok := s.byRoot[root]
	if !ok {
		return models.Group{}, sentinel.ErrNotFound
	}
	return s.groups[groupID], nil
}

func (s *InMemory) FindTree(_ context.Context, groupID id.GroupID) (models.MerkleTree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tree, ok := s.trees[groupID]
	if !ok {
		return models.MerkleTree{}, sentinel.ErrNotFound
	}
	return tree, nil
}

func (s *InMemory) SaveGroup(_ context.Context, group models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.groups[group.ID]; ok && !prev.ActiveRoot.IsZero() && prev.ActiveRoot != group.ActiveRoot {
		group.RootHistory = appendRoot(group.RootHistory, prev.ActiveRoot)
	}
	group.UpdatedAt = time.Now()

	s.groups[group.ID] = group
	for _, root := range group.TrustedRoots() {
		s.byRoot[root] = group.ID
	}
	return nil
}

func (s *InMemory) SaveTree(_ context.Context, groupID id.GroupID, tree models.MerkleTree) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[groupID] = tree
	return nil
}

func appendRoot(history []models.Root, root models.Root) []models.Root {
	for _, existing := range history {
		if existing == root {
			return history
		}
	}
	return append(history, root)
}
