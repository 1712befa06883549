package store

import (
	"context"
	"sort"
	"sync"

	"credchat/internal/attestation/models"
	id "credchat/pkg/domain"
)

type memKey struct {
	user  id.UserID
	group id.GroupID
}

// InMemory is a map-backed Store for tests and dependency-free runs.
type InMemory struct {
	mu   sync.RWMutex
	byID map[memKey]models.Attestation
}

func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[memKey]models.Attestation)}
}

func (s *InMemory) Save(_ context.Context, a models.Attestation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memKey{user: a.UserID, group: a.GroupID}
	if _, ok := s.byID[key]; ok {
		return false, nil
	}
	s.byID[key] = cloneAttestation(a)
	return true, nil
}

func (s *InMemory) FindByUser(_ context.Context, userID id.UserID) ([]models.Attestation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Attestation
	for key, a := range s.byID {
		if key.user == userID {
			out = append(out, cloneAttestation(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func cloneAttestation(a models.Attestation) models.Attestation {
	out := a
	out.Proof = append([]byte(nil), a.Proof...)
	out.BindingSignature = append([]byte(nil), a.BindingSignature...)
	return out
}
