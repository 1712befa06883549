package store

import (
	"context"
	"sync"
	"time"

	"credchat/internal/access/models"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"
)

// InMemoryUsers is the map-backed user store for dev mode and unit tests.
// The single mutex makes every set union atomic, mirroring the guarantee the
// Postgres store gets from conditional inserts.
type InMemoryUsers struct {
	mu     sync.RWMutex
	users  map[id.UserID]*models.User
	byAddr map[id.Address]id.UserID
}

func NewInMemoryUsers() *InMemoryUsers {
	return &InMemoryUsers{
		users:  make(map[id.UserID]*models.User),
		byAddr: make(map[id.Address]id.UserID),
	}
}

func (s *InMemoryUsers) FindByID(_ context.Context, userID id.UserID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return models.User{}, sentinel.ErrNotFound
	}
	return cloneUser(*user), nil
}

func (s *InMemoryUsers) FindByAddress(_ context.Context, addr id.Address) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byAddr[addr]
	if !ok {
		return models.User{}, sentinel.ErrNotFound
	}
	return cloneUser(*s.users[userID]), nil
}

func (s *InMemoryUsers) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.ID]; exists {
		return sentinel.ErrAlreadyExists
	}
	if _, taken := s.byAddr[user.PrivyAddress]; taken {
		return sentinel.ErrConflict
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := cloneUser(user)
	s.users[user.ID] = &stored
	s.byAddr[user.PrivyAddress] = user.ID
	for _, addr := range user.ConnectedAddresses {
		s.byAddr[addr] = user.ID
	}
	return nil
}

func (s *InMemoryUsers) AddCreddd(_ context.Context, userID id.UserID, groupID id.GroupID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	if user.HasCreddd(groupID) {
		return false, nil
	}
	user.AddedCreddd = append(user.AddedCreddd, groupID)
	return true, nil
}

func (s *InMemoryUsers) AddConnectedAddress(_ context.Context, userID id.UserID, addr id.Address) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	for _, existing := range user.ConnectedAddresses {
		if existing.Equal(addr) {
			return false, nil
		}
	}
	user.ConnectedAddresses = append(user.ConnectedAddresses, addr)
	s.byAddr[addr] = userID
	return true, nil
}

func cloneUser(u models.User) models.User {
	u.ConnectedAddresses = append([]id.Address(nil), u.ConnectedAddresses...)
	u.AddedCreddd = append([]id.GroupID(nil), u.AddedCreddd...)
	return u
}

// InMemoryRooms is the map-backed room store. Rooms materialize on first
// grant; tier sets are maps so unions are naturally idempotent.
type InMemoryRooms struct {
	mu    sync.RWMutex
	rooms map[id.RoomID]map[models.Role]map[id.UserID]struct{}
}

func NewInMemoryRooms() *InMemoryRooms {
	return &InMemoryRooms{
		rooms: make(map[id.RoomID]map[models.Role]map[id.UserID]struct{}),
	}
}

func (s *InMemoryRooms) FindByID(_ context.Context, roomID id.RoomID) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tiers, ok := s.rooms[roomID]
	if !ok {
		return models.Room{}, sentinel.ErrNotFound
	}
	room := models.Room{ID: roomID}
	for userID := range tiers[models.RoleWriter] {
		room.WriterIDs = append(room.WriterIDs, userID)
	}
	for userID := range tiers[models.RoleReader] {
		room.ReaderIDs = append(room.ReaderIDs, userID)
	}
	for userID := range tiers[models.RoleJoined] {
		room.JoinedUserIDs = append(room.JoinedUserIDs, userID)
	}
	return room, nil
}

func (s *InMemoryRooms) AddMember(_ context.Context, roomID id.RoomID, userID id.UserID, role models.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tiers, ok := s.rooms[roomID]
	if !ok {
		tiers = make(map[models.Role]map[id.UserID]struct{})
		s.rooms[roomID] = tiers
	}
	set, ok := tiers[role]
	if !ok {
		set = make(map[id.UserID]struct{})
		tiers[role] = set
	}
	if _, present := set[userID]; present {
		return false, nil
	}
	set[userID] = struct{}{}
	return true, nil
}

func (s *InMemoryRooms) RemoveMember(_ context.Context, roomID id.RoomID, userID id.UserID, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tiers, ok := s.rooms[roomID]; ok {
		delete(tiers[role], userID)
	}
	return nil
}
