// Package store persists users and room permission sets.
//
// Every mutation is an atomic set-union (or set-remove) at the storage
// layer. There is deliberately no "save whole room" operation: read-modify-
// write of a permission set would race under concurrent grants, so the
// contract only exposes element-level operations the backend can make
// atomic (map insert under lock in memory, INSERT .. ON CONFLICT DO NOTHING
// in Postgres).
package store

import (
	"context"

	"credchat/internal/access/models"
	id "credchat/pkg/domain"
)

// UserStore persists accounts and their grow-only sets.
type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (models.User, error)
	// FindByAddress resolves an account by primary or connected address
	// (exact 20-byte match).
	FindByAddress(ctx context.Context, addr id.Address) (models.User, error)
	Create(ctx context.Context, user models.User) error

	// AddCreddd unions the credential into the user's set. The bool result
	// is false when the credential was already present.
	AddCreddd(ctx context.Context, userID id.UserID, groupID id.GroupID) (bool, error)
	// AddConnectedAddress unions an address into the user's connected set.
	AddConnectedAddress(ctx context.Context, userID id.UserID, addr id.Address) (bool, error)
}

// RoomStore persists room permission sets.
type RoomStore interface {
	FindByID(ctx context.Context, roomID id.RoomID) (models.Room, error)
	// AddMember atomically unions the user into the tier set, creating the
	// room on first touch. Returns false when already a member.
	AddMember(ctx context.Context, roomID id.RoomID, userID id.UserID, role models.Role) (bool, error)
	// RemoveMember removes the user from the tier set; absent is a no-op.
	RemoveMember(ctx context.Context, roomID id.RoomID, userID id.UserID, role models.Role) error
}
