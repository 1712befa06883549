// Package access is the single authority over room permission sets and user
// credential lists. Verifiers hand it accepted evidence; nothing else writes
// this state, and every mutation is an idempotent set union so duplicate or
// out-of-order delivery converges on the same end state.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"credchat/internal/access/models"
	"credchat/internal/access/store"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"

	dErrors "credchat/pkg/domain-errors"
)

// Notifier delivers a "room granted" side effect. Implementations must be
// safe to call repeatedly for the same event; the service only calls it for
// freshly added grants, and the notifier's own ledger guards re-delivery.
type Notifier interface {
	RoomGranted(ctx context.Context, roomID id.RoomID, userID id.UserID, eventID string)
}

// Service implements the access grantor.
type Service struct {
	users    store.UserStore
	rooms    store.RoomStore
	notifier Notifier
	logger   *slog.Logger
}

func NewService(users store.UserStore, rooms store.RoomStore, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{users: users, rooms: rooms, notifier: notifier, logger: logger}
}

// GrantRoomRole unions the user into the room's writer or reader set.
// Already-granted is a logged no-op, not an error: grant evidence is often
// observed more than once (request retries, realtime re-delivery) and the
// end state must not depend on how many times it arrives.
func (s *Service) GrantRoomRole(ctx context.Context, roomID id.RoomID, userID id.UserID, role models.Role) error {
	if role != models.RoleWriter && role != models.RoleReader {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "role %q is not grantable", role)
	}

	added, err := s.rooms.AddMember(ctx, roomID, userID, role)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant room role")
	}
	if !added {
		s.logger.DebugContext(ctx, "room role already granted",
			"room_id", roomID,
			"user_id", userID,
			"role", role,
		)
		return nil
	}

	s.logger.InfoContext(ctx, "room role granted",
		"room_id", roomID,
		"user_id", userID,
		"role", role,
	)
	if s.notifier != nil {
		// Deterministic event id: re-observing the same grant produces the
		// same id, so the notification ledger dedupes it.
		eventID := fmt.Sprintf("room-grant:%s:%s:%s", roomID, userID, role)
		s.notifier.RoomGranted(ctx, roomID, userID, eventID)
	}
	return nil
}

// RecordCredential unions the group into the user's credential list.
// Returns added=false for a duplicate submission - a no-op the caller may
// count for telemetry, never an error.
func (s *Service) RecordCredential(ctx context.Context, userID id.UserID, groupID id.GroupID) (bool, error) {
	added, err := s.users.AddCreddd(ctx, userID, groupID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, dErrors.New(dErrors.CodeAccountNotFound, "no account for user")
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record credential")
	}
	if !added {
		s.logger.WarnContext(ctx, "credential already recorded",
			"user_id", userID,
			"group_id", groupID,
		)
	}
	return added, nil
}

// ConnectAddress unions a verified wallet address into the user's set.
func (s *Service) ConnectAddress(ctx context.Context, userID id.UserID, addr id.Address) error {
	_, err := s.users.AddConnectedAddress(ctx, userID, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeAccountNotFound, "no account for user")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to connect address")
	}
	return nil
}

// JoinRoom records that a writer or reader opened the room. Joining never
// grants access by itself.
func (s *Service) JoinRoom(ctx context.Context, roomID id.RoomID, userID id.UserID) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "room not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load room")
	}
	if !room.Has(models.RoleWriter, userID) && !room.Has(models.RoleReader, userID) {
		return dErrors.New(dErrors.CodeForbidden, "user has no access to room")
	}
	if _, err := s.rooms.AddMember(ctx, roomID, userID, models.RoleJoined); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to join room")
	}
	return nil
}

// RemoveFromRoom revokes reader access and joined state. Writer removal is
// deliberately absent: proof-earned grants have no revocation path today.
func (s *Service) RemoveFromRoom(ctx context.Context, roomID id.RoomID, userID id.UserID) error {
	if err := s.rooms.RemoveMember(ctx, roomID, userID, models.RoleReader); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove reader")
	}
	if err := s.rooms.RemoveMember(ctx, roomID, userID, models.RoleJoined); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove joined state")
	}
	return nil
}

// ResolveAccount finds the user owning the address (primary or connected).
func (s *Service) ResolveAccount(ctx context.Context, addr id.Address) (models.User, error) {
	user, err := s.users.FindByAddress(ctx, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve account")
	}
	return user, nil
}

// Room returns the room's current permission sets.
func (s *Service) Room(ctx context.Context, roomID id.RoomID) (models.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Room{}, dErrors.New(dErrors.CodeNotFound, "room not found")
	}
	if err != nil {
		return models.Room{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load room")
	}
	return room, nil
}
