// Package domain provides typed identifiers shared across feature packages.
//
// IDs are distinct named types over uuid.UUID so the compiler rejects
// cross-type assignment (a UserID can never be passed where a GroupID is
// expected). Parse functions enforce the invariant "IDs must be valid,
// non-empty, non-nil UUIDs" at trust boundaries.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "credchat/pkg/domain-errors"
)

// UserID identifies a chat user account.
type UserID uuid.UUID

// GroupID identifies a reputation group (a Merkle-tree cohort).
type GroupID uuid.UUID

// RoomID identifies a chat room. Rooms bought on-chain use the lowercase
// hex form of the portal token id; rooms attached to groups use an
// operator-assigned slug. Either way it is an opaque, non-empty string.
type RoomID string

func parseUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return parsed, nil
}

// ParseUserID validates and returns a UserID.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseGroupID validates and returns a GroupID.
func ParseGroupID(s string) (GroupID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return GroupID{}, err
	}
	return GroupID(parsed), nil
}

// ParseRoomID validates and returns a RoomID.
func ParseRoomID(s string) (RoomID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "room id is required")
	}
	if len(s) > 128 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "room id must be at most 128 characters")
	}
	return RoomID(s), nil
}

func (u UserID) String() string  { return uuid.UUID(u).String() }
func (g GroupID) String() string { return uuid.UUID(g).String() }
func (r RoomID) String() string  { return string(r) }

// IsNil reports whether the ID is the zero value.
func (u UserID) IsNil() bool  { return uuid.UUID(u) == uuid.Nil }
func (g GroupID) IsNil() bool { return uuid.UUID(g) == uuid.Nil }
func (r RoomID) IsNil() bool  { return r == "" }
