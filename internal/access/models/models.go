// Package models defines the permission-set types AccessGrantor mutates.
package models

import (
	"time"

	dErrors "credchat/pkg/domain-errors"
	id "credchat/pkg/domain"
)

// Role is a room permission tier. The set is closed: adding a tier means a
// new constant, never free-form strings at call sites.
type Role string

const (
	// RoleWriter grants full read/write participation.
	RoleWriter Role = "writer"
	// RoleReader grants read-only access (e.g. paid entry).
	RoleReader Role = "reader"
	// RoleJoined marks that the user has opened the room. It is not
	// grantable through GrantRoomRole; it tracks room-entry lifecycle.
	RoleJoined Role = "joined"
)

// ParseGrantableRole accepts only tiers GrantRoomRole may union.
func ParseGrantableRole(s string) (Role, error) {
	switch Role(s) {
	case RoleWriter:
		return RoleWriter, nil
	case RoleReader:
		return RoleReader, nil
	default:
		return "", dErrors.Newf(dErrors.CodeValidation, "role must be %q or %q", RoleWriter, RoleReader)
	}
}

// User is a chat account. PrivyAddress is the primary identity-binding
// address; ConnectedAddresses and AddedCreddd are deduplicated sets that
// only grow through set-union operations.
type User struct {
	ID                 id.UserID
	PrivyAddress       id.Address
	ConnectedAddresses []id.Address
	AddedCreddd        []id.GroupID
	CreatedAt          time.Time
}

// HasCreddd reports whether the user already holds the credential.
func (u User) HasCreddd(groupID id.GroupID) bool {
	for _, g := range u.AddedCreddd {
		if g == groupID {
			return true
		}
	}
	return false
}

// Room holds the three permission sets. Sets are unordered and
// deduplicated; writer membership implies eligibility to join, the inverse
// does not hold.
type Room struct {
	ID            id.RoomID
	WriterIDs     []id.UserID
	ReaderIDs     []id.UserID
	JoinedUserIDs []id.UserID
}

// Members returns the set for the given tier.
func (r Room) Members(role Role) []id.UserID {
	switch role {
	case RoleWriter:
		return r.WriterIDs
	case RoleReader:
		return r.ReaderIDs
	case RoleJoined:
		return r.JoinedUserIDs
	}
	return nil
}

// Has reports tier membership.
func (r Room) Has(role Role, userID id.UserID) bool {
	for _, member := range r.Members(role) {
		if member == userID {
			return true
		}
	}
	return false
}
