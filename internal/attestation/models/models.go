// Package models defines the accepted-attestation record.
package models

import (
	"time"

	id "credchat/pkg/domain"
)

// Attestation is a persisted, fully verified claim that a user holds a
// group's credential. One attestation exists per (user, group) pair;
// re-submitting the same pair is a no-op, never an error.
//
// Partial verification is never persisted: an Attestation exists only after
// every binding check has passed.
type Attestation struct {
	UserID           id.UserID
	GroupID          id.GroupID
	Proof            []byte
	BindingSignature []byte
	CreatedAt        time.Time
}
