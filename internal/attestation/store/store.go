// Package store persists accepted attestations.
package store

import (
	"context"

	"credchat/internal/attestation/models"
	id "credchat/pkg/domain"
)

// Store records fully verified attestations. Save is idempotent on the
// (user, group) pair: the first write wins and later writes report
// added=false without touching the stored record.
type Store interface {
	// Save inserts the attestation unless one already exists for the same
	// user and group. It reports whether a new record was created.
	Save(ctx context.Context, a models.Attestation) (added bool, err error)

	// FindByUser returns every attestation held by the user, newest first.
	FindByUser(ctx context.Context, userID id.UserID) ([]models.Attestation, error)
}
