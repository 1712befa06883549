package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"credchat/internal/attestation/models"
	id "credchat/pkg/domain"
)

// Postgres persists accepted attestations.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema is the DDL this store expects. The composite primary key is what
// makes Save idempotent: a replayed pair conflicts and inserts nothing.
const Schema = `
CREATE TABLE IF NOT EXISTS attestations (
	user_id            UUID NOT NULL,
	group_id           UUID NOT NULL,
	proof              BYTEA NOT NULL,
	binding_signature  BYTEA NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, group_id)
);
`

// EnsureSchema applies the attestation DDL.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure attestation schema: %w", err)
	}
	return nil
}

func (s *Postgres) Save(ctx context.Context, a models.Attestation) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attestations (user_id, group_id, proof, binding_signature, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, group_id) DO NOTHING
	`, uuid.UUID(a.UserID), uuid.UUID(a.GroupID), a.Proof, a.BindingSignature, a.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("save attestation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save attestation: %w", err)
	}
	return n > 0, nil
}

func (s *Postgres) FindByUser(ctx context.Context, userID id.UserID) ([]models.Attestation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, group_id, proof, binding_signature, created_at
		FROM attestations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list attestations: %w", err)
	}
	defer rows.Close()

	var out []models.Attestation
	for rows.Next() {
		var (
			a        models.Attestation
			rawUser  uuid.UUID
			rawGroup uuid.UUID
		)
		if err := rows.Scan(&rawUser, &rawGroup, &a.Proof, &a.BindingSignature, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attestation: %w", err)
		}
		a.UserID = id.UserID(rawUser)
		a.GroupID = id.GroupID(rawGroup)
		out = append(out, a)
	}
	return out, rows.Err()
}
