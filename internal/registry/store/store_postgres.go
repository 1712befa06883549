package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"credchat/internal/registry/models"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"
)

// Postgres persists groups, published roots, and distributed trees.
// This store is pure I/O; trust decisions belong to the verification services.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema is the DDL this store expects. Integration tests and dev bootstrap
// apply it; production runs migrations out of band.
const Schema = `
CREATE TABLE IF NOT EXISTS groups (
	id            UUID PRIMARY KEY,
	display_name  TEXT NOT NULL,
	room_id       TEXT NOT NULL,
	active_root   BYTEA NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- Every root ever published, active and historical. Append-only: rows are
-- never deleted, so old proofs stay verifiable.
CREATE TABLE IF NOT EXISTS group_roots (
	root      BYTEA PRIMARY KEY,
	group_id  UUID NOT NULL REFERENCES groups(id)
);

CREATE TABLE IF NOT EXISTS group_trees (
	group_id  UUID PRIMARY KEY REFERENCES groups(id),
	tree_id   BIGINT NOT NULL,
	blob      BYTEA NOT NULL
);
`

// EnsureSchema applies the registry DDL.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure registry schema: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, groupID id.GroupID) (models.Group, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, room_id, active_root, updated_at
		FROM groups WHERE id = $1
	`, uuid.UUID(groupID))
	return s.scanGroup(ctx, row)
}

func (s *Postgres) FindByRoot(ctx context.Context, root models.Root) (models.Group, error) {
	// Exact byte-equality lookup against the append-only published set.
	row := s.db.QueryRowContext(ctx, `
		SELECT g.id, g.display_name, g.room_id, g.active_root, g.updated_at
		FROM group_roots r
		JOIN groups g ON g.id = r.group_id
		WHERE r.root = $1
	`, root[:])
	return s.scanGroup(ctx, row)
}

func (s *Postgres) scanGroup(ctx context.Context, row *sql.Row) (models.Group, error) {
	var (
		rawID      uuid.UUID
		group      models.Group
		activeRoot []byte
		roomID     string
	)
	err := row.Scan(&rawID, &group.DisplayName, &roomID, &activeRoot, &group.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("scan group: %w", err)
	}
	group.ID = id.GroupID(rawID)
	group.RoomID = id.RoomID(roomID)
	if group.ActiveRoot, err = models.RootFromBytes(activeRoot); err != nil {
		return models.Group{}, fmt.Errorf("scan group root: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT root FROM group_roots WHERE group_id = $1
	`, rawID)
	if err != nil {
		return models.Group{}, fmt.Errorf("list group roots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return models.Group{}, fmt.Errorf("scan group root: %w", err)
		}
		root, err := models.RootFromBytes(raw)
		if err != nil {
			return models.Group{}, err
		}
		if root != group.ActiveRoot {
			group.RootHistory = append(group.RootHistory, root)
		}
	}
	return group, rows.Err()
}

func (s *Postgres) SaveGroup(ctx context.Context, group models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save group: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO groups (id, display_name, room_id, active_root, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			room_id = EXCLUDED.room_id,
			active_root = EXCLUDED.active_root,
			updated_at = now()
	`, uuid.UUID(group.ID), group.DisplayName, string(group.RoomID), group.ActiveRoot[:])
	if err != nil {
		return fmt.Errorf("save group: %w", err)
	}

	for _, root := range group.TrustedRoots() {
		// Append-only publication: conflicts mean the root is already trusted.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO group_roots (root, group_id)
			VALUES ($1, $2)
			ON CONFLICT (root) DO NOTHING
		`, root[:], uuid.UUID(group.ID))
		if err != nil {
			return fmt.Errorf("publish group root: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Postgres) FindTree(ctx context.Context, groupID id.GroupID) (models.MerkleTree, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT blob FROM group_trees WHERE group_id = $1
	`, uuid.UUID(groupID)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MerkleTree{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.MerkleTree{}, fmt.Errorf("find tree: %w", err)
	}
	tree, err := models.DecodeTree(blob)
	if err != nil {
		return models.MerkleTree{}, fmt.Errorf("decode stored tree: %w", err)
	}
	return tree, nil
}

func (s *Postgres) SaveTree(ctx context.Context, groupID id.GroupID, tree models.MerkleTree) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO group_trees (group_id, tree_id, blob)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id) DO UPDATE SET
			tree_id = EXCLUDED.tree_id,
			blob = EXCLUDED.blob
	`, uuid.UUID(groupID), int64(tree.TreeID), models.EncodeTree(tree))
	if err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	return nil
}
