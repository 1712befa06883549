package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"credchat/internal/access/models"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"
)

// PostgresUsers persists accounts. Set unions are conditional inserts into
// join tables, never read-then-overwrite, so concurrent grants for the same
// user are serialized by the database rather than application locks.
type PostgresUsers struct {
	db *sql.DB
}

func NewPostgresUsers(db *sql.DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

// UsersSchema is the DDL the user store expects.
const UsersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id             UUID PRIMARY KEY,
	privy_address  BYTEA NOT NULL UNIQUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_addresses (
	user_id  UUID NOT NULL REFERENCES users(id),
	address  BYTEA NOT NULL,
	PRIMARY KEY (user_id, address)
);
CREATE INDEX IF NOT EXISTS user_addresses_by_address ON user_addresses (address);

CREATE TABLE IF NOT EXISTS user_creddd (
	user_id   UUID NOT NULL REFERENCES users(id),
	group_id  UUID NOT NULL,
	PRIMARY KEY (user_id, group_id)
);
`

func (s *PostgresUsers) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, UsersSchema); err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

func (s *PostgresUsers) FindByID(ctx context.Context, userID id.UserID) (models.User, error) {
	return s.loadUser(ctx, `SELECT id, privy_address, created_at FROM users WHERE id = $1`, uuid.UUID(userID))
}

func (s *PostgresUsers) FindByAddress(ctx context.Context, addr id.Address) (models.User, error) {
	return s.loadUser(ctx, `
		SELECT u.id, u.privy_address, u.created_at
		FROM users u
		WHERE u.privy_address = $1
		   OR u.id IN (SELECT user_id FROM user_addresses WHERE address = $1)
		LIMIT 1
	`, addr.Bytes())
}

func (s *PostgresUsers) loadUser(ctx context.Context, query string, arg any) (models.User, error) {
	var (
		user    models.User
		rawID   uuid.UUID
		rawAddr []byte
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&rawID, &rawAddr, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	user.ID = id.UserID(rawID)
	if user.PrivyAddress, err = id.AddressFromBytes(rawAddr); err != nil {
		return models.User{}, fmt.Errorf("load user address: %w", err)
	}

	addrRows, err := s.db.QueryContext(ctx, `SELECT address FROM user_addresses WHERE user_id = $1`, rawID)
	if err != nil {
		return models.User{}, fmt.Errorf("list connected addresses: %w", err)
	}
	defer addrRows.Close()
	for addrRows.Next() {
		var raw []byte
		if err := addrRows.Scan(&raw); err != nil {
			return models.User{}, fmt.Errorf("scan connected address: %w", err)
		}
		addr, err := id.AddressFromBytes(raw)
		if err != nil {
			return models.User{}, err
		}
		user.ConnectedAddresses = append(user.ConnectedAddresses, addr)
	}
	if err := addrRows.Err(); err != nil {
		return models.User{}, err
	}

	credRows, err := s.db.QueryContext(ctx, `SELECT group_id FROM user_creddd WHERE user_id = $1`, rawID)
	if err != nil {
		return models.User{}, fmt.Errorf("list creddd: %w", err)
	}
	defer credRows.Close()
	for credRows.Next() {
		var raw uuid.UUID
		if err := credRows.Scan(&raw); err != nil {
			return models.User{}, fmt.Errorf("scan creddd: %w", err)
		}
		user.AddedCreddd = append(user.AddedCreddd, id.GroupID(raw))
	}
	return user, credRows.Err()
}

func (s *PostgresUsers) Create(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, privy_address) VALUES ($1, $2)
	`, uuid.UUID(user.ID), user.PrivyAddress.Bytes())
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresUsers) AddCreddd(ctx context.Context, userID id.UserID, groupID id.GroupID) (bool, error) {
	// Conditional insert: the affected-row count distinguishes a fresh
	// grant from a duplicate submission without a prior read.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_creddd (user_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, group_id) DO NOTHING
	`, uuid.UUID(userID), uuid.UUID(groupID))
	if err != nil {
		return false, fmt.Errorf("add creddd: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add creddd rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresUsers) AddConnectedAddress(ctx context.Context, userID id.UserID, addr id.Address) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_addresses (user_id, address)
		VALUES ($1, $2)
		ON CONFLICT (user_id, address) DO NOTHING
	`, uuid.UUID(userID), addr.Bytes())
	if err != nil {
		return false, fmt.Errorf("add connected address: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add connected address rows: %w", err)
	}
	return affected > 0, nil
}

// PostgresRooms persists room permission sets as one membership row per
// (room, user, tier). Unions are conditional inserts, making concurrent
// duplicate grants converge on a single row.
type PostgresRooms struct {
	db *sql.DB
}

func NewPostgresRooms(db *sql.DB) *PostgresRooms {
	return &PostgresRooms{db: db}
}

// RoomsSchema is the DDL the room store expects.
const RoomsSchema = `
CREATE TABLE IF NOT EXISTS room_members (
	room_id  TEXT NOT NULL,
	user_id  UUID NOT NULL,
	role     TEXT NOT NULL CHECK (role IN ('writer', 'reader', 'joined')),
	PRIMARY KEY (room_id, user_id, role)
);
CREATE INDEX IF NOT EXISTS room_members_by_room ON room_members (room_id, role);
`

func (s *PostgresRooms) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, RoomsSchema); err != nil {
		return fmt.Errorf("ensure rooms schema: %w", err)
	}
	return nil
}

func (s *PostgresRooms) FindByID(ctx context.Context, roomID id.RoomID) (models.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, role FROM room_members WHERE room_id = $1
	`, string(roomID))
	if err != nil {
		return models.Room{}, fmt.Errorf("load room: %w", err)
	}
	defer rows.Close()

	room := models.Room{ID: roomID}
	found := false
	for rows.Next() {
		found = true
		var (
			rawID uuid.UUID
			role  string
		)
		if err := rows.Scan(&rawID, &role); err != nil {
			return models.Room{}, fmt.Errorf("scan room member: %w", err)
		}
		userID := id.UserID(rawID)
		switch models.Role(role) {
		case models.RoleWriter:
			room.WriterIDs = append(room.WriterIDs, userID)
		case models.RoleReader:
			room.ReaderIDs = append(room.ReaderIDs, userID)
		case models.RoleJoined:
			room.JoinedUserIDs = append(room.JoinedUserIDs, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return models.Room{}, err
	}
	if !found {
		return models.Room{}, sentinel.ErrNotFound
	}
	return room, nil
}

func (s *PostgresRooms) AddMember(ctx context.Context, roomID id.RoomID, userID id.UserID, role models.Role) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO room_members (room_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, user_id, role) DO NOTHING
	`, string(roomID), uuid.UUID(userID), string(role))
	if err != nil {
		return false, fmt.Errorf("add room member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add room member rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresRooms) RemoveMember(ctx context.Context, roomID id.RoomID, userID id.UserID, role models.Role) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM room_members WHERE room_id = $1 AND user_id = $2 AND role = $3
	`, string(roomID), uuid.UUID(userID), string(role))
	if err != nil {
		return fmt.Errorf("remove room member: %w", err)
	}
	return nil
}
