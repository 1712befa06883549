//go:build integration

package store_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"credchat/internal/access/models"
	"credchat/internal/access/store"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"
	"credchat/pkg/testutil/containers"
)

type PostgresAccessSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	users    *store.PostgresUsers
	rooms    *store.PostgresRooms
}

func TestPostgresAccessSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAccessSuite))
}

func (s *PostgresAccessSuite) SetupSuite() {
	ctx := context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.users = store.NewPostgresUsers(s.postgres.DB)
	s.rooms = store.NewPostgresRooms(s.postgres.DB)
	s.Require().NoError(s.users.EnsureSchema(ctx))
	s.Require().NoError(s.rooms.EnsureSchema(ctx))
}

func (s *PostgresAccessSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "room_members", "user_creddd", "user_addresses", "users")
	s.Require().NoError(err)
}

func (s *PostgresAccessSuite) newUser() models.User {
	user := models.User{
		ID:           id.UserID(uuid.New()),
		PrivyAddress: s.randomAddress(),
	}
	s.Require().NoError(s.users.Create(context.Background(), user))
	return user
}

func (s *PostgresAccessSuite) randomAddress() id.Address {
	raw := uuid.New()
	var b [20]byte
	copy(b[:], raw[:])
	addr, err := id.AddressFromBytes(b[:])
	s.Require().NoError(err)
	return addr
}

// Concurrent grants for the same (room, user, role) must produce exactly one
// membership row, with exactly one caller observing added=true.
func (s *PostgresAccessSuite) TestConcurrentAddMember() {
	ctx := context.Background()
	user := s.newUser()
	roomID := id.RoomID("0x2a")
	const goroutines = 50

	var wg sync.WaitGroup
	var addedCount atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added, err := s.rooms.AddMember(ctx, roomID, user.ID, models.RoleWriter)
			s.NoError(err)
			if added {
				addedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), addedCount.Load())

	room, err := s.rooms.FindByID(ctx, roomID)
	s.Require().NoError(err)
	s.Equal([]id.UserID{user.ID}, room.WriterIDs)
}

func (s *PostgresAccessSuite) TestAddCredddDuplicate() {
	ctx := context.Background()
	user := s.newUser()
	groupID := id.GroupID(uuid.New())

	added, err := s.users.AddCreddd(ctx, user.ID, groupID)
	s.Require().NoError(err)
	s.True(added)

	added, err = s.users.AddCreddd(ctx, user.ID, groupID)
	s.Require().NoError(err)
	s.False(added)

	got, err := s.users.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal([]id.GroupID{groupID}, got.AddedCreddd)
}

func (s *PostgresAccessSuite) TestFindByConnectedAddress() {
	ctx := context.Background()
	user := s.newUser()
	connected := s.randomAddress()

	_, err := s.users.AddConnectedAddress(ctx, user.ID, connected)
	s.Require().NoError(err)

	byPrimary, err := s.users.FindByAddress(ctx, user.PrivyAddress)
	s.Require().NoError(err)
	s.Equal(user.ID, byPrimary.ID)

	byConnected, err := s.users.FindByAddress(ctx, connected)
	s.Require().NoError(err)
	s.Equal(user.ID, byConnected.ID)
}

func (s *PostgresAccessSuite) TestRemoveMember() {
	ctx := context.Background()
	user := s.newUser()
	roomID := id.RoomID("0x2a")

	other := s.newUser()
	_, err := s.rooms.AddMember(ctx, roomID, other.ID, models.RoleWriter)
	s.Require().NoError(err)
	_, err = s.rooms.AddMember(ctx, roomID, user.ID, models.RoleReader)
	s.Require().NoError(err)
	s.Require().NoError(s.rooms.RemoveMember(ctx, roomID, user.ID, models.RoleReader))

	room, err := s.rooms.FindByID(ctx, roomID)
	s.Require().NoError(err)
	s.Empty(room.ReaderIDs)

	// Removing an absent member is a no-op.
	s.NoError(s.rooms.RemoveMember(ctx, roomID, user.ID, models.RoleReader))
}

func (s *PostgresAccessSuite) TestFindMissing() {
	_, err := s.users.FindByAddress(context.Background(), s.randomAddress())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
