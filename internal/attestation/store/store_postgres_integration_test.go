//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"credchat/internal/attestation/models"
	"credchat/internal/attestation/store"
	id "credchat/pkg/domain"
	"credchat/pkg/testutil/containers"
)

type PostgresAttestationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresAttestationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresAttestationSuite))
}

func (s *PostgresAttestationSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresAttestationSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "attestations"))
}

func (s *PostgresAttestationSuite) TestSaveIsIdempotent() {
	ctx := context.Background()
	a := models.Attestation{
		UserID:           id.UserID(uuid.New()),
		GroupID:          id.GroupID(uuid.New()),
		Proof:            []byte{1, 2, 3},
		BindingSignature: make([]byte, 65),
		CreatedAt:        time.Now().UTC(),
	}

	added, err := s.store.Save(ctx, a)
	s.Require().NoError(err)
	s.True(added)

	// The replay carries different bytes; the first write must win.
	replay := a
	replay.Proof = []byte{9, 9, 9}
	added, err = s.store.Save(ctx, replay)
	s.Require().NoError(err)
	s.False(added)

	saved, err := s.store.FindByUser(ctx, a.UserID)
	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	s.Equal([]byte{1, 2, 3}, saved[0].Proof)
}

func (s *PostgresAttestationSuite) TestFindByUserOrdersNewestFirst() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	base := time.Now().UTC().Add(-time.Hour)

	for i := range 3 {
		a := models.Attestation{
			UserID:           userID,
			GroupID:          id.GroupID(uuid.New()),
			Proof:            []byte{byte(i)},
			BindingSignature: make([]byte, 65),
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		added, err := s.store.Save(ctx, a)
		s.Require().NoError(err)
		s.True(added)
	}

	saved, err := s.store.FindByUser(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(saved, 3)
	s.Equal([]byte{2}, saved[0].Proof)
	s.Equal([]byte{0}, saved[2].Proof)
}
