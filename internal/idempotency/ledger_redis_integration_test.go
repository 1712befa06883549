//go:build integration

package idempotency_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"credchat/internal/idempotency"
	"credchat/pkg/testutil/containers"
)

type RedisLedgerSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	ledger *idempotency.RedisLedger
}

func TestRedisLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLedgerSuite))
}

func (s *RedisLedgerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.ledger = idempotency.NewRedisLedger(s.redis.Client)
}

func (s *RedisLedgerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisLedgerSuite) TestAcquireOnce() {
	ctx := context.Background()
	key := idempotency.Key("user-1", "room-grant:0x2a:user-1:writer")

	won, err := s.ledger.Acquire(ctx, key)
	s.Require().NoError(err)
	s.True(won)

	won, err = s.ledger.Acquire(ctx, key)
	s.Require().NoError(err)
	s.False(won)
}

// Concurrent acquires of the same key must elect exactly one winner: this is
// the at-most-once guarantee notifications rely on.
func (s *RedisLedgerSuite) TestConcurrentAcquire() {
	ctx := context.Background()
	key := idempotency.Key("user-2", uuid.NewString())
	const goroutines = 50

	var wg sync.WaitGroup
	var wins atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := s.ledger.Acquire(ctx, key)
			s.NoError(err)
			if won {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
}

func (s *RedisLedgerSuite) TestDistinctKeysIndependent() {
	ctx := context.Background()

	won, err := s.ledger.Acquire(ctx, idempotency.Key("user-3", "event-a"))
	s.Require().NoError(err)
	s.True(won)

	won, err = s.ledger.Acquire(ctx, idempotency.Key("user-3", "event-b"))
	s.Require().NoError(err)
	s.True(won)
}
