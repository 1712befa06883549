package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyTTL keeps ledger entries for a year. Entries exist to dedupe
// re-delivered events, which arrive within seconds; the long TTL is only a
// safety margin against storage growing without bound.
const keyTTL = 365 * 24 * time.Hour

// RedisLedger is the shared ledger for multi-instance deployments. SETNX is
// the atomic conditional create: exactly one caller per key observes true.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (l *RedisLedger) Acquire(ctx context.Context, key string) (bool, error) {
	won, err := l.client.SetNX(ctx, key, "1", keyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("ledger acquire: %w", err)
	}
	return won, nil
}
