package idempotency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireOnce(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()

	won, err := ledger.Acquire(ctx, "idem:u:ev")
	require.NoError(t, err)
	assert.True(t, won)

	won, err = ledger.Acquire(ctx, "idem:u:ev")
	require.NoError(t, err)
	assert.False(t, won)
}

func TestConcurrentAcquireSingleWinner(t *testing.T) {
	ledger := NewInMemoryLedger()
	ctx := context.Background()
	const goroutines = 64

	var wg sync.WaitGroup
	var wins atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := ledger.Acquire(ctx, "idem:u:contended")
			assert.NoError(t, err)
			if won {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestKeyDeterministic(t *testing.T) {
	assert.Equal(t, "idem:user-1:room-grant:0x2a:user-1:writer",
		Key("user-1", "room-grant:0x2a:user-1:writer"))
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("a", "c"))
}
