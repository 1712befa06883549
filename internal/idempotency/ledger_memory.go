package idempotency

import (
	"context"
	"sync"
)

// InMemoryLedger is the process-local ledger for dev mode and unit tests.
// The mutex makes check-and-record one atomic step, matching the SETNX
// semantics of the Redis ledger.
type InMemoryLedger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{seen: make(map[string]struct{})}
}

func (l *InMemoryLedger) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = struct{}{}
	return true, nil
}
