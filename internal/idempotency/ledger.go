// Package idempotency guards side effects that must run at most once per
// logical event, even when the triggering change is observed repeatedly.
//
// The contract is a single atomic Acquire: check-and-record in one storage
// operation. A separate exists-then-record pair would race between the check
// and the write, so the interface deliberately does not offer one.
package idempotency

import (
	"context"
	"fmt"
)

// Ledger records which (target, event) side effects have already run.
type Ledger interface {
	// Acquire atomically records the key. True means the caller won the key
	// and must run the side effect; false means it already ran.
	Acquire(ctx context.Context, key string) (bool, error)
}

// Key derives the deterministic ledger key for a delivery target and event.
func Key(target, eventID string) string {
	return fmt.Sprintf("idem:%s:%s", target, eventID)
}
