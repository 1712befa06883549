package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"credchat/internal/idempotency"
	id "credchat/pkg/domain"
)

// fakeProducer records produced messages in process.
type fakeProducer struct {
	mu      sync.Mutex
	records []*kgo.Record
	err     error
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.mu.Lock()
	defer p.mu.Unlock()
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if p.err == nil {
			p.records = append(p.records, r)
		}
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func newTestNotifier(producer Producer) *Notifier {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(producer, idempotency.NewInMemoryLedger(), "room-grants", logger)
}

func TestRoomGrantedPublishes(t *testing.T) {
	producer := &fakeProducer{}
	notifier := newTestNotifier(producer)

	roomID := id.RoomID("0x2a")
	userID := id.UserID(uuid.New())
	notifier.RoomGranted(context.Background(), roomID, userID, "event-1")

	require.Len(t, producer.records, 1)
	record := producer.records[0]
	assert.Equal(t, "room-grants", record.Topic)
	assert.Equal(t, []byte(userID.String()), record.Key)

	var msg Message
	require.NoError(t, json.Unmarshal(record.Value, &msg))
	assert.Equal(t, "0x2a", msg.RoomID)
	assert.Equal(t, "event-1", msg.EventID)
	assert.False(t, msg.GrantedAt.IsZero())
}

func TestRoomGrantedDeliversAtMostOnce(t *testing.T) {
	producer := &fakeProducer{}
	notifier := newTestNotifier(producer)
	userID := id.UserID(uuid.New())

	for range 3 {
		notifier.RoomGranted(context.Background(), id.RoomID("0x2a"), userID, "event-1")
	}
	assert.Len(t, producer.records, 1)

	// A different event for the same user still goes out.
	notifier.RoomGranted(context.Background(), id.RoomID("0x2a"), userID, "event-2")
	assert.Len(t, producer.records, 2)
}

func TestRoomGrantedNilProducerDrops(t *testing.T) {
	notifier := newTestNotifier(nil)
	// Must not panic; the grant itself already succeeded.
	notifier.RoomGranted(context.Background(), id.RoomID("0x2a"), id.UserID(uuid.New()), "event-1")
}

func TestRoomGrantedProduceFailureIsSwallowed(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	notifier := newTestNotifier(producer)

	// Fire-and-log: delivery failure never propagates to the grant path.
	notifier.RoomGranted(context.Background(), id.RoomID("0x2a"), id.UserID(uuid.New()), "event-1")
	assert.Empty(t, producer.records)
}
