// Package notify publishes room-grant notifications. Delivery is gated per
// (user, event) by the idempotency ledger so a grant observed twice - a
// retried request, a re-delivered realtime change - notifies at most once.
//
// Notification is fire-and-log: a grant never fails because its
// notification could not be produced.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"credchat/internal/idempotency"
	id "credchat/pkg/domain"
)

// Producer is the kafka surface the notifier needs; *kgo.Client satisfies it.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Message is the wire payload consumed by the push-delivery workers.
type Message struct {
	RoomID    string    `json:"roomId"`
	UserID    string    `json:"userId"`
	EventID   string    `json:"eventId"`
	GrantedAt time.Time `json:"grantedAt"`
}

// Notifier implements access.Notifier over a kafka topic.
type Notifier struct {
	producer Producer
	ledger   idempotency.Ledger
	topic    string
	logger   *slog.Logger
}

func New(producer Producer, ledger idempotency.Ledger, topic string, logger *slog.Logger) *Notifier {
	return &Notifier{producer: producer, ledger: ledger, topic: topic, logger: logger}
}

// RoomGranted publishes the grant event, at most once per event id.
func (n *Notifier) RoomGranted(ctx context.Context, roomID id.RoomID, userID id.UserID, eventID string) {
	key := idempotency.Key(userID.String(), eventID)
	won, err := n.ledger.Acquire(ctx, key)
	if err != nil {
		n.logger.ErrorContext(ctx, "notification ledger unavailable",
			"key", key,
			"error", err,
		)
		return
	}
	if !won {
		n.logger.DebugContext(ctx, "notification already delivered", "key", key)
		return
	}

	if n.producer == nil {
		n.logger.InfoContext(ctx, "notification dropped: no producer configured",
			"room_id", roomID,
			"user_id", userID,
		)
		return
	}

	payload, err := json.Marshal(Message{
		RoomID:    roomID.String(),
		UserID:    userID.String(),
		EventID:   eventID,
		GrantedAt: time.Now().UTC(),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "notification encode failed", "error", err)
		return
	}

	record := &kgo.Record{
		Topic: n.topic,
		Key:   []byte(userID.String()),
		Value: payload,
	}
	if err := n.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		// The ledger already holds the key; delivery workers reconcile
		// missed events from the grant log, so we log rather than retry.
		n.logger.ErrorContext(ctx, "notification produce failed",
			"topic", n.topic,
			"room_id", roomID,
			"user_id", userID,
			"error", err,
		)
		return
	}

	n.logger.InfoContext(ctx, "room grant notification published",
		"topic", n.topic,
		"room_id", roomID,
		"user_id", userID,
	)
}
