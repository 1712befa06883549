package chain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	accmodels "credchat/internal/access/models"
	"credchat/internal/chain/metrics"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"

	dErrors "credchat/pkg/domain-errors"
)

// ReceiptFetcher resolves transaction receipts. *ethclient.Client satisfies
// it; tests swap in a fake.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Grantor is the access surface a verified purchase drives.
type Grantor interface {
	ResolveAccount(ctx context.Context, addr id.Address) (accmodels.User, error)
	GrantRoomRole(ctx context.Context, roomID id.RoomID, userID id.UserID, role accmodels.Role) error
}

// Verifier checks that a claimed payment transaction emitted the expected
// purchase event and applies the resulting Reader grant.
type Verifier struct {
	client       ReceiptFetcher
	grantor      Grantor
	timeout      time.Duration
	pollInterval time.Duration
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewVerifier(client ReceiptFetcher, grantor Grantor, timeout, pollInterval time.Duration, m *metrics.Metrics, logger *slog.Logger) *Verifier {
	return &Verifier{
		client:       client,
		grantor:      grantor,
		timeout:      timeout,
		pollInterval: pollInterval,
		metrics:      m,
		logger:       logger,
	}
}

// VerifyPurchase validates the transaction behind a claimed room purchase
// and, when it carries a grant, unions the purchaser into the room's reader
// set. Safe to call again with the same tx hash after a timeout: the chain
// state is immutable and the grant is a set union.
func (v *Verifier) VerifyPurchase(ctx context.Context, roomID id.RoomID, txHash common.Hash) error {
	start := time.Now()
	err := v.verifyPurchase(ctx, roomID, txHash)
	v.metrics.ObserveVerifyLatency(time.Since(start))
	result := "granted"
	if err != nil {
		result = string(dErrors.CodeOf(err))
	}
	v.metrics.IncrementOutcome(result)
	return err
}

func (v *Verifier) verifyPurchase(ctx context.Context, roomID id.RoomID, txHash common.Hash) error {
	receipt, err := v.awaitReceipt(ctx, txHash)
	if err != nil {
		return err
	}

	if len(receipt.Logs) == 0 {
		return dErrors.New(dErrors.CodeNoLogsFound, "transaction emitted no logs")
	}

	var matched *types.Log
	for _, log := range receipt.Logs {
		if len(log.Topics) > 0 && log.Topics[0] == TransferSingleTopic {
			matched = log
			break
		}
	}
	if matched == nil {
		return dErrors.New(dErrors.CodeEventSignatureMismatch, "no log matches the purchase event signature")
	}

	event, err := DecodeTransferSingle(*matched)
	if err != nil {
		return err
	}

	if event.RoomID != roomID {
		return dErrors.Newf(dErrors.CodeRoomIDMismatch, "transaction purchased room %s", event.RoomID)
	}

	if !event.IsGrant() {
		// Mint/burn artifact: a valid transaction that grants nobody access.
		v.logger.InfoContext(ctx, "purchase event carries no grant",
			"room_id", roomID,
			"tx_hash", txHash,
		)
		return nil
	}

	user, err := v.grantor.ResolveAccount(ctx, event.Purchaser)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodePurchaserAccountNotFound, "no account for purchaser address")
	}
	if err != nil {
		return err
	}

	if err := v.grantor.GrantRoomRole(ctx, roomID, user.ID, accmodels.RoleReader); err != nil {
		return err
	}
	v.logger.InfoContext(ctx, "purchase verified",
		"room_id", roomID,
		"user_id", user.ID,
		"tx_hash", txHash,
		"token_id", event.TokenID,
	)
	return nil
}

// awaitReceipt polls until the transaction is mined or the configured
// timeout elapses. Timeout is retryable: the tx hash can be resubmitted once
// the transaction lands.
func (v *Verifier) awaitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := v.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			// Transient RPC failures get retried within the same window.
			v.logger.WarnContext(ctx, "receipt fetch failed",
				"tx_hash", txHash,
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, dErrors.New(dErrors.CodeConfirmationTimeout, "transaction not confirmed in time")
		case <-ticker.C:
		}
	}
}
