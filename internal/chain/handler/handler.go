package handler

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
	"credchat/pkg/platform/httputil"
	"credchat/pkg/requestcontext"
)

// Service defines the interface for purchase verification.
type Service interface {
	VerifyPurchase(ctx context.Context, roomID id.RoomID, txHash common.Hash) error
}

// Handler wires purchase sync endpoints to the chain verifier.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a chain handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts purchase sync endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/rooms/{roomId}/sync", h.HandleSync)
}

// HandleSync handles POST /rooms/{roomId}/sync requests. The call blocks
// until the transaction confirms or the receipt wait times out, so clients
// should expect latencies up to the configured confirmation window.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	roomID, err := id.ParseRoomID(chi.URLParam(r, "roomId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SyncRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.VerifyPurchase(ctx, roomID, req.ParsedTxHash()); err != nil {
		h.logger.ErrorContext(ctx, "purchase sync failed",
			"request_id", requestID,
			"room_id", roomID,
			"tx_hash", req.TxHash,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "purchase synced",
		"request_id", requestID,
		"room_id", roomID,
		"tx_hash", req.TxHash,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SyncRequest is the HTTP request body for POST /rooms/{roomId}/sync.
type SyncRequest struct {
	TxHash string `json:"txHash"`

	parsedHash common.Hash
}

// Validate validates and parses the request.
func (r *SyncRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	raw := strings.TrimSpace(r.TxHash)
	if raw == "" {
		return dErrors.New(dErrors.CodeValidation, "txHash is required")
	}
	if !strings.HasPrefix(raw, "0x") || len(raw) != 2+2*common.HashLength {
		return dErrors.New(dErrors.CodeValidation, "txHash must be a 0x-prefixed 32-byte hex string")
	}
	decoded, err := hex.DecodeString(raw[2:])
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "txHash must be hex encoded")
	}
	r.parsedHash = common.BytesToHash(decoded)
	return nil
}

// ParsedTxHash returns the validated transaction hash.
func (r *SyncRequest) ParsedTxHash() common.Hash {
	return r.parsedHash
}
