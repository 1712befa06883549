package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"credchat/internal/attestation"
	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
	"credchat/pkg/platform/httputil"
	"credchat/pkg/requestcontext"
)

// Service defines the interface for attestation operations.
type Service interface {
	Attest(ctx context.Context, req attestation.AttestRequest) error
	ConnectAddress(ctx context.Context, req attestation.ConnectRequest) error
}

// Handler wires attestation endpoints to the attestation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an attestation handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the public attestation endpoint. Attestation needs no
// session: the submitter's identity is the claimed wallet address, proven by
// the proof binding and the wallet signature.
func (h *Handler) Register(r chi.Router) {
	r.Post("/creddd", h.HandleAttest)
}

// RegisterProtected mounts endpoints that act on the authenticated user.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/connected-addresses", h.HandleConnectAddress)
}

// HandleAttest handles POST /creddd requests.
func (h *Handler) HandleAttest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AttestRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Attest(ctx, req.ToDomain()); err != nil {
		h.logger.ErrorContext(ctx, "attestation rejected",
			"request_id", requestID,
			"address", req.PrivyAddress,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "attestation processed",
		"request_id", requestID,
		"address", req.PrivyAddress,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleConnectAddress handles POST /connected-addresses requests.
func (h *Handler) HandleConnectAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[ConnectAddressRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.ConnectAddress(ctx, req.ToDomain(userID)); err != nil {
		h.logger.ErrorContext(ctx, "connect address failed",
			"request_id", requestID,
			"user_id", userID,
			"address", req.Address,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
