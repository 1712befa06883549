package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
	"credchat/pkg/platform/httputil"
	"credchat/pkg/requestcontext"
)

// Service defines the interface for room membership operations.
type Service interface {
	JoinRoom(ctx context.Context, roomID id.RoomID, userID id.UserID) error
}

// Handler wires room membership endpoints to the access service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an access handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts room membership endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/rooms/{roomId}/join", h.HandleJoin)
}

// HandleJoin handles POST /rooms/{roomId}/join requests.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	roomID, err := id.ParseRoomID(chi.URLParam(r, "roomId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.JoinRoom(ctx, roomID, userID); err != nil {
		h.logger.ErrorContext(ctx, "room join failed",
			"request_id", requestID,
			"room_id", roomID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}
