package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "credchat/pkg/domain-errors"
	"credchat/pkg/platform/httputil"
)

// Service defines the interface for invite code operations.
type Service interface {
	Issue() (string, error)
	Validate(code string) bool
}

// Handler wires invite code endpoints to the invite service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an invite handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the public check endpoint. Checking a code is open;
// minting one is not, so issuance registers separately.
func (h *Handler) Register(r chi.Router) {
	r.Get("/invite-codes/{code}", h.HandleCheck)
}

// RegisterProtected mounts the issuing endpoint for authenticated callers.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/invite-codes", h.HandleIssue)
}

// HandleCheck handles GET /invite-codes/{code} requests. An invalid code is
// a normal answer, so the response is always 200 with the validity flag.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{
		"isValid": h.service.Validate(code),
	})
}

// HandleIssue handles POST /invite-codes requests.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.Issue()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "invite code issue failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue invite code"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"code": code})
}
