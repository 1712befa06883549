// Package handler serves Merkle tree distribution to proving clients.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"credchat/internal/registry/models"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/httputil"
	"credchat/pkg/requestcontext"
)

// Service is the registry surface the handler needs.
type Service interface {
	Tree(ctx context.Context, groupID id.GroupID) (models.MerkleTree, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/groups/{groupId}/tree", h.HandleTree)
}

// HandleTree streams the group's tree in the binary distribution format.
// The legacy proving clients negotiate protobuf, so the content type is kept.
func (h *Handler) HandleTree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupID, err := id.ParseGroupID(chi.URLParam(r, "groupId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tree, err := h.service.Tree(ctx, groupID)
	if err != nil {
		h.logger.ErrorContext(ctx, "tree lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"group_id", groupID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-protobuf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(models.EncodeTree(tree))
}
