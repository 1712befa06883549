// Package middleware provides the HTTP middleware chain: request IDs on
// every request and bearer-token auth for endpoints that act on behalf of a
// signed-in user.
package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"credchat/internal/token"
	"credchat/pkg/platform/httputil"
	"credchat/pkg/requestcontext"

	dErrors "credchat/pkg/domain-errors"
)

// RequestID assigns a request ID when the client did not send one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), reqID)))
	})
}

// Auth validates the bearer session token and injects the user ID into the
// request context. Requests without a valid token are rejected.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "bearer token required"))
				return
			}
			userID, err := tokens.Validate(raw)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(r.Context(), userID)))
		})
	}
}
