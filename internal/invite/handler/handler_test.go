package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credchat/internal/invite"
	"credchat/internal/platform/middleware"
	"credchat/internal/token"
	id "credchat/pkg/domain"
)

const testSigningKey = "invite-handler-test-key"

// newTestRouter mirrors the server wiring: code checks are public, minting
// sits behind bearer auth.
func newTestRouter(t *testing.T) (chi.Router, *invite.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	invites := invite.NewService(testSigningKey, time.Hour)
	h := New(invites, logger)

	router := chi.NewRouter()
	h.Register(router)
	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(token.NewService(testSigningKey)))
		h.RegisterProtected(r)
	})
	return router, invites
}

func bearerToken(t *testing.T) string {
	t.Helper()
	tok, err := token.NewService(testSigningKey).Issue(id.UserID(uuid.New()), time.Hour)
	require.NoError(t, err)
	return tok
}

func TestIssueRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invite-codes", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unauthorized", resp["error"])
}

func TestIssueWithSession(t *testing.T) {
	router, invites := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invite-codes", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, invites.Validate(resp["code"]))
}

func TestCheckIsPublic(t *testing.T) {
	router, invites := newTestRouter(t)
	code, err := invites.Issue()
	require.NoError(t, err)

	cases := []struct {
		name  string
		code  string
		valid bool
	}{
		{"issued code", code, true},
		{"garbage", "not-a-code", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invite-codes/"+tc.code, nil))

			require.Equal(t, http.StatusOK, w.Code)
			var resp map[string]bool
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.valid, resp["isValid"])
		})
	}
}
