package handler

//go:generate mockgen -source=handler.go -destination=mocks/sync-mocks.go -package=mocks Service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"credchat/internal/chain/handler/mocks"
	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
)

type SyncHandlerSuite struct {
	suite.Suite
	txHash common.Hash
}

func (s *SyncHandlerSuite) SetupSuite() {
	s.txHash = common.HexToHash("0x1b4e28ba2fa1d31b2c1a0f5e9e6d8c7b6a5948372615049382716053aabbccdd")
}

func TestSyncHandlerSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	New(mockService, logger).Register(router)
	return router, mockService
}

func (s *SyncHandlerSuite) syncBody(txHash string) []byte {
	body, err := json.Marshal(map[string]string{"txHash": txHash})
	require.NoError(s.T(), err)
	return body
}

func (s *SyncHandlerSuite) TestHandleSync() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().VerifyPurchase(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, roomID id.RoomID, txHash common.Hash) error {
			assert.Equal(s.T(), id.RoomID("0x2a"), roomID)
			assert.Equal(s.T(), s.txHash, txHash)
			return nil
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/0x2a/sync", bytes.NewReader(s.syncBody(s.txHash.Hex())))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "ok", resp["status"])
}

func (s *SyncHandlerSuite) TestHandleSyncTimeout() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().VerifyPurchase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeConfirmationTimeout, "transaction was not confirmed in time"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/0x2a/sync", bytes.NewReader(s.syncBody(s.txHash.Hex())))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusGatewayTimeout, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "confirmation_timeout", resp["error"])
}

func (s *SyncHandlerSuite) TestHandleSyncValidation() {
	router, _ := newTestRouter(s.T())

	cases := []struct {
		name   string
		txHash string
	}{
		{"empty", ""},
		{"missing prefix", strings.Repeat("ab", 32)},
		{"too short", "0x" + strings.Repeat("ab", 31)},
		{"too long", "0x" + strings.Repeat("ab", 33)},
		{"non-hex", "0x" + strings.Repeat("zz", 32)},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/rooms/0x2a/sync", bytes.NewReader(s.syncBody(tc.txHash)))
			router.ServeHTTP(w, req)
			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (s *SyncHandlerSuite) TestHandleSyncBadRoomID() {
	router, _ := newTestRouter(s.T())

	w := httptest.NewRecorder()
	longRoom := strings.Repeat("a", 200)
	req := httptest.NewRequest(http.MethodPost, "/rooms/"+longRoom+"/sync", bytes.NewReader(s.syncBody(s.txHash.Hex())))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}
