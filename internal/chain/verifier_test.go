package chain_test

//go:generate mockgen -source=verifier.go -destination=mocks/chain-mocks.go -package=mocks Grantor

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	accmodels "credchat/internal/access/models"
	"credchat/internal/chain"
	"credchat/internal/chain/mocks"
	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
	"credchat/pkg/platform/sentinel"
)

// fakeFetcher serves a receipt after a configurable number of not-yet-mined
// responses.
type fakeFetcher struct {
	mu      sync.Mutex
	pending int
	receipt *types.Receipt
	calls   int
}

func (f *fakeFetcher) TransactionReceipt(_ context.Context, _ common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls += 1
	if f.calls <= f.pending {
		return nil, ethereum.NotFound
	}
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

type ChainVerifierSuite struct {
	suite.Suite
	ctx context.Context

	userID    id.UserID
	roomID    id.RoomID
	txHash    common.Hash
	purchaser common.Address
}

func TestChainVerifierSuite(t *testing.T) {
	suite.Run(t, new(ChainVerifierSuite))
}

func (s *ChainVerifierSuite) SetupSuite() {
	s.ctx = context.Background()
	s.userID = id.UserID(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	s.roomID = id.RoomID("0x2a")
	s.txHash = common.HexToHash("0xabcdef0000000000000000000000000000000000000000000000000000000001")
	s.purchaser = common.HexToAddress("0x2222222222222222222222222222222222222222")
}

func (s *ChainVerifierSuite) newVerifier(fetcher chain.ReceiptFetcher) (*chain.Verifier, *mocks.MockGrantor) {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	grantor := mocks.NewMockGrantor(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return chain.NewVerifier(fetcher, grantor, 200*time.Millisecond, 10*time.Millisecond, nil, logger), grantor
}

func (s *ChainVerifierSuite) purchaseLog(tokenID int64) types.Log {
	data := append(
		common.LeftPadBytes(big.NewInt(tokenID).Bytes(), 32),
		common.LeftPadBytes(big.NewInt(1).Bytes(), 32)...,
	)
	operator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	return types.Log{
		Topics: []common.Hash{
			chain.TransferSingleTopic,
			common.BytesToHash(common.LeftPadBytes(operator.Bytes(), 32)),
			common.BytesToHash(common.LeftPadBytes(common.Address{}.Bytes(), 32)),
			common.BytesToHash(common.LeftPadBytes(s.purchaser.Bytes(), 32)),
		},
		Data:   data,
		TxHash: s.txHash,
	}
}

func (s *ChainVerifierSuite) receiptWith(logs ...types.Log) *types.Receipt {
	out := make([]*types.Log, len(logs))
	for i := range logs {
		out[i] = &logs[i]
	}
	return &types.Receipt{Logs: out, TxHash: s.txHash}
}

func (s *ChainVerifierSuite) TestVerifyPurchaseGrantsReader() {
	fetcher := &fakeFetcher{receipt: s.receiptWith(s.purchaseLog(0x2a))}
	verifier, grantor := s.newVerifier(fetcher)
	grantor.EXPECT().ResolveAccount(gomock.Any(), id.Address(s.purchaser)).
		Return(accmodels.User{ID: s.userID}, nil)
	grantor.EXPECT().GrantRoomRole(gomock.Any(), s.roomID, s.userID, accmodels.RoleReader).Return(nil)

	require.NoError(s.T(), verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseWaitsForMining() {
	fetcher := &fakeFetcher{pending: 3, receipt: s.receiptWith(s.purchaseLog(0x2a))}
	verifier, grantor := s.newVerifier(fetcher)
	grantor.EXPECT().ResolveAccount(gomock.Any(), id.Address(s.purchaser)).
		Return(accmodels.User{ID: s.userID}, nil)
	grantor.EXPECT().GrantRoomRole(gomock.Any(), s.roomID, s.userID, accmodels.RoleReader).Return(nil)

	require.NoError(s.T(), verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash))
	assert.GreaterOrEqual(s.T(), fetcher.calls, 4)
}

func (s *ChainVerifierSuite) TestVerifyPurchaseConfirmationTimeout() {
	fetcher := &fakeFetcher{} // never mined
	verifier, _ := s.newVerifier(fetcher)

	err := verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeConfirmationTimeout))
	assert.True(s.T(), dErrors.IsRetryable(err))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseNoLogs() {
	fetcher := &fakeFetcher{receipt: s.receiptWith()}
	verifier, _ := s.newVerifier(fetcher)

	err := verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeNoLogsFound))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseNoMatchingEvent() {
	decoy := types.Log{Topics: []common.Hash{common.HexToHash("0x01")}}
	fetcher := &fakeFetcher{receipt: s.receiptWith(decoy)}
	verifier, _ := s.newVerifier(fetcher)

	err := verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeEventSignatureMismatch))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseSkipsDecoyLogs() {
	// The purchase event does not have to be the first log in the receipt.
	decoy := types.Log{Topics: []common.Hash{common.HexToHash("0x01")}}
	fetcher := &fakeFetcher{receipt: s.receiptWith(decoy, s.purchaseLog(0x2a))}
	verifier, grantor := s.newVerifier(fetcher)
	grantor.EXPECT().ResolveAccount(gomock.Any(), id.Address(s.purchaser)).
		Return(accmodels.User{ID: s.userID}, nil)
	grantor.EXPECT().GrantRoomRole(gomock.Any(), s.roomID, s.userID, accmodels.RoleReader).Return(nil)

	require.NoError(s.T(), verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseRoomMismatch() {
	fetcher := &fakeFetcher{receipt: s.receiptWith(s.purchaseLog(0x99))}
	verifier, _ := s.newVerifier(fetcher)

	err := verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeRoomIDMismatch))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseZeroPurchaser() {
	log := s.purchaseLog(0x2a)
	log.Topics[3] = common.Hash{} // mint/burn artifact
	fetcher := &fakeFetcher{receipt: s.receiptWith(log)}
	verifier, _ := s.newVerifier(fetcher)

	// Success with no grant: the grantor mock expects no calls.
	require.NoError(s.T(), verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash))
}

func (s *ChainVerifierSuite) TestVerifyPurchaseUnknownPurchaser() {
	fetcher := &fakeFetcher{receipt: s.receiptWith(s.purchaseLog(0x2a))}
	verifier, grantor := s.newVerifier(fetcher)
	grantor.EXPECT().ResolveAccount(gomock.Any(), id.Address(s.purchaser)).
		Return(accmodels.User{}, sentinel.ErrNotFound)

	err := verifier.VerifyPurchase(s.ctx, s.roomID, s.txHash)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodePurchaserAccountNotFound))
}
