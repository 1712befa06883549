// Package chain validates claimed payment transactions against what was
// actually emitted on chain. A room purchase is proven by an ERC-1155
// TransferSingle event whose token id encodes the room.
package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
)

// TransferSingleTopic is keccak256("TransferSingle(address,address,address,uint256,uint256)"),
// the first topic of every ERC-1155 single transfer. Fixed per deployed
// contract version; an event schema change means a new constant, never a
// looser match.
var TransferSingleTopic = common.HexToHash("0xc3d58168c5ae7397731d063d5bbf3d657854427343f4c083240f7aacaa2d0f62")

const transferSingleABI = `[{"anonymous":false,"inputs":[
	{"indexed":true,"name":"operator","type":"address"},
	{"indexed":true,"name":"from","type":"address"},
	{"indexed":true,"name":"to","type":"address"},
	{"indexed":false,"name":"id","type":"uint256"},
	{"indexed":false,"name":"value","type":"uint256"}],
	"name":"TransferSingle","type":"event"}]`

var transferSingleArgs = mustEventArgs()

func mustEventArgs() abi.Arguments {
	parsed, err := abi.JSON(strings.NewReader(transferSingleABI))
	if err != nil {
		panic(fmt.Sprintf("parse TransferSingle ABI: %v", err))
	}
	return parsed.Events["TransferSingle"].Inputs.NonIndexed()
}

// PaymentEvent is a decoded room purchase. Derived from the receipt on every
// verification; never persisted.
type PaymentEvent struct {
	Operator  id.Address
	From      id.Address
	Purchaser id.Address
	TokenID   *big.Int
	Amount    *big.Int
	RoomID    id.RoomID
	TxHash    common.Hash
}

// IsGrant reports whether the event carries an access grant. A zero
// purchaser is a mint or burn artifact, not a purchase.
func (e PaymentEvent) IsGrant() bool {
	return !e.Purchaser.IsZero()
}

// DecodeTransferSingle decodes a log already matched on TransferSingleTopic.
func DecodeTransferSingle(log types.Log) (PaymentEvent, error) {
	if len(log.Topics) != 4 {
		return PaymentEvent{}, dErrors.New(dErrors.CodeEventSignatureMismatch, "event has wrong indexed topic count")
	}

	vals, err := transferSingleArgs.Unpack(log.Data)
	if err != nil {
		return PaymentEvent{}, dErrors.Wrap(err, dErrors.CodeEventSignatureMismatch, "event data does not match schema")
	}
	tokenID, ok := vals[0].(*big.Int)
	if !ok {
		return PaymentEvent{}, dErrors.New(dErrors.CodeEventSignatureMismatch, "event id field has wrong type")
	}
	amount, ok := vals[1].(*big.Int)
	if !ok {
		return PaymentEvent{}, dErrors.New(dErrors.CodeEventSignatureMismatch, "event value field has wrong type")
	}

	return PaymentEvent{
		Operator:  id.Address(common.BytesToAddress(log.Topics[1].Bytes())),
		From:      id.Address(common.BytesToAddress(log.Topics[2].Bytes())),
		Purchaser: id.Address(common.BytesToAddress(log.Topics[3].Bytes())),
		TokenID:   tokenID,
		Amount:    amount,
		RoomID:    DeriveRoomID(tokenID),
		TxHash:    log.TxHash,
	}, nil
}

// DeriveRoomID maps a token id to its room. The mapping is fixed: the token
// id is the room id, rendered as minimal lowercase hex.
func DeriveRoomID(tokenID *big.Int) id.RoomID {
	return id.RoomID("0x" + tokenID.Text(16))
}
