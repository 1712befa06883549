package domain

import (
	"bytes"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"

	dErrors "credchat/pkg/domain-errors"
)

// Address is a 20-byte wallet address. Comparison is exact byte equality;
// parsing accepts any hex casing so checksummed and lowercase forms of the
// same address collapse to one value.
type Address ethcommon.Address

// ParseAddress validates a 0x-prefixed hex address (case-insensitive).
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is required")
	}
	if !ethcommon.IsHexAddress(s) {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be a 20-byte hex address")
	}
	return Address(ethcommon.HexToAddress(s)), nil
}

// AddressFromBytes builds an Address from exactly 20 bytes.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != ethcommon.AddressLength {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be exactly 20 bytes")
	}
	return Address(ethcommon.BytesToAddress(b)), nil
}

// String returns the lowercase 0x-prefixed hex form. Lowercase is the
// canonical form used in binding messages and storage keys.
func (a Address) String() string {
	return strings.ToLower(ethcommon.Address(a).Hex())
}

// Bytes returns the raw 20 bytes.
func (a Address) Bytes() []byte {
	addr := ethcommon.Address(a)
	return addr.Bytes()
}

// Eth converts to the go-ethereum address type for crypto interop.
func (a Address) Eth() ethcommon.Address { return ethcommon.Address(a) }

// IsZero reports whether the address is the zero (burn) address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Equal is an exact 20-byte comparison.
func (a Address) Equal(other Address) bool {
	return bytes.Equal(a.Bytes(), other.Bytes())
}
