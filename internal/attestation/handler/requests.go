package handler

import (
	"encoding/hex"
	"strings"

	"credchat/internal/attestation"
	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
)

const (
	// Envelope header (84 bytes) plus a non-empty proof body.
	minProofBytes = 85
	maxProofBytes = 64 * 1024
	signatureLen  = 65
)

// AttestRequest is the HTTP request body for POST /creddd.
type AttestRequest struct {
	Proof                 string `json:"proof"`
	PrivyAddress          string `json:"privyAddress"`
	PrivyAddressSignature string `json:"privyAddressSignature"`

	// Parsed values (populated by Validate)
	parsedProof     []byte
	parsedAddress   id.Address
	parsedSignature []byte
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AttestRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	proof, err := decodeHexField("proof", r.Proof)
	if err != nil {
		return err
	}
	if len(proof) < minProofBytes {
		return dErrors.New(dErrors.CodeValidation, "proof is too short")
	}
	if len(proof) > maxProofBytes {
		return dErrors.New(dErrors.CodeValidation, "proof exceeds maximum size")
	}
	r.parsedProof = proof

	addr, err := id.ParseAddress(r.PrivyAddress)
	if err != nil {
		return err
	}
	r.parsedAddress = addr

	sig, err := decodeHexField("privyAddressSignature", r.PrivyAddressSignature)
	if err != nil {
		return err
	}
	if len(sig) != signatureLen {
		return dErrors.New(dErrors.CodeValidation, "privyAddressSignature must be 65 bytes")
	}
	r.parsedSignature = sig

	return nil
}

// ToDomain returns the validated domain request.
func (r *AttestRequest) ToDomain() attestation.AttestRequest {
	return attestation.AttestRequest{
		Proof:            r.parsedProof,
		PrivyAddress:     r.parsedAddress,
		BindingSignature: r.parsedSignature,
	}
}

// ConnectAddressRequest is the HTTP request body for POST /connected-addresses.
type ConnectAddressRequest struct {
	Address   string   `json:"address"`
	Signature string   `json:"signature"`
	GroupIDs  []string `json:"groupIds"`

	parsedAddress   id.Address
	parsedSignature []byte
	parsedGroups    []id.GroupID
}

// Validate validates and parses the request.
func (r *ConnectAddressRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	addr, err := id.ParseAddress(r.Address)
	if err != nil {
		return err
	}
	r.parsedAddress = addr

	sig, err := decodeHexField("signature", r.Signature)
	if err != nil {
		return err
	}
	if len(sig) != signatureLen {
		return dErrors.New(dErrors.CodeValidation, "signature must be 65 bytes")
	}
	r.parsedSignature = sig

	if len(r.GroupIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "groupIds is required")
	}
	r.parsedGroups = make([]id.GroupID, 0, len(r.GroupIDs))
	for _, raw := range r.GroupIDs {
		groupID, err := id.ParseGroupID(raw)
		if err != nil {
			return err
		}
		r.parsedGroups = append(r.parsedGroups, groupID)
	}

	return nil
}

// ToDomain returns the validated domain request. The user is added from the
// authenticated context by the handler.
func (r *ConnectAddressRequest) ToDomain(userID id.UserID) attestation.ConnectRequest {
	return attestation.ConnectRequest{
		UserID:    userID,
		Address:   r.parsedAddress,
		Signature: r.parsedSignature,
		GroupIDs:  r.parsedGroups,
	}
}

func decodeHexField(name, value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "0x")
	if value == "" {
		return nil, dErrors.Newf(dErrors.CodeValidation, "%s is required", name)
	}
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, dErrors.Newf(dErrors.CodeValidation, "%s must be hex encoded", name)
	}
	return raw, nil
}
