package attestation

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	id "credchat/pkg/domain"
	dErrors "credchat/pkg/domain-errors"
)

// Canonical message templates. The address placeholder is always the
// lowercase 0x-prefixed form, so both sides derive byte-identical digests.
const (
	attestMessageTemplate  = "credchat attestation v1:%s"
	connectMessageTemplate = "credchat connect address v1:%s"
)

// AttestationMessage is the canonical plaintext a wallet signs to bind a
// membership proof to its primary account address.
func AttestationMessage(addr id.Address) string {
	return fmt.Sprintf(attestMessageTemplate, addr.String())
}

// ConnectMessage is the canonical plaintext a wallet signs to prove control
// of an additional address being linked to an account.
func ConnectMessage(addr id.Address) string {
	return fmt.Sprintf(connectMessageTemplate, addr.String())
}

// personalDigest hashes msg under the EIP-191 personal-message scheme, the
// same prefixing wallets apply in personal_sign.
func personalDigest(msg []byte) [32]byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	var out [32]byte
	copy(out[:], ethcrypto.Keccak256([]byte(prefixed)))
	return out
}

// ProofBindingDigest is the digest a wallet signs when attesting: the
// keccak hash of the full proof envelope, wrapped in the personal-message
// prefix. Signing over the whole envelope ties the signature to this exact
// proof, so a signature cannot be replayed against a different one.
func ProofBindingDigest(proof []byte) [32]byte {
	return personalDigest(ethcrypto.Keccak256(proof))
}

// MessageDigest is the personal-message digest of an arbitrary plaintext.
func MessageDigest(msg string) [32]byte {
	return personalDigest([]byte(msg))
}

// RecoverSigner recovers the address that produced a 65-byte [R||S||V]
// secp256k1 signature over digest. Both V conventions (0/1 and 27/28) are
// accepted.
func RecoverSigner(digest [32]byte, sig []byte) (id.Address, error) {
	if len(sig) != 65 {
		return id.Address{}, dErrors.New(dErrors.CodeInvalidBindingSignature, "signature must be 65 bytes")
	}
	normalized := make([]byte, 65)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := ethcrypto.SigToPub(digest[:], normalized)
	if err != nil {
		return id.Address{}, dErrors.Wrap(err, dErrors.CodeInvalidBindingSignature, "signature recovery failed")
	}
	addr := ethcrypto.PubkeyToAddress(*pub)
	return id.Address(addr), nil
}
