// Package oracle wraps the external zero-knowledge verifier behind a pure
// validity-and-extraction boundary. It makes no trust decisions: a proof that
// verifies here still carries untrusted outputs the binder must cross-check
// against the registry and the claimed identity.
package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	"credchat/internal/registry/models"
	id "credchat/pkg/domain"

	dErrors "credchat/pkg/domain-errors"
)

// Proof envelope layout. The header carries the circuit's public outputs so
// callers can cross-check them; the body is the serialized Groth16 proof.
//
//	[0:32]   claimed Merkle root
//	[32:64]  bound message hash
//	[64:84]  bound signer address (all-zero for schemes without recovery)
//	[84:]    Groth16 proof over BN254
const (
	rootOffset   = 0
	msgOffset    = 32
	signerOffset = 64
	bodyOffset   = 84
)

// ErrMalformed marks proof bytes that do not parse as an envelope. This is a
// terminal rejection of the submitted evidence, distinct from infrastructure
// failures which surface as retryable CodeOracleInfra errors.
var ErrMalformed = errors.New("malformed proof envelope")

// malformed wraps an ErrMalformed cause so callers that map codes to HTTP
// statuses reject the submission instead of reporting a server fault.
func malformed(cause error) error {
	return dErrors.Wrap(cause, dErrors.CodeInvalidProof, "proof envelope does not parse")
}

// Oracle verifies membership proofs against a fixed Groth16 verifying key.
//
// The verifying key is loaded lazily on first use behind a sync.Once, so the
// oracle is cheap to construct and safe to share; repeated calls never
// re-read the key file.
type Oracle struct {
	vkPath string

	once   sync.Once
	vk     groth16.VerifyingKey
	vkErr  error
	scalar *big.Int
}

func New(vkPath string) *Oracle {
	return &Oracle{
		vkPath: vkPath,
		scalar: ecc.BN254.ScalarField(),
	}
}

func (o *Oracle) verifyingKey() (groth16.VerifyingKey, error) {
	o.once.Do(func() {
		f, err := os.Open(o.vkPath)
		if err != nil {
			o.vkErr = fmt.Errorf("open verifying key: %w", err)
			return
		}
		defer f.Close()

		vk := groth16.NewVerifyingKey(ecc.BN254)
		if _, err := vk.ReadFrom(f); err != nil {
			o.vkErr = fmt.Errorf("read verifying key: %w", err)
			return
		}
		o.vk = vk
	})
	if o.vkErr != nil {
		return nil, dErrors.Wrap(o.vkErr, dErrors.CodeOracleInfra, "proof verifier unavailable")
	}
	return o.vk, nil
}

// Verify checks proof validity. Returns (false, nil) for a well-formed proof
// that fails verification, ErrMalformed for bytes that are not a proof, and
// a CodeOracleInfra error when the verifier itself is unavailable.
func (o *Oracle) Verify(ctx context.Context, proofBytes []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeOracleInfra, "verification cancelled")
	}
	if len(proofBytes) <= bodyOffset {
		return false, malformed(fmt.Errorf("%w: %d bytes", ErrMalformed, len(proofBytes)))
	}

	vk, err := o.verifyingKey()
	if err != nil {
		return false, err
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes[bodyOffset:])); err != nil {
		return false, malformed(fmt.Errorf("%w: proof body: %v", ErrMalformed, err))
	}

	pub, err := o.publicWitness(proofBytes)
	if err != nil {
		return false, err
	}

	// Verification failure is a fact about the evidence, not an error.
	if err := groth16.Verify(proof, vk, pub); err != nil {
		return false, nil
	}
	return true, nil
}

// publicWitness rebuilds the public-only witness from the envelope header.
// Header values are reduced into the scalar field exactly the way the prover
// committed them.
func (o *Oracle) publicWitness(proofBytes []byte) (witness.Witness, error) {
	root := new(big.Int).SetBytes(proofBytes[rootOffset:msgOffset])
	msgHi := new(big.Int).SetBytes(proofBytes[msgOffset : msgOffset+16])
	msgLo := new(big.Int).SetBytes(proofBytes[msgOffset+16 : signerOffset])
	signer := new(big.Int).SetBytes(proofBytes[signerOffset:bodyOffset])

	assignment := MembershipCircuit{
		Root:      root.Mod(root, o.scalar),
		MsgHashHi: msgHi,
		MsgHashLo: msgLo,
		Signer:    signer,
	}
	pub, err := frontend.NewWitness(&assignment, o.scalar, frontend.PublicOnly())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeOracleInfra, "failed to build public witness")
	}
	return pub, nil
}

// ExtractRoot returns the claimed Merkle root from the envelope.
func (o *Oracle) ExtractRoot(proofBytes []byte) (models.Root, error) {
	return ExtractRoot(proofBytes)
}

// ExtractMessageHash returns the message hash bound inside the proof.
func (o *Oracle) ExtractMessageHash(proofBytes []byte) ([32]byte, error) {
	return ExtractMessageHash(proofBytes)
}

// ExtractSignerAddress returns the signer bound inside the proof.
func (o *Oracle) ExtractSignerAddress(proofBytes []byte) (id.Address, error) {
	return ExtractSignerAddress(proofBytes)
}

// ExtractRoot returns the claimed Merkle root from the envelope header.
func ExtractRoot(proofBytes []byte) (models.Root, error) {
	if len(proofBytes) <= bodyOffset {
		return models.Root{}, malformed(ErrMalformed)
	}
	return models.RootFromBytes(proofBytes[rootOffset:msgOffset])
}

// ExtractMessageHash returns the message hash bound inside the proof.
func ExtractMessageHash(proofBytes []byte) ([32]byte, error) {
	var h [32]byte
	if len(proofBytes) <= bodyOffset {
		return h, malformed(ErrMalformed)
	}
	copy(h[:], proofBytes[msgOffset:signerOffset])
	return h, nil
}

// ExtractSignerAddress returns the signer bound inside the proof. The zero
// address means the proof scheme does not embed signer recovery.
func ExtractSignerAddress(proofBytes []byte) (id.Address, error) {
	if len(proofBytes) <= bodyOffset {
		return id.Address{}, malformed(ErrMalformed)
	}
	return id.AddressFromBytes(proofBytes[signerOffset:bodyOffset])
}
