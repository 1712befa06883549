// Package attestation turns untrusted proof submissions into accepted
// credentials. It owns the ordered verification pipeline: every check must
// pass before anything is persisted, and the first failure short-circuits
// with a terminal rejection code.
package attestation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	accmodels "credchat/internal/access/models"
	"credchat/internal/attestation/metrics"
	"credchat/internal/attestation/models"
	"credchat/internal/attestation/store"
	regmodels "credchat/internal/registry/models"
	id "credchat/pkg/domain"
	"credchat/pkg/platform/sentinel"
	"credchat/pkg/requestcontext"

	dErrors "credchat/pkg/domain-errors"
)

// ProofOracle validates proof envelopes and slices their public header.
// It makes no trust decisions; those happen here, in pipeline order.
type ProofOracle interface {
	Verify(ctx context.Context, proofBytes []byte) (bool, error)
	ExtractRoot(proofBytes []byte) (regmodels.Root, error)
	ExtractMessageHash(proofBytes []byte) ([32]byte, error)
	ExtractSignerAddress(proofBytes []byte) (id.Address, error)
}

// Registry resolves published group roots and tree membership.
type Registry interface {
	GroupByRoot(ctx context.Context, root regmodels.Root) (regmodels.Group, error)
	HasLeaf(ctx context.Context, groupID id.GroupID, addr id.Address) (bool, error)
}

// Grantor is the access side-effect surface: account resolution plus the
// idempotent mutations an accepted attestation triggers.
type Grantor interface {
	ResolveAccount(ctx context.Context, addr id.Address) (accmodels.User, error)
	RecordCredential(ctx context.Context, userID id.UserID, groupID id.GroupID) (bool, error)
	GrantRoomRole(ctx context.Context, roomID id.RoomID, userID id.UserID, role accmodels.Role) error
	ConnectAddress(ctx context.Context, userID id.UserID, addr id.Address) error
}

// AttestRequest is a fully decoded attestation submission.
type AttestRequest struct {
	Proof []byte
	// PrivyAddress is the claimed binding identity: the primary wallet the
	// proof and signature must both commit to.
	PrivyAddress id.Address
	// BindingSignature is the 65-byte wallet signature over the proof hash.
	BindingSignature []byte
}

// ConnectRequest links an additional wallet address to the authenticated
// user, gated on the address appearing in every named group.
type ConnectRequest struct {
	UserID    id.UserID
	Address   id.Address
	Signature []byte
	GroupIDs  []id.GroupID
}

// Service implements the attestation pipeline.
type Service struct {
	oracle   ProofOracle
	registry Registry
	grantor  Grantor
	store    store.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(oracle ProofOracle, registry Registry, grantor Grantor, st store.Store, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{oracle: oracle, registry: registry, grantor: grantor, store: st, metrics: m, logger: logger}
}

// Attest runs the ordered verification pipeline and, on full success,
// persists the attestation and applies its grants. The order is part of the
// contract: rejection codes tell the caller exactly which layer failed, and
// no check after the first failure runs.
func (s *Service) Attest(ctx context.Context, req AttestRequest) error {
	start := time.Now()
	err := s.attest(ctx, req)
	s.metrics.ObserveAttestLatency(time.Since(start))
	if err != nil {
		s.metrics.IncrementOutcome(string(dErrors.CodeOf(err)))
	}
	return err
}

func (s *Service) attest(ctx context.Context, req AttestRequest) error {
	ok, err := s.oracle.Verify(ctx, req.Proof)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.New(dErrors.CodeInvalidProof, "proof did not verify")
	}

	root, err := s.oracle.ExtractRoot(req.Proof)
	if err != nil {
		return err
	}
	group, err := s.registry.GroupByRoot(ctx, root)
	if err != nil {
		return err
	}

	// The proof internally commits to a message derived from exactly one
	// address. Recomputing it for the claimed address and comparing byte for
	// byte is what stops a captured proof being replayed for someone else.
	boundHash, err := s.oracle.ExtractMessageHash(req.Proof)
	if err != nil {
		return err
	}
	if boundHash != MessageDigest(AttestationMessage(req.PrivyAddress)) {
		return dErrors.New(dErrors.CodeMessageBindingMismatch, "proof is bound to a different identity")
	}

	signer, err := s.oracle.ExtractSignerAddress(req.Proof)
	if err != nil {
		return err
	}
	// A zero signer means the proof scheme carries no recoverable address;
	// the message binding above is the only in-proof identity check then.
	if !signer.IsZero() && !signer.Equal(req.PrivyAddress) {
		return dErrors.New(dErrors.CodeSignerMismatch, "proof signer does not match claimed address")
	}

	recovered, err := RecoverSigner(ProofBindingDigest(req.Proof), req.BindingSignature)
	if err != nil {
		return err
	}
	if !recovered.Equal(req.PrivyAddress) {
		return dErrors.New(dErrors.CodeInvalidBindingSignature, "binding signature was not produced by the claimed address")
	}

	user, err := s.grantor.ResolveAccount(ctx, req.PrivyAddress)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeAccountNotFound, "no account for address")
	}
	if err != nil {
		return err
	}

	added, err := s.store.Save(ctx, models.Attestation{
		UserID:           user.ID,
		GroupID:          group.ID,
		Proof:            req.Proof,
		BindingSignature: req.BindingSignature,
		CreatedAt:        requestcontext.Now(ctx),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist attestation")
	}

	// Grants are set unions, so replaying them after a duplicate save is
	// harmless. Credential first, then the room grant: a crash between the
	// two leaves a retryable state, never a room member without a credential.
	if _, err := s.grantor.RecordCredential(ctx, user.ID, group.ID); err != nil {
		return err
	}
	if err := s.grantor.GrantRoomRole(ctx, group.RoomID, user.ID, accmodels.RoleWriter); err != nil {
		return err
	}

	if added {
		s.metrics.IncrementOutcome("accepted")
		s.logger.InfoContext(ctx, "attestation accepted",
			"user_id", user.ID,
			"group_id", group.ID,
			"room_id", group.RoomID,
		)
	} else {
		s.metrics.IncrementOutcome("duplicate")
		s.logger.WarnContext(ctx, "duplicate attestation",
			"user_id", user.ID,
			"group_id", group.ID,
		)
	}
	return nil
}

// ConnectAddress verifies control of an additional wallet and its membership
// in every named group, then unions it into the user's connected set. All
// checks pass or nothing is persisted.
func (s *Service) ConnectAddress(ctx context.Context, req ConnectRequest) error {
	recovered, err := RecoverSigner(MessageDigest(ConnectMessage(req.Address)), req.Signature)
	if err != nil {
		return err
	}
	if !recovered.Equal(req.Address) {
		return dErrors.New(dErrors.CodeInvalidBindingSignature, "signature was not produced by the address being connected")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, groupID := range req.GroupIDs {
		g.Go(func() error {
			member, err := s.registry.HasLeaf(gctx, groupID, req.Address)
			if err != nil {
				return err
			}
			if !member {
				return dErrors.Newf(dErrors.CodeValidation, "address is not a member of group %s", groupID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.grantor.ConnectAddress(ctx, req.UserID, req.Address); err != nil {
		return err
	}
	s.metrics.ObserveConnectMatches(len(req.GroupIDs))
	s.logger.InfoContext(ctx, "address connected",
		"user_id", req.UserID,
		"address", req.Address,
		"groups", len(req.GroupIDs),
	)
	return nil
}

// Attestations lists the user's accepted attestations, newest first.
func (s *Service) Attestations(ctx context.Context, userID id.UserID) ([]models.Attestation, error) {
	out, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list attestations")
	}
	return out, nil
}
