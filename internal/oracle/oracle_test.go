package oracle

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credchat/internal/registry/models"
	dErrors "credchat/pkg/domain-errors"
)

// envelope builds a proof envelope with a recognizable header and an
// arbitrary body.
func envelope(root, msgHash [32]byte, signer [20]byte, body []byte) []byte {
	out := make([]byte, 0, bodyOffset+len(body))
	out = append(out, root[:]...)
	out = append(out, msgHash[:]...)
	out = append(out, signer[:]...)
	return append(out, body...)
}

func TestExtractHeader(t *testing.T) {
	root := [32]byte{1, 2, 3}
	msgHash := [32]byte{4, 5, 6}
	signer := [20]byte{7, 8, 9}
	proof := envelope(root, msgHash, signer, []byte{0xff})

	gotRoot, err := ExtractRoot(proof)
	require.NoError(t, err)
	assert.Equal(t, models.Root(root), gotRoot)

	gotHash, err := ExtractMessageHash(proof)
	require.NoError(t, err)
	assert.Equal(t, msgHash, gotHash)

	gotSigner, err := ExtractSignerAddress(proof)
	require.NoError(t, err)
	assert.Equal(t, signer[:], gotSigner.Bytes())
}

func TestExtractZeroSigner(t *testing.T) {
	proof := envelope([32]byte{1}, [32]byte{2}, [20]byte{}, []byte{0xff})

	signer, err := ExtractSignerAddress(proof)
	require.NoError(t, err)
	assert.True(t, signer.IsZero())
}

func TestExtractRejectsShortEnvelope(t *testing.T) {
	for _, n := range []int{0, 32, 64, bodyOffset} {
		short := make([]byte, n)

		_, err := ExtractRoot(short)
		assert.ErrorIs(t, err, ErrMalformed, "root at %d", n)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidProof), "root at %d", n)
		_, err = ExtractMessageHash(short)
		assert.ErrorIs(t, err, ErrMalformed, "hash at %d", n)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidProof), "hash at %d", n)
		_, err = ExtractSignerAddress(short)
		assert.ErrorIs(t, err, ErrMalformed, "signer at %d", n)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidProof), "signer at %d", n)
	}
}

func TestVerifyRejectsShortEnvelope(t *testing.T) {
	o := New("testdata/does-not-exist.vk")

	_, err := o.Verify(context.Background(), make([]byte, 12))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidProof))
}

// A proof rejected as unparseable is a fact about the submission. The caller
// must see a client rejection, never a server fault.
func TestMalformedProofMapsToClientRejection(t *testing.T) {
	o := New("testdata/does-not-exist.vk")

	_, err := o.Verify(context.Background(), make([]byte, bodyOffset))
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeInvalidProof, dErrors.CodeOf(err))
	assert.Equal(t, http.StatusBadRequest, dErrors.ToHTTPStatus(dErrors.CodeOf(err)))
	assert.False(t, dErrors.IsRetryable(err))
}

func TestVerifyMissingKeyIsInfraError(t *testing.T) {
	o := New("testdata/does-not-exist.vk")
	proof := envelope([32]byte{1}, [32]byte{2}, [20]byte{3}, []byte{0xff})

	_, err := o.Verify(context.Background(), proof)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeOracleInfra))
	assert.True(t, dErrors.IsRetryable(err))
}

func TestVerifyCancelledContext(t *testing.T) {
	o := New("testdata/does-not-exist.vk")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Verify(ctx, envelope([32]byte{1}, [32]byte{2}, [20]byte{3}, []byte{0xff}))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeOracleInfra))
}
