package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "credchat/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseGroupID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID with whitespace", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID("  " + validUUID.String() + "\n")
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

func TestParseRoomID(t *testing.T) {
	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseRoomID("  ")
		require.Error(t, err)
	})

	t.Run("rejects oversized", func(t *testing.T) {
		_, err := ParseRoomID(strings.Repeat("a", 129))
		require.Error(t, err)
	})

	t.Run("accepts token-derived hex id", func(t *testing.T) {
		roomID, err := ParseRoomID("0x2a")
		require.NoError(t, err)
		assert.Equal(t, RoomID("0x2a"), roomID)
	})
}
