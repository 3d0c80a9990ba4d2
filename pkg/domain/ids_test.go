package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "remit/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePaymentID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePaymentID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseMessageID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParsePaymentID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, PaymentID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety between
// aggregate ID kinds. If this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	messageID := MessageID(uuid.New())
	paymentID := PaymentID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ MessageID = paymentID   // compile error
	// var _ PaymentID = messageID   // compile error

	assert.NotEqual(t, uuid.UUID(messageID), uuid.UUID(paymentID))
}
