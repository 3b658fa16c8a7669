package kernel_test

import (
	"testing"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.NotEqual(t, uuid.Nil, id.Bytes())
}

func TestUUIDFromString(t *testing.T) {
	t.Run("valid_string", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("invalid_string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("wrong_length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x01, 0x02})

		require.Error(t, err)
	})

	t.Run("nil_uuid_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()
	id3 := id1

	assert.False(t, id1.IsEqual(id2))
	assert.True(t, id1.IsEqual(id3))
}

func TestUUID_Validate(t *testing.T) {
	t.Run("constructed_uuid_is_valid", func(t *testing.T) {
		require.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}
