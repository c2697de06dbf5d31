package kernel_test

import (
	"encoding/json"
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsZero())
	assert.False(t, id1.IsEqual(id2))
}

func TestParseUUID(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("accepts alternative notations", func(t *testing.T) {
		for _, input := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.ParseUUID(input)
			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.ParseUUID(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("MustParseUUID panics on malformed input", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustParseUUID("nope") })
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trips raw bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Raw()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(uuid.Nil[:])

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		OrderID kernel.UUID `json:"order_id"`
	}
	id := kernel.MustParseUUID("550e8400-e29b-41d4-a716-446655440000")

	data, err := json.Marshal(payload{OrderID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":"550e8400-e29b-41d4-a716-446655440000"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.IsEqual(decoded.OrderID))
}

func TestUUIDPtrEqual(t *testing.T) {
	a := kernel.NewUUID()
	b := kernel.NewUUID()
	aCopy := a

	assert.True(t, kernel.UUIDPtrEqual(nil, nil))
	assert.True(t, kernel.UUIDPtrEqual(&a, &aCopy))
	assert.False(t, kernel.UUIDPtrEqual(&a, &b))
	assert.False(t, kernel.UUIDPtrEqual(&a, nil))
	assert.False(t, kernel.UUIDPtrEqual(nil, &b))
}
