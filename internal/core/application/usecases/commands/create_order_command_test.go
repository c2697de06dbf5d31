package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	orderID, storeID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should normalize currency", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(orderID, storeID, " usd ", nil, " a@b.c ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, kernel.Currency("USD"), cmd.Currency())
		assert.Equal(t, "a@b.c", cmd.Email())
		assert.Nil(t, cmd.CustomerID())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewCreateOrderCommand(zero, storeID, "dollars", &zero, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID")
		assert.Contains(t, err.Error(), "currency")
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
