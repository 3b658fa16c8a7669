package commands_test

import (
	"testing"

	"github.com/solody/commerce-order-api/internal/core/application/usecases/commands"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssembleOrderCommand(t *testing.T) {
	customerID := kernel.NewUUID()

	t.Run("valid_command", func(t *testing.T) {
		cmd, err := commands.NewAssembleOrderCommand(customerID, "product_variation",
			[]commands.AssembleOrderItem{{EntityID: kernel.NewUUID(), Quantity: 2}})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "product_variation", cmd.PurchasedEntityType())
	})

	t.Run("quantity_defaults_to_one", func(t *testing.T) {
		cmd, err := commands.NewAssembleOrderCommand(customerID, "product_variation",
			[]commands.AssembleOrderItem{{EntityID: kernel.NewUUID()}})

		require.NoError(t, err)
		assert.Equal(t, 1, cmd.Items()[0].Quantity)
	})

	t.Run("negative_quantity_is_invalid", func(t *testing.T) {
		_, err := commands.NewAssembleOrderCommand(customerID, "product_variation",
			[]commands.AssembleOrderItem{{EntityID: kernel.NewUUID(), Quantity: -1}})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty_items_rejected", func(t *testing.T) {
		_, err := commands.NewAssembleOrderCommand(customerID, "product_variation", nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("empty_entity_type_rejected", func(t *testing.T) {
		_, err := commands.NewAssembleOrderCommand(customerID, "",
			[]commands.AssembleOrderItem{{EntityID: kernel.NewUUID()}})

		require.Error(t, err)
	})

	t.Run("unresolvable_entity_ids_are_accepted", func(t *testing.T) {
		// Resolution happens during assembly; bad ids are skipped there.
		cmd, err := commands.NewAssembleOrderCommand(customerID, "product_variation",
			[]commands.AssembleOrderItem{{EntityID: kernel.UUID{}, Quantity: 1}})

		require.NoError(t, err)
		assert.Len(t, cmd.Items(), 1)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var cmd commands.AssembleOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrAssembleOrderCommandIsNotConstructed, err)
	})
}
