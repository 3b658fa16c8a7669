package commands

import (
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

var ErrAssembleOrderCommandIsNotConstructed = errors.New(
	"AssembleOrderCommand must be created via NewAssembleOrderCommand constructor",
)

// AssembleOrderItem is one requested order line: a purchasable entity id and
// a quantity. A zero quantity means the caller omitted it and defaults to 1.
type AssembleOrderItem struct {
	EntityID kernel.UUID
	Quantity int
}

// AssembleOrderCommand represents a request to build a new order outside a
// shopping cart from a list of purchasable entities.
//
// Entity ids are not validated here on purpose. Ids that do not resolve to a
// purchasable entity are skipped silently during assembly.
type AssembleOrderCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	purchasedEntityType string
	items               []AssembleOrderItem

	guard guard.ConstructorGuard
}

// NewAssembleOrderCommand creates a command to assemble a new order.
// Validates that the customer id is set, the purchasable entity type is not
// empty and at least one item was requested with a non-negative quantity.
func NewAssembleOrderCommand(
	customerID kernel.UUID,
	purchasedEntityType string,
	items []AssembleOrderItem,
) (AssembleOrderCommand, error) {
	assembleCommand := AssembleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assembleCommand.setCustomerID(customerID),
		assembleCommand.setPurchasedEntityType(purchasedEntityType),
		assembleCommand.setItems(items),
	); err != nil {
		return AssembleOrderCommand{}, err
	}

	return assembleCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssembleOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssembleOrderCommandIsNotConstructed)
}

// CustomerID returns the customer the order is assembled for.
func (c AssembleOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// PurchasedEntityType returns the purchasable entity kind of every item.
func (c AssembleOrderCommand) PurchasedEntityType() string {
	return c.purchasedEntityType
}

// Items returns the requested items with quantities already defaulted.
func (c AssembleOrderCommand) Items() []AssembleOrderItem {
	items := make([]AssembleOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *AssembleOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AssembleOrderCommand) setPurchasedEntityType(purchasedEntityType string) error {
	if purchasedEntityType == "" {
		return errs.NewValueIsRequiredError("purchasedEntityType")
	}

	c.purchasedEntityType = purchasedEntityType
	return nil
}

func (c *AssembleOrderCommand) setItems(items []AssembleOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("purchasedItems")
	}

	normalized := make([]AssembleOrderItem, len(items))
	for i, item := range items {
		if item.Quantity < 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		normalized[i] = item
	}

	c.items = normalized
	return nil
}
