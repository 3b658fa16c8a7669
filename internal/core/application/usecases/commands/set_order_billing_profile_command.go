package commands

import (
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

var ErrSetOrderBillingProfileCommandIsNotConstructed = errors.New(
	"SetOrderBillingProfileCommand must be created via NewSetOrderBillingProfileCommand constructor",
)

// SetOrderBillingProfileCommand represents a request to attach a billing
// profile to an order. The profile id is optional; when nil the caller's
// default active profile is used if one exists.
type SetOrderBillingProfileCommand struct { //nolint:recvcheck //using for validation
	callerID         kernel.UUID
	orderID          kernel.UUID
	billingProfileID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetOrderBillingProfileCommand creates a command to set an order's
// billing profile. billingProfileID may be nil.
func NewSetOrderBillingProfileCommand(
	callerID kernel.UUID,
	orderID kernel.UUID,
	billingProfileID *kernel.UUID,
) (SetOrderBillingProfileCommand, error) {
	profileCommand := SetOrderBillingProfileCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		profileCommand.setCallerID(callerID),
		profileCommand.setOrderID(orderID),
		profileCommand.setBillingProfileID(billingProfileID),
	); err != nil {
		return SetOrderBillingProfileCommand{}, err
	}

	return profileCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderBillingProfileCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderBillingProfileCommandIsNotConstructed)
}

// CallerID returns the customer making the request.
func (c SetOrderBillingProfileCommand) CallerID() kernel.UUID {
	return c.callerID
}

// OrderID returns the order to attach the profile to.
func (c SetOrderBillingProfileCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BillingProfileID returns the explicitly requested profile id, or nil when
// the caller left the choice to their default profile.
func (c SetOrderBillingProfileCommand) BillingProfileID() *kernel.UUID {
	if c.billingProfileID == nil {
		return nil
	}
	id := *c.billingProfileID
	return &id
}

func (c *SetOrderBillingProfileCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *SetOrderBillingProfileCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderBillingProfileCommand) setBillingProfileID(billingProfileID *kernel.UUID) error {
	if billingProfileID == nil {
		return nil
	}

	if err := billingProfileID.Validate(); err != nil {
		return err
	}

	id := *billingProfileID
	c.billingProfileID = &id
	return nil
}
