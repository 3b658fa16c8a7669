package commands

import (
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

var ErrApplyOrderTransitionCommandIsNotConstructed = errors.New(
	"ApplyOrderTransitionCommand must be created via NewApplyOrderTransitionCommand constructor",
)

// ApplyOrderTransitionCommand represents a request to move an order to its
// next workflow state. The caller states which state it believes the order is
// in; a mismatch rejects the request and protects against stale clients.
type ApplyOrderTransitionCommand struct { //nolint:recvcheck //using for validation
	callerID       kernel.UUID
	orderID        kernel.UUID
	fromState      workflow.State
	transitionName string

	guard guard.ConstructorGuard
}

// NewApplyOrderTransitionCommand creates a command to apply a named workflow
// transition to an order.
func NewApplyOrderTransitionCommand(
	callerID kernel.UUID,
	orderID kernel.UUID,
	fromState workflow.State,
	transitionName string,
) (ApplyOrderTransitionCommand, error) {
	transitionCommand := ApplyOrderTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setCallerID(callerID),
		transitionCommand.setOrderID(orderID),
		transitionCommand.setFromState(fromState),
		transitionCommand.setTransitionName(transitionName),
	); err != nil {
		return ApplyOrderTransitionCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyOrderTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderTransitionCommandIsNotConstructed)
}

// CallerID returns the customer requesting the transition.
func (c ApplyOrderTransitionCommand) CallerID() kernel.UUID {
	return c.callerID
}

// OrderID returns the order to transition.
func (c ApplyOrderTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FromState returns the state the caller expects the order to be in.
func (c ApplyOrderTransitionCommand) FromState() workflow.State {
	return c.fromState
}

// TransitionName returns the named workflow transition to apply.
func (c ApplyOrderTransitionCommand) TransitionName() string {
	return c.transitionName
}

func (c *ApplyOrderTransitionCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *ApplyOrderTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyOrderTransitionCommand) setFromState(fromState workflow.State) error {
	if fromState == "" {
		return errs.NewValueIsRequiredError("fromState")
	}

	c.fromState = fromState
	return nil
}

func (c *ApplyOrderTransitionCommand) setTransitionName(transitionName string) error {
	if transitionName == "" {
		return errs.NewValueIsRequiredError("transition")
	}

	c.transitionName = transitionName
	return nil
}
