package commands

import (
	"errors"
	"time"

	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

var ErrCompleteStaleOrdersCommandIsNotConstructed = errors.New(
	"CompleteStaleOrdersCommand must be created via NewCompleteStaleOrdersCommand constructor",
)

// CompleteStaleOrdersCommand represents a request to auto-complete every
// order that has been sitting in fulfillment for longer than the given age.
type CompleteStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewCompleteStaleOrdersCommand creates a command with the minimum age an
// order must have reached in fulfillment before it is completed.
func NewCompleteStaleOrdersCommand(olderThan time.Duration) (CompleteStaleOrdersCommand, error) {
	staleCommand := CompleteStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if olderThan <= 0 {
		return CompleteStaleOrdersCommand{}, errs.NewValueIsInvalidError("olderThan")
	}
	staleCommand.olderThan = olderThan

	return staleCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStaleOrdersCommandIsNotConstructed)
}

// OlderThan returns the minimum fulfillment age.
func (c CompleteStaleOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
