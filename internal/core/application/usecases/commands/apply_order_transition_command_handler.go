package commands

import (
	"context"
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// ApplyOrderTransitionCommandHandler guards workflow state transitions.
//
// The expected-state comparison is the only concurrency guard. No lock is
// taken; two racing callers can both pass the comparison and the last write
// wins. That is tolerated for a single-field state update.
type ApplyOrderTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	workflows  ports.WorkflowProvider
	access     ports.AccessChecker
}

// NewApplyOrderTransitionCommandHandler creates a handler for workflow
// transition requests.
func NewApplyOrderTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	workflows ports.WorkflowProvider,
	access ports.AccessChecker,
) ApplyOrderTransitionCommandHandler {
	return ApplyOrderTransitionCommandHandler{
		uowFactory: uowFactory,
		workflows:  workflows,
		access:     access,
	}
}

// Handle processes the transition command and returns the updated order.
func (h *ApplyOrderTransitionCommandHandler) Handle(
	ctx context.Context, cmd ApplyOrderTransitionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	allowed, err := h.access.CanManageOrder(ctx, cmd.CallerID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.NewAccessDeniedError("manage order")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderId", err)
		}
		return nil, err
	}

	if aggregate.State() != cmd.FromState() {
		return nil, errs.NewConflictError("order is not in the expected state")
	}

	w, err := h.workflows.ForOrderType(aggregate.TypeID())
	if err != nil {
		return nil, err
	}

	transition, ok := w.TransitionsFrom(aggregate.State())[cmd.TransitionName()]
	if !ok {
		return nil, errs.NewConflictError("transition is not available from the current state")
	}

	if err = aggregate.ApplyTransition(transition); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
