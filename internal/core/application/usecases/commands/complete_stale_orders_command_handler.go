package commands

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// OrderCompletedObserver is notified after an order has been auto-completed
// and committed. Observers must not mutate the order.
type OrderCompletedObserver func(ctx context.Context, completed *order.Order)

// CompleteStaleOrdersCommandHandler applies the complete transition to every
// order stuck in fulfillment past the configured age. Each order is processed
// in its own transaction; one bad order does not block the rest.
type CompleteStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	workflows  ports.WorkflowProvider
	observers  []OrderCompletedObserver
}

// NewCompleteStaleOrdersCommandHandler creates a handler for the order
// auto-complete pass. Observers are invoked per completed order.
func NewCompleteStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	workflows ports.WorkflowProvider,
	observers ...OrderCompletedObserver,
) CompleteStaleOrdersCommandHandler {
	return CompleteStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		workflows:  workflows,
		observers:  observers,
	}
}

// Handle completes stale orders and returns how many were completed.
func (h *CompleteStaleOrdersCommandHandler) Handle(
	ctx context.Context, cmd CompleteStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stale, err := h.uowFactory.Create().OrderRepository().
		GetStaleInState(ctx, workflow.StateFulfillment, cmd.OlderThan())
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, aggregate := range stale {
		if err = h.complete(ctx, aggregate); err != nil {
			return completed, err
		}
		completed++

		for _, notify := range h.observers {
			notify(ctx, aggregate)
		}
	}

	return completed, nil
}

func (h *CompleteStaleOrdersCommandHandler) complete(ctx context.Context, aggregate *order.Order) error {
	w, err := h.workflows.ForOrderType(aggregate.TypeID())
	if err != nil {
		return err
	}

	transition, ok := w.Transition(workflow.TransitionComplete)
	if !ok {
		return errs.NewIntegrityFaultError("workflow has no complete transition")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = aggregate.ApplyTransition(transition); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
