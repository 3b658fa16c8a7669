package commands

import (
	"context"
	"errors"
	"time"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/domain/services"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// AssemblyLockName is the single named lock serializing order assembly across
// every worker and process. Assembly touches shared store and order type
// resolution state, so the critical section is deliberately global.
const AssemblyLockName = "none_cart_order__create"

// AssembleOrderCommandHandler builds a new order from purchasable entities
// under the global assembly lock.
//
// The handler guarantees that either a fully populated order in the pending
// state is returned, or no order survives. Failures after the order has been
// persisted trigger a compensating rollback that empties and deletes it. The
// lock is released exactly once on every exit path.
type AssembleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.PurchasableCatalog
	mutex      ports.MutexService
	resolver   ports.OrderTypeResolver
	selector   services.StoreSelector
	workflows  ports.WorkflowProvider
	access     ports.AccessChecker
	lockWait   time.Duration
}

// NewAssembleOrderCommandHandler creates a handler for order assembly.
// lockWait bounds how long a request waits for the assembly lock to free
// before it is rejected as busy.
func NewAssembleOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.PurchasableCatalog,
	mutex ports.MutexService,
	resolver ports.OrderTypeResolver,
	selector services.StoreSelector,
	workflows ports.WorkflowProvider,
	access ports.AccessChecker,
	lockWait time.Duration,
) AssembleOrderCommandHandler {
	return AssembleOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		mutex:      mutex,
		resolver:   resolver,
		selector:   selector,
		workflows:  workflows,
		access:     access,
		lockWait:   lockWait,
	}
}

// Handle processes the order assembly command.
//
// Validation that needs no shared state runs before the lock is taken, so a
// malformed request never blocks other assemblies. Entity ids that do not
// resolve to a purchasable entity are skipped without failing the request.
func (h *AssembleOrderCommandHandler) Handle(
	ctx context.Context, cmd AssembleOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	allowed, err := h.access.CanCreateOrder(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.NewAccessDeniedError("create order")
	}

	if !h.catalog.HasDefinition(cmd.PurchasedEntityType()) {
		return nil, errs.NewValueIsInvalidError("purchasedEntityType")
	}

	if err = h.acquireLock(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = h.mutex.Release(ctx, AssemblyLockName)
	}()

	return h.buildOrder(ctx, cmd)
}

// acquireLock tries once, waits for the lock to free, then tries once more.
// A still-busy lock rejects the request rather than blocking indefinitely.
func (h *AssembleOrderCommandHandler) acquireLock(ctx context.Context) error {
	lockTTL := h.lockWait * 2

	acquired, err := h.mutex.Acquire(ctx, AssemblyLockName, lockTTL)
	if err != nil {
		return err
	}
	if acquired {
		return nil
	}

	if err = h.mutex.Wait(ctx, AssemblyLockName, h.lockWait); err != nil {
		return err
	}

	acquired, err = h.mutex.Acquire(ctx, AssemblyLockName, lockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return errs.NewConflictError("order assembly is busy, try again later")
	}

	return nil
}

// buildOrder runs inside the assembly lock. The unit of work is used without
// an open transaction so the compensating rollback on failure is an explicit,
// observable empty-and-delete of the persisted order.
func (h *AssembleOrderCommandHandler) buildOrder(
	ctx context.Context, cmd AssembleOrderCommand) (*order.Order, error) {
	orderRepo := h.uowFactory.Create().OrderRepository()

	var aggregate *order.Order

	// rollback discards the partially built order before surfacing err.
	rollback := func(err error) (*order.Order, error) {
		if aggregate != nil {
			aggregate.Empty()
			_ = orderRepo.Delete(ctx, aggregate)
		}
		return nil, err
	}

	for _, item := range cmd.Items() {
		entity, err := h.catalog.Load(ctx, cmd.PurchasedEntityType(), item.EntityID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return rollback(err)
		}

		if aggregate == nil {
			aggregate, err = h.createDraftOrder(ctx, cmd.CustomerID(), entity, item.Quantity)
			if err != nil {
				return rollback(err)
			}
			if err = orderRepo.Add(ctx, aggregate); err != nil {
				aggregate = nil
				return nil, err
			}
		}

		lineItem, err := order.NewLineItem(
			kernel.NewUUID(),
			order.EntityRef{EntityType: entity.EntityType(), ID: entity.ID()},
			entity.Title(),
			item.Quantity,
			entity.Price(),
		)
		if err != nil {
			return rollback(err)
		}

		if err = aggregate.AddLineItem(lineItem, true); err != nil {
			return rollback(err)
		}
	}

	if aggregate == nil {
		return nil, errs.NewValueIsInvalidError("purchasedItems")
	}

	if err := h.finalize(aggregate); err != nil {
		return rollback(err)
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return rollback(err)
	}

	return aggregate, nil
}

// createDraftOrder resolves the order type and store from the first resolved
// purchasable entity and opens a draft order in its currency.
func (h *AssembleOrderCommandHandler) createDraftOrder(
	ctx context.Context,
	customerID kernel.UUID,
	entity ports.PurchasableEntity,
	quantity int,
) (*order.Order, error) {
	draft := ports.LineItemDraft{PurchasedEntity: entity, Quantity: quantity}

	orderTypeID, err := h.resolver.Resolve(ctx, draft)
	if err != nil {
		return nil, err
	}
	if orderTypeID == "" {
		orderTypeID = workflow.DefaultOrderTypeID
	}

	storeID, err := h.selector.Select(ctx, entity.StoreIDs())
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		kernel.NewUUID(), orderTypeID, storeID, customerID, entity.Price().CurrencyCode())
}

// finalize applies the place transition exactly once, moving the order out of
// its draft cart-equivalent state into the customer visible pending state.
func (h *AssembleOrderCommandHandler) finalize(aggregate *order.Order) error {
	w, err := h.workflows.ForOrderType(aggregate.TypeID())
	if err != nil {
		return err
	}

	place, ok := w.Transition(workflow.TransitionPlace)
	if !ok {
		return errs.NewIntegrityFaultError("workflow has no place transition")
	}

	return aggregate.ApplyTransition(place)
}
