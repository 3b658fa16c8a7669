package commands

import (
	"context"
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// SetOrderBillingProfileCommandHandler attaches a billing profile to an
// order. An explicit profile id is verified against the profile store; when
// no id is given the caller's default active profile is used. A caller with
// no default profile is not an error, the order is simply returned unchanged.
type SetOrderBillingProfileCommandHandler struct {
	uowFactory OrderUoWFactory
	profiles   ports.ProfileRepository
	access     ports.AccessChecker
}

// NewSetOrderBillingProfileCommandHandler creates a handler for billing
// profile attachment.
func NewSetOrderBillingProfileCommandHandler(
	uowFactory OrderUoWFactory,
	profiles ports.ProfileRepository,
	access ports.AccessChecker,
) SetOrderBillingProfileCommandHandler {
	return SetOrderBillingProfileCommandHandler{
		uowFactory: uowFactory,
		profiles:   profiles,
		access:     access,
	}
}

// Handle processes the command and returns the order, updated or not.
func (h *SetOrderBillingProfileCommandHandler) Handle(
	ctx context.Context, cmd SetOrderBillingProfileCommand) (*order.Order, error) {
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

	profileID, err := h.resolveProfileID(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if profileID == nil {
		// Nothing to attach and nothing to persist. Tolerated.
		return aggregate, nil
	}

	if err = aggregate.SetBillingProfile(*profileID); err != nil {
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

// resolveProfileID picks the profile to attach. An explicit id must exist; a
// missing default active profile resolves to nil without error.
func (h *SetOrderBillingProfileCommandHandler) resolveProfileID(
	ctx context.Context, cmd SetOrderBillingProfileCommand) (*kernel.UUID, error) {
	if requested := cmd.BillingProfileID(); requested != nil {
		p, err := h.profiles.Get(ctx, *requested)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, errs.NewValueIsInvalidErrorWithCause("billingProfile", err)
			}
			return nil, err
		}
		id := p.ID()
		return &id, nil
	}

	p, err := h.profiles.GetDefaultActiveForOwner(ctx, cmd.CallerID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	id := p.ID()
	return &id, nil
}
