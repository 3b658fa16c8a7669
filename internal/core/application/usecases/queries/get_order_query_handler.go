package queries

import (
	"context"
	"errors"

	"github.com/solody/commerce-order-api/internal/core/application/normalizer"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// GetOrderQueryHandler loads an order and serializes it through the
// contextual graph normalizer. The same handler backs the read endpoint and
// the response bodies of the mutating endpoints.
type GetOrderQueryHandler struct {
	orders     ports.OrderRepository
	builder    normalizer.OrderGraphBuilder
	normalizer normalizer.Normalizer
}

// NewGetOrderQueryHandler creates a handler over the given order store and
// graph builder.
func NewGetOrderQueryHandler(
	orders ports.OrderRepository, builder normalizer.OrderGraphBuilder) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:     orders,
		builder:    builder,
		normalizer: normalizer.NewNormalizer(),
	}
}

// Handle fetches the order and returns its normalized document.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context, query GetOrderQuery) (normalizer.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderId", err)
		}
		return nil, err
	}

	node, err := h.builder.BuildOrder(aggregate)
	if err != nil {
		return nil, err
	}

	return h.normalizer.Normalize(ctx, node)
}
