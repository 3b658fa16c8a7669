// Package queries contains read operations in the CQRS architecture. Queries
// never mutate state; their responses are normalized documents ready for the
// transport layer.
package queries

import (
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order as a fully normalized document.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
