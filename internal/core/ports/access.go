package ports

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
)

// AccessChecker answers capability questions about the calling customer.
// The host system owns accounts and permissions; this port only asks.
type AccessChecker interface {
	// CanCreateOrder reports whether the customer may assemble new orders.
	CanCreateOrder(ctx context.Context, customerID kernel.UUID) (bool, error)

	// CanManageOrder reports whether the customer may transition the order
	// or change its billing profile.
	CanManageOrder(ctx context.Context, customerID, orderID kernel.UUID) (bool, error)
}
