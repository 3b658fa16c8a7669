package ports

import (
	"context"
	"time"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
)

// OrderRepository defines the persistence contract for order aggregates.
// Line items and adjustments are persisted and deleted together with their
// owning order; no partial order is ever visible to readers.
type OrderRepository interface {
	// Add persists a new order aggregate, including its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and, cascading, its line items. Used by the
	// assembler's compensating rollback.
	Delete(ctx context.Context, aggregate *order.Order) error

	// GetStaleInState retrieves orders that have been sitting in the given
	// workflow state for longer than olderThan. Used by the auto-complete job.
	GetStaleInState(ctx context.Context, state workflow.State, olderThan time.Duration) ([]*order.Order, error)
}
