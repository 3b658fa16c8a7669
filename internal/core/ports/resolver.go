package ports

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
)

// LineItemDraft carries a resolved purchasable entity and the requested
// quantity before any order exists to hold it.
type LineItemDraft struct {
	PurchasedEntity PurchasableEntity
	Quantity        int
}

// OrderTypeResolver decides which order type a line item draft belongs to.
// An empty string means the resolver abstains and the next resolver in the
// chain is consulted.
type OrderTypeResolver interface {
	Resolve(ctx context.Context, draft LineItemDraft) (string, error)
}

// WorkflowProvider returns the workflow governing orders of a given type.
type WorkflowProvider interface {
	ForOrderType(orderTypeID string) (*workflow.Workflow, error)
}
