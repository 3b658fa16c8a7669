package ports

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
)

// ParentProduct is the denormalized snapshot of a purchasable entity's
// parent product, exposed by the normalizer under the reserved "_product"
// key. ImageURL is empty when the product carries no image.
type ParentProduct struct {
	ID       kernel.UUID
	Name     string
	Type     string
	ImageURL string
}

// PurchasableEntity is the host catalog's view of something that can be
// ordered: a priced entity sold from one or more stores, optionally hanging
// off a parent product.
type PurchasableEntity interface {
	ID() kernel.UUID
	EntityType() string
	Title() string
	Price() money.Price

	// StoreIDs returns the stores this entity is sold from. An empty set is
	// an upstream data fault, not a valid configuration.
	StoreIDs() []kernel.UUID

	// ParentProduct returns the parent product snapshot, or nil when the
	// entity has no parent product relation.
	ParentProduct() *ParentProduct
}

// PurchasableCatalog resolves purchasable entities from the host system.
type PurchasableCatalog interface {
	// HasDefinition reports whether entityType names a known purchasable
	// entity kind. Checked before any lock is taken.
	HasDefinition(entityType string) bool

	// Load resolves one purchasable entity. Returns an ObjectNotFoundError
	// when the id does not resolve to a purchasable entity of that type.
	Load(ctx context.Context, entityType string, id kernel.UUID) (PurchasableEntity, error)
}

// CurrentStoreProvider exposes the caller's contextual store, used to
// disambiguate purchasable entities sold from multiple stores.
type CurrentStoreProvider interface {
	CurrentStore(ctx context.Context) (kernel.UUID, error)
}
