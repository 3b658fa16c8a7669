package inmemory

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// StaticCurrentStore resolves the current store from configuration. A real
// storefront would derive it from the request host or an explicit header.
type StaticCurrentStore struct {
	storeID kernel.UUID
}

// NewStaticCurrentStore creates a provider pinned to the given store.
func NewStaticCurrentStore(storeID kernel.UUID) (*StaticCurrentStore, error) {
	if err := storeID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("storeID", err)
	}
	return &StaticCurrentStore{storeID: storeID}, nil
}

// CurrentStore returns the configured store id.
func (p *StaticCurrentStore) CurrentStore(_ context.Context) (kernel.UUID, error) {
	return p.storeID, nil
}
