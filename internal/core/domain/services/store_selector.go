package services

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// StoreSelector is a domain service that picks the store a new order is
// placed against, based on where the first purchasable entity is sold.
//
// Business rules:
//   - An entity sold from exactly one store selects that store.
//   - An entity sold from no store is a data integrity fault.
//   - An entity sold from several stores selects the caller's current store,
//     and it is a fault when the current store is not among them.
type StoreSelector struct {
	currentStore ports.CurrentStoreProvider
}

// NewStoreSelector creates a new StoreSelector backed by the given current
// store provider.
func NewStoreSelector(currentStore ports.CurrentStoreProvider) (StoreSelector, error) {
	if currentStore == nil {
		return StoreSelector{}, errs.NewValueIsRequiredError("currentStore")
	}
	return StoreSelector{currentStore: currentStore}, nil
}

// Select resolves the store for an entity sold from the given stores.
func (s StoreSelector) Select(ctx context.Context, storeIDs []kernel.UUID) (kernel.UUID, error) {
	switch len(storeIDs) {
	case 0:
		return kernel.UUID{}, errs.NewIntegrityFaultError(
			"the given entity is not assigned to any store")
	case 1:
		return storeIDs[0], nil
	}

	current, err := s.currentStore.CurrentStore(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	for _, id := range storeIDs {
		if id.IsEqual(current) {
			return current, nil
		}
	}

	return kernel.UUID{}, errs.NewIntegrityFaultError(
		"the given entity can't be purchased from the current store")
}
