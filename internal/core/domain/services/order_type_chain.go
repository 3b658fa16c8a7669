package services

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/ports"
)

// ChainOrderTypeResolver walks an ordered list of resolvers and returns the
// first non-empty decision. Resolvers registered first win. When every
// resolver abstains the chain falls back to the default order type, so
// resolution always succeeds for a resolvable purchasable entity.
type ChainOrderTypeResolver struct {
	resolvers []ports.OrderTypeResolver
}

// NewChainOrderTypeResolver creates a resolver chain. The slice is copied,
// later mutations of the argument do not affect the chain.
func NewChainOrderTypeResolver(resolvers ...ports.OrderTypeResolver) ChainOrderTypeResolver {
	chain := make([]ports.OrderTypeResolver, len(resolvers))
	copy(chain, resolvers)
	return ChainOrderTypeResolver{resolvers: chain}
}

// Resolve consults each resolver in registration order.
func (c ChainOrderTypeResolver) Resolve(ctx context.Context, draft ports.LineItemDraft) (string, error) {
	for _, r := range c.resolvers {
		orderTypeID, err := r.Resolve(ctx, draft)
		if err != nil {
			return "", err
		}
		if orderTypeID != "" {
			return orderTypeID, nil
		}
	}
	return workflow.DefaultOrderTypeID, nil
}

// DefaultOrderTypeResolver always answers with the default order type. It is
// the terminal resolver in a standard configuration.
type DefaultOrderTypeResolver struct{}

// Resolve returns the default order type for any draft.
func (DefaultOrderTypeResolver) Resolve(context.Context, ports.LineItemDraft) (string, error) {
	return workflow.DefaultOrderTypeID, nil
}
