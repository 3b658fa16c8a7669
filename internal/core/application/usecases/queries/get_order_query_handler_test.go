package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/solody/commerce-order-api/internal/core/application/normalizer"
	"github.com/solody/commerce-order-api/internal/core/application/usecases/queries"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/profile"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetStaleInState(
	ctx context.Context, state workflow.State, olderThan time.Duration) ([]*order.Order, error) {
	args := m.Called(ctx, state, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type emptyProfiles struct{}

func (emptyProfiles) Get(_ context.Context, id kernel.UUID) (*profile.Profile, error) {
	return nil, errs.NewObjectNotFoundError("profileId", id)
}

func (emptyProfiles) GetDefaultActiveForOwner(context.Context, kernel.UUID) (*profile.Profile, error) {
	return nil, errs.NewObjectNotFoundError("ownerId", nil)
}

type emptyCatalog struct{}

func (emptyCatalog) HasDefinition(string) bool { return true }

func (emptyCatalog) Load(_ context.Context, _ string, id kernel.UUID) (ports.PurchasableEntity, error) {
	return nil, errs.NewObjectNotFoundError("purchasedEntityId", id)
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	builder := normalizer.NewOrderGraphBuilder(emptyProfiles{}, emptyCatalog{})

	t.Run("returns_normalized_document", func(t *testing.T) {
		// Given a pending order with one line item
		aggregate, err := order.NewOrder(
			kernel.NewUUID(), "default", kernel.NewUUID(), kernel.NewUUID(), "USD")
		require.NoError(t, err)

		unit, err := money.NewPriceFromString("19.99", "USD")
		require.NoError(t, err)
		li, err := order.NewLineItem(
			kernel.NewUUID(),
			order.EntityRef{EntityType: "product_variation", ID: kernel.NewUUID()},
			"Blue T-Shirt", 2, unit)
		require.NoError(t, err)
		require.NoError(t, aggregate.AddLineItem(li, true))

		repo := new(MockOrderRepository)
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

		query, err := queries.NewGetOrderQuery(aggregate.ID())
		require.NoError(t, err)

		// When handling the query
		doc, err := queries.NewGetOrderQueryHandler(repo, builder).Handle(ctx, query)

		// Then the document carries the order fields and the inlined line item
		require.NoError(t, err)
		assert.Equal(t, aggregate.ID().String(), doc["order_id"])
		assert.Equal(t, "draft", doc["state"])
		items, ok := doc["order_items"].([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		itemDoc, ok := items[0].(normalizer.Document)
		require.True(t, ok)
		assert.Equal(t, "Blue T-Shirt", itemDoc["title"])
	})

	t.Run("unknown_order_is_invalid_input", func(t *testing.T) {
		orderID := kernel.NewUUID()
		repo := new(MockOrderRepository)
		repo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once()

		query, err := queries.NewGetOrderQuery(orderID)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(repo, builder).Handle(ctx, query)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_query_fails_validation", func(t *testing.T) {
		var query queries.GetOrderQuery

		_, err := queries.NewGetOrderQueryHandler(new(MockOrderRepository), builder).Handle(ctx, query)

		require.Error(t, err)
	})
}
