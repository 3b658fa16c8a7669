package commands_test

import (
	"context"
	"time"

	"github.com/solody/commerce-order-api/internal/core/application/usecases/commands"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/profile"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/ports"

	"github.com/stretchr/testify/mock"
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

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) HasDefinition(entityType string) bool {
	args := m.Called(entityType)
	return args.Bool(0)
}

func (m *MockCatalog) Load(
	ctx context.Context, entityType string, id kernel.UUID) (ports.PurchasableEntity, error) {
	args := m.Called(ctx, entityType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.PurchasableEntity), args.Error(1)
}

type MockMutexService struct{ mock.Mock }

func (m *MockMutexService) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockMutexService) Wait(ctx context.Context, name string, timeout time.Duration) error {
	args := m.Called(ctx, name, timeout)
	return args.Error(0)
}

func (m *MockMutexService) Release(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Get(ctx context.Context, id kernel.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetDefaultActiveForOwner(
	ctx context.Context, ownerID kernel.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

type MockAccessChecker struct{ mock.Mock }

func (m *MockAccessChecker) CanCreateOrder(ctx context.Context, customerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessChecker) CanManageOrder(ctx context.Context, customerID, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, customerID, orderID)
	return args.Bool(0), args.Error(1)
}

// stubPurchasable is a fixed-value ports.PurchasableEntity for assembly tests.
type stubPurchasable struct {
	id      kernel.UUID
	title   string
	price   money.Price
	stores  []kernel.UUID
	product *ports.ParentProduct
}

func (s stubPurchasable) ID() kernel.UUID                     { return s.id }
func (s stubPurchasable) EntityType() string                  { return "product_variation" }
func (s stubPurchasable) Title() string                       { return s.title }
func (s stubPurchasable) Price() money.Price                  { return s.price }
func (s stubPurchasable) StoreIDs() []kernel.UUID             { return s.stores }
func (s stubPurchasable) ParentProduct() *ports.ParentProduct { return s.product }
