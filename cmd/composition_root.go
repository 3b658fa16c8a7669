package cmd

import (
	"time"

	"github.com/solody/commerce-order-api/internal/adapters/out/inmemory"
	"github.com/solody/commerce-order-api/internal/adapters/out/postgres"
	"github.com/solody/commerce-order-api/internal/adapters/out/postgres/catalogrepo"
	"github.com/solody/commerce-order-api/internal/adapters/out/postgres/profilerepo"
	"github.com/solody/commerce-order-api/internal/core/application/normalizer"
	"github.com/solody/commerce-order-api/internal/core/application/usecases/commands"
	"github.com/solody/commerce-order-api/internal/core/application/usecases/queries"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/core/domain/services"
	"github.com/solody/commerce-order-api/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    *catalogrepo.GormCatalogRepository
	profiles   *profilerepo.GormProfileRepository
	registry   *workflow.Registry
	mutex      ports.MutexService
	selector   services.StoreSelector
	access     ports.AccessChecker
	lockWait   time.Duration
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	mutex ports.MutexService,
	registry *workflow.Registry,
) (CompositionRoot, error) {
	storeID, err := kernel.UUIDFromString(config.CurrentStoreID)
	if err != nil {
		return CompositionRoot{}, err
	}

	currentStore, err := inmemory.NewStaticCurrentStore(storeID)
	if err != nil {
		return CompositionRoot{}, err
	}

	selector, err := services.NewStoreSelector(currentStore)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogrepo.NewGormCatalogRepository(gormDB),
		profiles:   profilerepo.NewGormProfileRepository(gormDB),
		registry:   registry,
		mutex:      mutex,
		selector:   selector,
		access:     inmemory.NewCustomerAccessChecker(),
		lockWait:   time.Duration(config.LockWaitSeconds) * time.Second,
	}, nil
}

func (c *CompositionRoot) CreateAssembleOrderCommandHandler() commands.AssembleOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssembleOrderCommandHandler(
		f,
		c.catalog,
		c.mutex,
		services.NewChainOrderTypeResolver(),
		c.selector,
		c.registry,
		c.access,
		c.lockWait,
	)
}

func (c *CompositionRoot) CreateApplyOrderTransitionCommandHandler() commands.ApplyOrderTransitionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyOrderTransitionCommandHandler(f, c.registry, c.access)
}

func (c *CompositionRoot) CreateSetOrderBillingProfileCommandHandler() commands.SetOrderBillingProfileCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetOrderBillingProfileCommandHandler(f, c.profiles, c.access)
}

func (c *CompositionRoot) CreateCompleteStaleOrdersCommandHandler() commands.CompleteStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteStaleOrdersCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderQueryHandler(uow.OrderRepository(), c.CreateOrderGraphBuilder())
}

func (c *CompositionRoot) CreateOrderGraphBuilder() normalizer.OrderGraphBuilder {
	return normalizer.NewOrderGraphBuilder(c.profiles, c.catalog)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
