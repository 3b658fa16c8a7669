// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of aggregates affected by a
// business transaction and coordinates writing out changes.
//
// Key Features:
//   - Transaction management across repository calls
//   - Aggregate tracking for post-commit processing
//   - Proper isolation between concurrent operations
//   - Direct (non-transactional) repository access when no transaction is
//     open, which the order assembler uses for its compensating rollback
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Update(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"github.com/solody/commerce-order-api/internal/adapters/out/postgres/orderrepo"
	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Repositories obtained from it run inside
// the current transaction when one is active; otherwise they execute against
// the main connection immediately.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence operations within the
// unit of work. The returned repository tracks every aggregate it adds or
// updates.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Typically called by repository implementations.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
