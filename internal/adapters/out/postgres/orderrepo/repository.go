package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Line items are replaced wholesale; the
// aggregate owns them and partial item updates are never meaningful.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("Type", "StoreID", "CustomerID", "BillingProfileID",
			"State", "CurrencyCode", "Adjustments", "UpdatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).
		Delete(&OrderItemDTO{}, "order_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its line items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order and, cascading, its line items.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	id := aggregate.ID().Bytes()

	if err := r.db.WithContext(ctx).
		Delete(&OrderItemDTO{}, "order_id = ?", id).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id).Error
}

// GetStaleInState retrieves orders sitting in the given state for longer
// than olderThan, ordered by last update.
func (r *GormOrderRepository) GetStaleInState(
	ctx context.Context, state workflow.State, olderThan time.Duration) ([]*order.Order, error) {
	cutoff := time.Now().Add(-olderThan)

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("state = ? AND updated_at < ?", string(state), cutoff).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
