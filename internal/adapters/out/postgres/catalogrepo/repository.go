// Package catalogrepo provides read-only access to the purchasable catalog:
// product variations, their store assignments and parent products. The core
// never writes catalog data.
package catalogrepo

import (
	"context"
	"errors"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/ports"
	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntityTypeProductVariation is the only purchasable entity kind this catalog
// serves.
const EntityTypeProductVariation = "product_variation"

// VariationDTO represents the database structure of a product variation.
// Store assignments are kept denormalized as a uuid array; variations are
// sold from few stores and the set is only ever read as a whole.
type VariationDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title        string
	PriceAmount  decimal.Decimal `gorm:"type:numeric(19,6)"`
	CurrencyCode string          `gorm:"type:char(3)"`
	StoreIDs     pq.StringArray  `gorm:"type:text[]"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index"`
	Product      *ProductDTO     `gorm:"foreignKey:ProductID"`
}

// TableName specifies the database table name for product variations.
func (VariationDTO) TableName() string {
	return "product_variations"
}

// ProductDTO represents the database structure of a parent product.
type ProductDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	Type     string `gorm:"type:varchar(64)"`
	ImageURL string
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// GormCatalogRepository implements PurchasableCatalog using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// HasDefinition reports whether entityType names a purchasable entity kind
// this catalog can load.
func (r *GormCatalogRepository) HasDefinition(entityType string) bool {
	return entityType == EntityTypeProductVariation
}

// Load resolves a product variation together with its parent product.
func (r *GormCatalogRepository) Load(
	ctx context.Context, entityType string, id kernel.UUID) (ports.PurchasableEntity, error) {
	if !r.HasDefinition(entityType) {
		return nil, errs.NewObjectNotFoundError("purchasedEntityType", entityType)
	}
	if err := id.Validate(); err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("purchasedEntityId", id.String(), err)
	}

	var dto VariationDTO
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("purchasedEntityId", id.String())
		}
		return nil, err
	}

	return toPurchasable(dto)
}

// purchasableEntity adapts a variation row to the catalog port.
type purchasableEntity struct {
	id      kernel.UUID
	title   string
	price   money.Price
	stores  []kernel.UUID
	product *ports.ParentProduct
}

func (e purchasableEntity) ID() kernel.UUID                     { return e.id }
func (e purchasableEntity) EntityType() string                  { return EntityTypeProductVariation }
func (e purchasableEntity) Title() string                       { return e.title }
func (e purchasableEntity) Price() money.Price                  { return e.price }
func (e purchasableEntity) ParentProduct() *ports.ParentProduct { return e.product }

func (e purchasableEntity) StoreIDs() []kernel.UUID {
	stores := make([]kernel.UUID, len(e.stores))
	copy(stores, e.stores)
	return stores
}

func toPurchasable(dto VariationDTO) (ports.PurchasableEntity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := money.NewPrice(dto.PriceAmount, dto.CurrencyCode)
	if err != nil {
		return nil, err
	}

	stores := make([]kernel.UUID, 0, len(dto.StoreIDs))
	for _, raw := range dto.StoreIDs {
		storeID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		stores = append(stores, storeID)
	}

	var product *ports.ParentProduct
	if dto.Product != nil {
		productID, productErr := kernel.UUIDFromBytes(dto.Product.ID[:])
		if productErr != nil {
			return nil, productErr
		}
		product = &ports.ParentProduct{
			ID:       productID,
			Name:     dto.Product.Name,
			Type:     dto.Product.Type,
			ImageURL: dto.Product.ImageURL,
		}
	}

	return purchasableEntity{
		id:      id,
		title:   dto.Title,
		price:   price,
		stores:  stores,
		product: product,
	}, nil
}
