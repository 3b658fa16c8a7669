// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows. Line items
// live in their own table and are deleted together with their order.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/order"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Adjustments are stored denormalized as a jsonb column; they are immutable
// value objects and never queried on their own.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type             string         `gorm:"type:varchar(64)"`
	StoreID          uuid.UUID      `gorm:"type:uuid;index"`
	CustomerID       uuid.UUID      `gorm:"type:uuid;index"`
	BillingProfileID *uuid.UUID     `gorm:"type:uuid"`
	State            string         `gorm:"type:varchar(32);index"`
	CurrencyCode     string         `gorm:"type:char(3)"`
	Adjustments      AdjustmentsDTO `gorm:"type:jsonb"`
	Items            []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item. Position preserves the
// order in which items were added to the aggregate.
type OrderItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	EntityType      string    `gorm:"type:varchar(64)"`
	EntityID        uuid.UUID `gorm:"type:uuid"`
	Title           string
	Quantity        int
	UnitPriceAmount decimal.Decimal `gorm:"type:numeric(19,6)"`
	CurrencyCode    string          `gorm:"type:char(3)"`
	Adjustments     AdjustmentsDTO  `gorm:"type:jsonb"`
	Position        int
}

// TableName specifies the database table name for line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// AdjustmentDTO is the JSON shape of one stored adjustment.
type AdjustmentDTO struct {
	Type         string  `json:"type"`
	Label        string  `json:"label"`
	Amount       string  `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
	SourceID     string  `json:"source_id,omitempty"`
	Percentage   *string `json:"percentage,omitempty"`
	Locked       bool    `json:"locked"`
}

// AdjustmentsDTO stores a list of adjustments as a single jsonb value.
type AdjustmentsDTO []AdjustmentDTO

// Value implements driver.Valuer for the jsonb column.
func (a AdjustmentsDTO) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for the jsonb column.
func (a *AdjustmentsDTO) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scanning adjustments: unsupported type %T", src)
	}

	return json.Unmarshal(raw, a)
}

func adjustmentsFromDomain(adjustments []order.Adjustment) AdjustmentsDTO {
	if len(adjustments) == 0 {
		return nil
	}

	dtos := make(AdjustmentsDTO, 0, len(adjustments))
	for _, a := range adjustments {
		dto := AdjustmentDTO{
			Type:         a.Type(),
			Label:        a.Label(),
			Amount:       a.Amount().Amount().String(),
			CurrencyCode: a.Amount().CurrencyCode(),
			SourceID:     a.SourceID(),
			Locked:       a.IsLocked(),
		}
		if pct := a.Percentage(); pct != nil {
			s := pct.String()
			dto.Percentage = &s
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func adjustmentsToDomain(dtos AdjustmentsDTO) ([]order.Adjustment, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	adjustments := make([]order.Adjustment, 0, len(dtos))
	for _, dto := range dtos {
		amount, err := money.NewPriceFromString(dto.Amount, dto.CurrencyCode)
		if err != nil {
			return nil, err
		}

		var pct *decimal.Decimal
		if dto.Percentage != nil {
			parsed, parseErr := decimal.NewFromString(*dto.Percentage)
			if parseErr != nil {
				return nil, parseErr
			}
			pct = &parsed
		}

		a, err := order.NewAdjustment(dto.Type, dto.Label, amount, dto.SourceID, pct, dto.Locked)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var billingProfileID *uuid.UUID
	if id := aggregate.BillingProfileID(); id != nil {
		raw := id.Bytes()
		billingProfileID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.LineItems()))
	for position, li := range aggregate.LineItems() {
		items = append(items, OrderItemDTO{
			ID:              li.ID().Bytes(),
			OrderID:         aggregate.ID().Bytes(),
			EntityType:      li.PurchasedEntity().EntityType,
			EntityID:        li.PurchasedEntity().ID.Bytes(),
			Title:           li.Title(),
			Quantity:        li.Quantity(),
			UnitPriceAmount: li.UnitPrice().Amount(),
			CurrencyCode:    li.UnitPrice().CurrencyCode(),
			Adjustments:     adjustmentsFromDomain(li.Adjustments()),
			Position:        position,
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Type:             aggregate.TypeID(),
		StoreID:          aggregate.StoreID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		BillingProfileID: billingProfileID,
		State:            string(aggregate.State()),
		CurrencyCode:     aggregate.CurrencyCode(),
		Adjustments:      adjustmentsFromDomain(aggregate.Adjustments()),
		Items:            items,
	}
}

// toDomain converts database rows to an order aggregate. Items must already
// be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var billingProfileID *kernel.UUID
	if dto.BillingProfileID != nil {
		profileID, profileErr := kernel.UUIDFromBytes((*dto.BillingProfileID)[:])
		if profileErr != nil {
			return nil, profileErr
		}
		billingProfileID = &profileID
	}

	lineItems := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		li, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		lineItems = append(lineItems, li)
	}

	adjustments, err := adjustmentsToDomain(dto.Adjustments)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Type, storeID, customerID, dto.CurrencyCode,
		workflow.State(dto.State), lineItems, adjustments, billingProfileID)
}

func itemToDomain(dto OrderItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := money.NewPrice(dto.UnitPriceAmount, dto.CurrencyCode)
	if err != nil {
		return nil, err
	}

	adjustments, err := adjustmentsToDomain(dto.Adjustments)
	if err != nil {
		return nil, err
	}

	return order.RestoreLineItem(
		id,
		order.EntityRef{EntityType: dto.EntityType, ID: entityID},
		dto.Title,
		dto.Quantity,
		unitPrice,
		adjustments,
	)
}
