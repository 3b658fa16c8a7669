package order

import (
	"fmt"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// via NewLineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"LineItem must be created via NewLineItem")

// EntityRef identifies a purchasable entity held by the host's catalog:
// the entity kind ("product_variation", ...) plus its id. The order keeps
// only this non-owning reference, never the catalog entity itself.
type EntityRef struct {
	EntityType string
	ID         kernel.UUID
}

// Validate checks that both parts of the reference are present.
func (r EntityRef) Validate() error {
	if r.EntityType == "" {
		return errs.NewValueIsRequiredError("purchased entity type")
	}
	return r.ID.Validate()
}

// IsEqual reports whether two references point at the same catalog entity.
func (r EntityRef) IsEqual(other EntityRef) bool {
	return r.EntityType == other.EntityType && r.ID.IsEqual(other.ID)
}

// LineItem is one purchasable entity plus quantity inside an order. Line
// items are owned by exactly one order: they are created during assembly and
// destroyed when the order is emptied or rolled back.
//
// Invariants:
//   - quantity is always at least 1
//   - the unit price currency matches the owning order's currency
//     (enforced by Order.AddLineItem)
type LineItem struct {
	id              kernel.UUID
	purchasedEntity EntityRef
	title           string
	quantity        int
	unitPrice       money.Price
	adjustments     []Adjustment

	isConstructed bool
}

// NewLineItem creates a line item for the given purchasable entity.
// Quantity must be at least 1.
func NewLineItem(
	id kernel.UUID,
	purchasedEntity EntityRef,
	title string,
	quantity int,
	unitPrice money.Price,
) (*LineItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := purchasedEntity.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not at least 1", quantity))
	}
	if err := unitPrice.Validate(); err != nil {
		return nil, err
	}

	return &LineItem{
		id:              id,
		purchasedEntity: purchasedEntity,
		title:           title,
		quantity:        quantity,
		unitPrice:       unitPrice,
		isConstructed:   true,
	}, nil
}

// RestoreLineItem reconstructs a line item from persistence, including its
// attached adjustments.
func RestoreLineItem(
	id kernel.UUID,
	purchasedEntity EntityRef,
	title string,
	quantity int,
	unitPrice money.Price,
	adjustments []Adjustment,
) (*LineItem, error) {
	li, err := NewLineItem(id, purchasedEntity, title, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	for _, a := range adjustments {
		if err = li.AddAdjustment(a); err != nil {
			return nil, err
		}
	}
	return li, nil
}

// Validate ensures the LineItem was created through a constructor.
func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item identifier.
func (li *LineItem) ID() kernel.UUID {
	return li.id
}

// PurchasedEntity returns the catalog reference this line item was built from.
func (li *LineItem) PurchasedEntity() EntityRef {
	return li.purchasedEntity
}

// Title returns the purchased entity title captured at assembly time.
func (li *LineItem) Title() string {
	return li.title
}

// Quantity returns the ordered quantity.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the per-unit price captured at assembly time.
func (li *LineItem) UnitPrice() money.Price {
	return li.unitPrice
}

// Adjustments returns a copy of the line item's adjustments.
func (li *LineItem) Adjustments() []Adjustment {
	out := make([]Adjustment, len(li.adjustments))
	copy(out, li.adjustments)
	return out
}

// IncreaseQuantity raises the quantity by the given amount. Used when a
// duplicate purchasable entity is combined into an existing line item.
func (li *LineItem) IncreaseQuantity(by int) error {
	if by < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("cannot increase quantity by %d", by))
	}
	li.quantity += by
	return nil
}

// AddAdjustment attaches an adjustment. The adjustment currency must match
// the line item's unit price currency.
func (li *LineItem) AddAdjustment(a Adjustment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Amount().CurrencyCode() != li.unitPrice.CurrencyCode() {
		return errs.NewValueIsInvalidErrorWithCause("adjustment currency",
			fmt.Errorf("%s does not match line item currency %s",
				a.Amount().CurrencyCode(), li.unitPrice.CurrencyCode()))
	}

	li.adjustments = append(li.adjustments, a)
	return nil
}

// TotalPrice returns unit price times quantity plus the line item's
// adjustments.
func (li *LineItem) TotalPrice() (money.Price, error) {
	total := li.unitPrice.Multiply(int64(li.quantity))

	var err error
	for _, a := range li.adjustments {
		if total, err = total.Add(a.Amount()); err != nil {
			return money.Price{}, err
		}
	}
	return total, nil
}
