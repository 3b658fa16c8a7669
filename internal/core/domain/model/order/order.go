package order

import (
	"fmt"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/core/domain/model/workflow"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError(
	"Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the purchase model. It exclusively owns its
// line items and adjustments (they are created through the aggregate and die
// with it on rollback), and holds non-owning references to the store, the
// customer, and an optional billing profile.
//
// Invariants:
//   - exactly one store reference
//   - the state is always a value declared in the order type's workflow
//   - every line item and adjustment carries the order's currency
//   - state only changes through ApplyTransition
//
// New orders start in the workflow's draft (cart-equivalent) state; the
// assembler finalizes them into the customer-visible pending state exactly
// once by applying the place transition.
type Order struct {
	id               kernel.UUID
	typeID           string
	storeID          kernel.UUID
	customerID       kernel.UUID
	billingProfileID *kernel.UUID
	state            workflow.State
	lineItems        []*LineItem
	adjustments      []Adjustment
	currencyCode     string

	isConstructed bool
}

// NewOrder creates an order in the draft state.
func NewOrder(
	id kernel.UUID,
	typeID string,
	storeID kernel.UUID,
	customerID kernel.UUID,
	currencyCode string,
) (*Order, error) {
	return RestoreOrder(id, typeID, storeID, customerID, currencyCode,
		workflow.StateDraft, nil, nil, nil)
}

// RestoreOrder reconstructs an order from persistence with its full state.
func RestoreOrder(
	id kernel.UUID,
	typeID string,
	storeID kernel.UUID,
	customerID kernel.UUID,
	currencyCode string,
	state workflow.State,
	lineItems []*LineItem,
	adjustments []Adjustment,
	billingProfileID *kernel.UUID,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if typeID == "" {
		return nil, errs.NewValueIsRequiredError("order type")
	}
	if err := storeID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("store", err)
	}
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	if _, err := money.NewPriceFromString("0", currencyCode); err != nil {
		return nil, err
	}
	if state == "" {
		return nil, errs.NewValueIsRequiredError("order state")
	}

	o := &Order{
		id:            id,
		typeID:        typeID,
		storeID:       storeID,
		customerID:    customerID,
		state:         state,
		currencyCode:  currencyCode,
		isConstructed: true,
	}

	for _, li := range lineItems {
		if err := o.AddLineItem(li, false); err != nil {
			return nil, err
		}
	}
	for _, a := range adjustments {
		if err := o.AddAdjustment(a); err != nil {
			return nil, err
		}
	}
	if billingProfileID != nil {
		if err := o.SetBillingProfile(*billingProfileID); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TypeID returns the order type id, which selects the workflow.
func (o *Order) TypeID() string {
	return o.typeID
}

// StoreID returns the selling store reference.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// CustomerID returns the purchasing customer reference.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// BillingProfileID returns the attached billing profile id, or nil.
func (o *Order) BillingProfileID() *kernel.UUID {
	if o.billingProfileID == nil {
		return nil
	}
	id := *o.billingProfileID
	return &id
}

// State returns the current workflow state.
func (o *Order) State() workflow.State {
	return o.state
}

// CurrencyCode returns the order currency.
func (o *Order) CurrencyCode() string {
	return o.currencyCode
}

// LineItems returns the ordered line item sequence. The slice is a copy but
// the items are the aggregate's own; callers must not mutate them.
func (o *Order) LineItems() []*LineItem {
	out := make([]*LineItem, len(o.lineItems))
	copy(out, o.lineItems)
	return out
}

// Adjustments returns a copy of the order-level adjustments.
func (o *Order) Adjustments() []Adjustment {
	out := make([]Adjustment, len(o.adjustments))
	copy(out, o.adjustments)
	return out
}

// AddLineItem appends a line item to the order. When combine is true and a
// line item for the same purchasable entity already exists, the quantities
// are merged instead of creating a second line.
func (o *Order) AddLineItem(li *LineItem, combine bool) error {
	if err := li.Validate(); err != nil {
		return err
	}
	if li.UnitPrice().CurrencyCode() != o.currencyCode {
		return errs.NewValueIsInvalidErrorWithCause("line item currency",
			fmt.Errorf("%s does not match order currency %s",
				li.UnitPrice().CurrencyCode(), o.currencyCode))
	}

	if combine {
		for _, existing := range o.lineItems {
			if existing.PurchasedEntity().IsEqual(li.PurchasedEntity()) {
				return existing.IncreaseQuantity(li.Quantity())
			}
		}
	}

	o.lineItems = append(o.lineItems, li)
	return nil
}

// Empty removes every line item and order-level adjustment. Used by the
// assembler's compensating rollback before the order itself is deleted.
func (o *Order) Empty() {
	o.lineItems = nil
	o.adjustments = nil
}

// AddAdjustment attaches an order-level adjustment carrying the order currency.
func (o *Order) AddAdjustment(a Adjustment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Amount().CurrencyCode() != o.currencyCode {
		return errs.NewValueIsInvalidErrorWithCause("adjustment currency",
			fmt.Errorf("%s does not match order currency %s",
				a.Amount().CurrencyCode(), o.currencyCode))
	}

	o.adjustments = append(o.adjustments, a)
	return nil
}

// SetBillingProfile attaches a billing profile reference.
func (o *Order) SetBillingProfile(profileID kernel.UUID) error {
	if err := profileID.Validate(); err != nil {
		return err
	}
	id := profileID
	o.billingProfileID = &id
	return nil
}

// ApplyTransition moves the order along the given workflow transition. The
// transition must be legal from the current state; on rejection the state is
// left unchanged.
func (o *Order) ApplyTransition(t workflow.Transition) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.IsLegalFrom(o.state) {
		return errs.NewConflictErrorWithCause(
			"transition is not available from the current state",
			fmt.Errorf("transition %q cannot be applied from state %q", t.Name(), o.state))
	}

	o.state = t.To()
	return nil
}

// TotalPrice sums the line item totals and the order-level adjustments.
// An order without line items has a zero total in the order currency.
func (o *Order) TotalPrice() (money.Price, error) {
	total, err := money.NewPriceFromString("0", o.currencyCode)
	if err != nil {
		return money.Price{}, err
	}

	for _, li := range o.lineItems {
		liTotal, liErr := li.TotalPrice()
		if liErr != nil {
			return money.Price{}, liErr
		}
		if total, err = total.Add(liTotal); err != nil {
			return money.Price{}, err
		}
	}
	for _, a := range o.adjustments {
		if total, err = total.Add(a.Amount()); err != nil {
			return money.Price{}, err
		}
	}

	return total, nil
}
