package order

import (
	"github.com/solody/commerce-order-api/internal/core/domain/model/money"
	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrAdjustmentIsNotConstructed is returned when an Adjustment was not
// created via NewAdjustment.
var ErrAdjustmentIsNotConstructed = errs.NewValueIsRequiredError(
	"Adjustment must be created via NewAdjustment")

// Adjustment is an immutable named price modifier attached to an order or a
// line item: a promotion, a fee, a tax line. Amounts may be negative
// (discounts). Once attached to its owner an adjustment never changes; totals
// are recomputed by replacing adjustments, not by editing them.
type Adjustment struct {
	kind       string
	label      string
	amount     money.Price
	sourceID   string
	percentage *decimal.Decimal
	locked     bool

	guard guard.ConstructorGuard
}

// NewAdjustment creates an adjustment. kind names the adjustment family
// ("promotion", "fee", ...), label is the customer-facing text, sourceID
// optionally references the originating entity, and percentage is set when
// the amount was derived from a rate. Locked adjustments survive total
// recalculation.
func NewAdjustment(
	kind string,
	label string,
	amount money.Price,
	sourceID string,
	percentage *decimal.Decimal,
	locked bool,
) (Adjustment, error) {
	if kind == "" {
		return Adjustment{}, errs.NewValueIsRequiredError("adjustment type")
	}
	if label == "" {
		return Adjustment{}, errs.NewValueIsRequiredError("adjustment label")
	}
	if err := amount.Validate(); err != nil {
		return Adjustment{}, err
	}

	var pct *decimal.Decimal
	if percentage != nil {
		v := *percentage
		pct = &v
	}

	return Adjustment{
		kind:       kind,
		label:      label,
		amount:     amount,
		sourceID:   sourceID,
		percentage: pct,
		locked:     locked,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Adjustment was created through NewAdjustment.
func (a Adjustment) Validate() error {
	return a.guard.Validate(ErrAdjustmentIsNotConstructed)
}

// Type returns the adjustment family name.
func (a Adjustment) Type() string {
	return a.kind
}

// Label returns the customer-facing label.
func (a Adjustment) Label() string {
	return a.label
}

// Amount returns the adjustment amount.
func (a Adjustment) Amount() money.Price {
	return a.amount
}

// SourceID returns the id of the entity that produced the adjustment,
// or an empty string.
func (a Adjustment) SourceID() string {
	return a.sourceID
}

// Percentage returns the rate the amount was derived from, or nil.
func (a Adjustment) Percentage() *decimal.Decimal {
	if a.percentage == nil {
		return nil
	}
	v := *a.percentage
	return &v
}

// IsLocked reports whether the adjustment survives total recalculation.
func (a Adjustment) IsLocked() bool {
	return a.locked
}
