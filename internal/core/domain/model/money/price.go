package money

import (
	"fmt"

	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPriceIsNotConstructed is returned when a Price was not created through
// NewPrice or NewPriceFromString.
var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError(
	"Price must be created via NewPrice or NewPriceFromString")

// Price is an immutable amount plus ISO currency code pair. The currency is
// fixed at construction time; arithmetic operations return new values and
// refuse to mix currencies. Amounts are arbitrary-precision decimals, so
// adjustment percentages and line item multiplication never lose cents.
//
// Negative amounts are allowed: promotion adjustments carry them. Order
// totals are kept non-negative by the Order aggregate, not by Price itself.
type Price struct { //nolint:recvcheck //using for validation
	amount       decimal.Decimal
	currencyCode string

	guard guard.ConstructorGuard
}

// NewPrice creates a Price with the given amount and ISO 4217 currency code.
// The code must be three upper-case letters.
func NewPrice(amount decimal.Decimal, currencyCode string) (Price, error) {
	if err := validateCurrencyCode(currencyCode); err != nil {
		return Price{}, err
	}

	return Price{
		amount:       amount,
		currencyCode: currencyCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewPriceFromString creates a Price from a decimal string such as "19.99".
// It is the constructor used when reading amounts from persistence or
// API payloads.
func NewPriceFromString(amount string, currencyCode string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	return NewPrice(d, currencyCode)
}

// Validate ensures the Price was created through a constructor.
func (p Price) Validate() error {
	return p.guard.Validate(ErrPriceIsNotConstructed)
}

// Amount returns the decimal amount.
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// CurrencyCode returns the ISO 4217 currency code.
func (p Price) CurrencyCode() string {
	return p.currencyCode
}

// Add returns a new Price with the other amount added.
// Both prices must carry the same currency.
func (p Price) Add(other Price) (Price, error) {
	if err := p.assertSameCurrency(other); err != nil {
		return Price{}, err
	}

	return NewPrice(p.amount.Add(other.amount), p.currencyCode)
}

// Subtract returns a new Price with the other amount subtracted.
// Both prices must carry the same currency.
func (p Price) Subtract(other Price) (Price, error) {
	if err := p.assertSameCurrency(other); err != nil {
		return Price{}, err
	}

	return NewPrice(p.amount.Sub(other.amount), p.currencyCode)
}

// Multiply returns a new Price with the amount multiplied by quantity.
func (p Price) Multiply(quantity int64) Price {
	multiplied := p.amount.Mul(decimal.NewFromInt(quantity))
	return Price{
		amount:       multiplied,
		currencyCode: p.currencyCode,
		guard:        guard.NewConstructorGuard(),
	}
}

// IsNegative reports whether the amount is below zero.
func (p Price) IsNegative() bool {
	return p.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

// IsEqual reports whether two prices have the same amount and currency.
func (p Price) IsEqual(other Price) bool {
	return p.currencyCode == other.currencyCode && p.amount.Equal(other.amount)
}

// String returns a human-readable "12.34 USD" representation.
func (p Price) String() string {
	return fmt.Sprintf("%s %s", p.amount.String(), p.currencyCode)
}

func (p Price) assertSameCurrency(other Price) error {
	if p.currencyCode != other.currencyCode {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency_code",
			fmt.Errorf("cannot combine %s with %s", p.currencyCode, other.currencyCode),
		)
	}
	return nil
}

func validateCurrencyCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("currency_code")
	}
	if len(code) != 3 {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency_code", fmt.Errorf("%q is not a three-letter ISO code", code))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause(
				"currency_code", fmt.Errorf("%q is not a three-letter ISO code", code))
		}
	}
	return nil
}
