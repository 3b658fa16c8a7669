// Package money holds the Price value object shared by orders, line items,
// and adjustments. Prices pair an arbitrary-precision decimal amount with an
// ISO currency code and never change after construction.
package money
