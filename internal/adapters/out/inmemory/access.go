package inmemory

import (
	"context"

	"github.com/solody/commerce-order-api/internal/core/domain/model/kernel"
)

// CustomerAccessChecker grants order permissions to any identified customer.
// Permission data lives in the host system; until an integration exists the
// only check available here is that the caller identified itself at all.
type CustomerAccessChecker struct{}

// NewCustomerAccessChecker creates the checker.
func NewCustomerAccessChecker() *CustomerAccessChecker {
	return &CustomerAccessChecker{}
}

// CanCreateOrder allows any customer with a valid id.
func (c *CustomerAccessChecker) CanCreateOrder(_ context.Context, customerID kernel.UUID) (bool, error) {
	return customerID.Validate() == nil, nil
}

// CanManageOrder allows any customer with a valid id.
func (c *CustomerAccessChecker) CanManageOrder(_ context.Context, customerID, _ kernel.UUID) (bool, error) {
	return customerID.Validate() == nil, nil
}
