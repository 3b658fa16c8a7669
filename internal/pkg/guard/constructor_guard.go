// Package guard provides the constructor guard pattern used by domain
// objects to detect zero-value instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as created through its designated
// constructor. Embedding a guard in a domain object lets Validate detect
// zero values that were never run through construction-time validation.
//
// Example:
//
//	type Price struct {
//	    amount decimal.Decimal
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewPrice(amount decimal.Decimal) (Price, error) {
//	    // ... validation ...
//	    return Price{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was properly constructed.
// For zero-value objects it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
