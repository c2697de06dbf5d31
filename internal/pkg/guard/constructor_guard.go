// Package guard detects domain objects that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in entities, commands and queries. Its zero
// value is "not constructed"; only NewConstructorGuard yields a valid guard,
// so a struct literal of the owner fails Validate.
//
// Example:
//
//	type AddPaymentCommand struct {
//	    amount int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c AddPaymentCommand) Validate() error {
//	    return c.guard.Validate(ErrAddPaymentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
