// Package guard holds ConstructorGuard, the marker aggregates embed to tell
// values built by their constructors apart from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set by NewX/RestoreX constructors. A zero value fails Validate.
//
// Example:
//
//	type Tender struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (t *Tender) Validate() error {
//	    return t.guard.Validate(ErrTenderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) unless the guard was created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
