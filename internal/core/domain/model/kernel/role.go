package kernel

import (
	"errors"
	"fmt"

	"vendorportal/internal/pkg/errs"
)

// Role is the party on whose behalf an action is performed.
type Role int

const (
	RoleUnknown Role = iota
	Customer
	Supplier
	// System is the portal itself: the import poller, award side effects
	// and company administration.
	System
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		Customer:    "Customer",
		Supplier:    "Supplier",
		System:      "System",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// RoleFromString parses a role name case-sensitively as it appears on the wire.
func RoleFromString(s string) (Role, error) {
	for r, name := range getRoleStrings() {
		if r != RoleUnknown && name == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Actor is an authenticated caller: a company id acting in a role.
type Actor struct {
	id   UUID
	role Role
}

// NewActor validates and builds an Actor.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// SystemActor is the portal acting on its own behalf under the given id.
func SystemActor(id UUID) Actor {
	return Actor{id: id, role: System}
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
