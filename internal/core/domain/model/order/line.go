package order

import (
	"errors"
	"fmt"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one negotiated item of an order. Lines are changed only through
// their Order.
type Line struct {
	id         kernel.UUID
	materialID kernel.UUID
	quantity   decimal.Decimal
	price      decimal.Decimal
	status     LineStatus

	// lastActor is the party that revised or rejected the line last; it may
	// not revise again until the other party has acted.
	lastActor     kernel.Role
	revisionCount int

	guard guard.ConstructorGuard
}

// NewLine creates a Pending line.
func NewLine(id, materialID kernel.UUID, quantity, price decimal.Decimal) (*Line, error) {
	line := &Line{
		status: LinePending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setMaterialID(materialID),
		line.setTerms(quantity, price),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine rebuilds a line loaded from storage.
func RestoreLine(
	id, materialID kernel.UUID,
	quantity, price decimal.Decimal,
	status LineStatus,
	lastActor kernel.Role,
	revisionCount int,
) (*Line, error) {
	line := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setMaterialID(materialID),
		line.setTerms(quantity, price),
		line.setStatus(status),
		line.setLastActor(lastActor),
		line.setRevisionCount(revisionCount),
	); err != nil {
		return nil, err
	}

	return line, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) MaterialID() kernel.UUID {
	return l.materialID
}

func (l *Line) Quantity() decimal.Decimal {
	return l.quantity
}

func (l *Line) Price() decimal.Decimal {
	return l.price
}

func (l *Line) Status() LineStatus {
	return l.status
}

// LastActor returns the party that revised or rejected the line last, or
// kernel.RoleUnknown for an untouched line.
func (l *Line) LastActor() kernel.Role {
	return l.lastActor
}

func (l *Line) RevisionCount() int {
	return l.revisionCount
}

func (l *Line) revise(role kernel.Role, quantity, price decimal.Decimal) error {
	if err := validateTerms(quantity, price); err != nil {
		return err
	}

	// a settled line reports the transition, not the turn
	if !lineStatusTable.IsTerminal(l.status) && l.lastActor == role {
		return errs.NewNotYourTurnError("order line", l.id.String(), role.String())
	}

	next, err := lineStatusTable.Next(l.status, statemachine.Revise, role)
	if err != nil {
		return err
	}

	l.quantity = quantity
	l.price = price
	l.status = next
	l.lastActor = role
	l.revisionCount++
	return nil
}

func (l *Line) approve(role kernel.Role) error {
	next, err := lineStatusTable.Next(l.status, statemachine.Approve, role)
	if err != nil {
		return err
	}

	l.status = next
	return nil
}

func (l *Line) reject(role kernel.Role) error {
	next, err := lineStatusTable.Next(l.status, statemachine.Reject, role)
	if err != nil {
		return err
	}

	l.status = next
	l.lastActor = role
	return nil
}

// setLastActor accepts only the negotiating parties, or RoleUnknown for a
// line nobody has touched.
func (l *Line) setLastActor(role kernel.Role) error {
	if role != kernel.RoleUnknown && role != kernel.Customer && role != kernel.Supplier {
		return errs.NewValueIsInvalidErrorWithCause("lastActor", fmt.Errorf("%d is not a negotiating party", role))
	}
	l.lastActor = role
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setMaterialID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("materialID", err)
	}
	l.materialID = id
	return nil
}

func (l *Line) setTerms(quantity, price decimal.Decimal) error {
	if err := validateTerms(quantity, price); err != nil {
		return err
	}
	l.quantity = quantity
	l.price = price
	return nil
}

func validateTerms(quantity, price decimal.Decimal) error {
	var quantityErr, priceErr error
	if !quantity.IsPositive() {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", quantity))
	}
	if price.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	return errors.Join(quantityErr, priceErr)
}

func (l *Line) setStatus(status LineStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}

func (l *Line) setRevisionCount(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("revisionCount", n, 0, "unbounded")
	}
	l.revisionCount = n
	return nil
}
