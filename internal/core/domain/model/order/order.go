package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrLinesAreRequired      = errs.NewValueIsRequiredError("lines")
	ErrReasonIsRequired      = errs.NewValueIsRequiredError("reason")
)

// Order is the aggregate root of a direct or tender-awarded order between a
// customer and a supplier.
//
// Invariants:
//   - at least one line, line ids unique within the order
//   - status equals Fold(lines) until the order is Closed
//   - history is append-only, the first entry is Created
//   - once Closed no line may change
type Order struct {
	id         kernel.UUID
	kind       Type
	customerID kernel.UUID
	supplierID kernel.UUID
	status     Status
	lines      []*Line
	history    []HistoryEntry
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewOrder creates an order in Created status with every line Pending and a
// Created history entry attributed to createdBy.
func NewOrder(
	id kernel.UUID,
	kind Type,
	customerID, supplierID kernel.UUID,
	lines []*Line,
	createdBy kernel.UUID,
) (*Order, error) {
	o := &Order{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(kind),
		o.setParties(customerID, supplierID),
		o.setLines(lines),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	for _, l := range o.lines {
		if l.status != LinePending {
			return nil, errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("line %s is %s, new orders take Pending lines only", l.id, l.status))
		}
	}

	o.status = Fold(o.lines)
	o.record(createdBy, HistoryCreated, nil, "")
	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. A stored status that
// disagrees with its lines is rejected.
func RestoreOrder(
	id kernel.UUID,
	kind Type,
	customerID, supplierID kernel.UUID,
	status Status,
	lines []*Line,
	history []HistoryEntry,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		history:   slices.Clone(history),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(kind),
		o.setParties(customerID, supplierID),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status != Closed && status != Fold(o.lines) {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("stored %s does not match %s derived from lines", status, Fold(o.lines)))
	}
	o.status = status

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Type() Type {
	return o.kind
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Lines returns the lines in their original order. The slice is a copy.
func (o *Order) Lines() []*Line {
	return slices.Clone(o.lines)
}

// History returns a copy of the audit log, oldest first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

// Line finds a line by id.
func (o *Order) Line(lineID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.id.IsEqual(lineID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("lineID", lineID.String())
}

// ReviseLine proposes new terms for a line on behalf of actor. The party that
// acted on the line last must wait for the other party.
func (o *Order) ReviseLine(actor kernel.Actor, lineID kernel.UUID, quantity, price decimal.Decimal) error {
	line, err := o.lineFor(actor, lineID, statemachine.Revise)
	if err != nil {
		return err
	}

	if err = line.revise(actor.Role(), quantity, price); err != nil {
		return err
	}

	o.status = Fold(o.lines)
	o.record(actor.ID(), HistoryRevised, &lineID, "")
	return nil
}

// ApproveLine accepts the current terms of a line. An Approved history entry
// is written when this approval completes the order.
func (o *Order) ApproveLine(actor kernel.Actor, lineID kernel.UUID) error {
	line, err := o.lineFor(actor, lineID, statemachine.Approve)
	if err != nil {
		return err
	}

	if err = line.approve(actor.Role()); err != nil {
		return err
	}

	previous := o.status
	o.status = Fold(o.lines)
	if o.status == Approved && previous != Approved {
		o.record(actor.ID(), HistoryApproved, &lineID, "")
	}
	return nil
}

// RejectLine declines a line. The order turns Rejected until the line is
// revised again by the other party.
func (o *Order) RejectLine(actor kernel.Actor, lineID kernel.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonIsRequired
	}

	line, err := o.lineFor(actor, lineID, statemachine.Reject)
	if err != nil {
		return err
	}

	if err = line.reject(actor.Role()); err != nil {
		return err
	}

	o.status = Fold(o.lines)
	o.record(actor.ID(), HistoryRejected, &lineID, reason)
	return nil
}

// Close moves an Approved order to the terminal Closed status.
func (o *Order) Close(actor kernel.Actor) error {
	if err := errors.Join(actor.Validate(), o.checkParty(actor)); err != nil {
		return err
	}

	next, err := statusTable.Next(o.status, statemachine.Close, actor.Role())
	if err != nil {
		return err
	}

	o.status = next
	o.record(actor.ID(), HistoryClosed, nil, "")
	return nil
}

// IsParty reports whether companyID is the customer or the supplier.
func (o *Order) IsParty(companyID kernel.UUID) bool {
	return o.customerID.IsEqual(companyID) || o.supplierID.IsEqual(companyID)
}

func (o *Order) lineFor(actor kernel.Actor, lineID kernel.UUID, action statemachine.Action) (*Line, error) {
	if err := errors.Join(actor.Validate(), o.checkParty(actor)); err != nil {
		return nil, err
	}

	if o.status == Closed {
		return nil, errs.NewInvalidTransitionError("order", o.status.String(), action.String(), actor.Role().String())
	}

	return o.Line(lineID)
}

func (o *Order) checkParty(actor kernel.Actor) error {
	switch actor.Role() {
	case kernel.Customer:
		if !actor.ID().IsEqual(o.customerID) {
			return errs.NewValueIsInvalidErrorWithCause("actor",
				fmt.Errorf("%s is not the customer of order %s", actor.ID(), o.id))
		}
	case kernel.Supplier:
		if !actor.ID().IsEqual(o.supplierID) {
			return errs.NewValueIsInvalidErrorWithCause("actor",
				fmt.Errorf("%s is not the supplier of order %s", actor.ID(), o.id))
		}
	}
	return nil
}

func (o *Order) record(actorID kernel.UUID, kind HistoryKind, lineID *kernel.UUID, note string) {
	o.history = append(o.history, newHistoryEntry(actorID, kind, lineID, note, time.Now().UTC()))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setType(kind Type) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setParties(customerID, supplierID kernel.UUID) error {
	if err := errors.Join(
		wrapRequired("customerID", customerID.Validate()),
		wrapRequired("supplierID", supplierID.Validate()),
	); err != nil {
		return err
	}
	if customerID.IsEqual(supplierID) {
		return errs.NewValueIsInvalidErrorWithCause("supplierID",
			fmt.Errorf("%s cannot supply itself", customerID))
	}
	o.customerID = customerID
	o.supplierID = supplierID
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), err)
		}
		if _, dup := seen[l.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("line %s appears twice", l.id))
		}
		seen[l.id] = struct{}{}
	}

	o.lines = slices.Clone(lines)
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
