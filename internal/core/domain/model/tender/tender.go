package tender

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
)

var (
	ErrTenderIsNotConstructed = errors.New("Tender must be created via NewTender constructor")
	ErrTitleIsRequired        = errs.NewValueIsRequiredError("title")
	ErrReasonIsRequired       = errs.NewValueIsRequiredError("reason")
	ErrSuppliersAreRequired   = errs.NewValueIsRequiredError("supplierIDs")
)

// Tender is the aggregate root of a bid solicitation. It owns its invitee set
// and its bids; at most one bid is ever Approved.
type Tender struct {
	id           kernel.UUID
	customerID   kernel.UUID
	kind         Type
	title        string
	status       Status
	invitees     []kernel.UUID
	bids         []*Bid
	cancelReason string
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewTender creates a Draft tender. Invitees are only accepted for Invited tenders.
func NewTender(id, customerID kernel.UUID, kind Type, title string, invitees []kernel.UUID) (*Tender, error) {
	t := &Tender{
		status:    Draft,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setCustomerID(customerID),
		t.setType(kind),
		t.setTitle(title),
	); err != nil {
		return nil, err
	}

	if len(invitees) > 0 {
		if err := t.addInvitees(invitees); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// RestoreTender rebuilds a tender loaded from storage.
func RestoreTender(
	id, customerID kernel.UUID,
	kind Type,
	title string,
	status Status,
	invitees []kernel.UUID,
	bids []*Bid,
	cancelReason string,
	createdAt time.Time,
) (*Tender, error) {
	t := &Tender{
		invitees:     slices.Clone(invitees),
		bids:         slices.Clone(bids),
		cancelReason: cancelReason,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setCustomerID(customerID),
		t.setType(kind),
		t.setTitle(title),
		t.setStatus(status),
	); err != nil {
		return nil, err
	}

	approved := 0
	for _, b := range t.bids {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if b.status == BidApproved {
			approved++
		}
	}
	if approved > 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("bids", fmt.Errorf("tender %s holds %d approved bids", id, approved))
	}

	return t, nil
}

func (t *Tender) Validate() error {
	if t == nil {
		return ErrTenderIsNotConstructed
	}
	return t.guard.Validate(ErrTenderIsNotConstructed)
}

func (t *Tender) IsEqual(other *Tender) bool {
	return other != nil && t.id.IsEqual(other.id)
}

func (t *Tender) ID() kernel.UUID {
	return t.id
}

func (t *Tender) CustomerID() kernel.UUID {
	return t.customerID
}

func (t *Tender) Type() Type {
	return t.kind
}

func (t *Tender) Title() string {
	return t.title
}

func (t *Tender) Status() Status {
	return t.status
}

// CancelReason is empty unless the tender was cancelled.
func (t *Tender) CancelReason() string {
	return t.cancelReason
}

func (t *Tender) CreatedAt() time.Time {
	return t.createdAt
}

// Invitees returns a copy of the invitee set in invitation order.
func (t *Tender) Invitees() []kernel.UUID {
	return slices.Clone(t.invitees)
}

// Bids returns a copy of the bids in submission order.
func (t *Tender) Bids() []*Bid {
	return slices.Clone(t.bids)
}

// Bid finds a bid by id.
func (t *Tender) Bid(bidID kernel.UUID) (*Bid, error) {
	for _, b := range t.bids {
		if b.id.IsEqual(bidID) {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("bidID", bidID.String())
}

// AwardedBid returns the Approved bid, or nil.
func (t *Tender) AwardedBid() *Bid {
	for _, b := range t.bids {
		if b.status == BidApproved {
			return b
		}
	}
	return nil
}

// IsInvited reports whether supplierID is in the invitee set.
func (t *Tender) IsInvited(supplierID kernel.UUID) bool {
	return slices.ContainsFunc(t.invitees, supplierID.IsEqual)
}

// Publish opens the tender for bids. Invited tenders need at least one invitee.
func (t *Tender) Publish(actor kernel.Actor) error {
	if err := t.checkOwner(actor); err != nil {
		return err
	}

	next, err := statusTable.Next(t.status, statemachine.Publish, actor.Role())
	if err != nil {
		return err
	}

	if t.kind == TypeInvited && len(t.invitees) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("invitees",
			fmt.Errorf("invited tender %s has no invitees", t.id))
	}

	t.status = next
	return nil
}

// Cancel ends the tender and force-rejects every bid still open.
func (t *Tender) Cancel(actor kernel.Actor, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonIsRequired
	}

	if err := t.checkOwner(actor); err != nil {
		return err
	}

	next, err := statusTable.Next(t.status, statemachine.Cancel, actor.Role())
	if err != nil {
		return err
	}

	if err = t.rejectOpenBids(nil); err != nil {
		return err
	}

	t.status = next
	t.cancelReason = reason
	return nil
}

// Invite adds suppliers to the invitee set. Already invited suppliers are
// skipped, so repeated calls converge on the union of their inputs.
func (t *Tender) Invite(actor kernel.Actor, supplierIDs []kernel.UUID) error {
	if err := t.checkOwner(actor); err != nil {
		return err
	}

	if t.status != Draft && t.status != Published {
		return errs.NewInvalidTransitionError("tender", t.status.String(), "Invite", actor.Role().String())
	}

	if t.kind != TypeInvited {
		return errs.NewValueIsInvalidErrorWithCause("tender type",
			fmt.Errorf("%s tenders take no invitees", t.kind))
	}

	return t.addInvitees(supplierIDs)
}

// StartEvaluation stops accepting bids.
func (t *Tender) StartEvaluation(actor kernel.Actor) error {
	if err := t.checkOwner(actor); err != nil {
		return err
	}

	next, err := statusTable.Next(t.status, statemachine.Evaluate, actor.Role())
	if err != nil {
		return err
	}

	t.status = next
	return nil
}

// SubmitBid records a Submitted bid from actor, who must be a supplier and,
// for Invited tenders, an invitee.
func (t *Tender) SubmitBid(actor kernel.Actor, bidID kernel.UUID, lines []*BidLine) (*Bid, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	if t.status != Published {
		return nil, errs.NewInvalidTransitionError("tender", t.status.String(), "SubmitBid", actor.Role().String())
	}

	if actor.Role() == kernel.Supplier {
		if t.kind == TypeInvited && !t.IsInvited(actor.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("supplierID",
				fmt.Errorf("supplier %s is not invited to tender %s", actor.ID(), t.id))
		}
		if actor.ID().IsEqual(t.customerID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("supplierID",
				fmt.Errorf("%s cannot bid on its own tender", actor.ID()))
		}
		for _, b := range t.bids {
			if b.supplierID.IsEqual(actor.ID()) && b.status.IsOpen() {
				return nil, errs.NewValueIsInvalidErrorWithCause("supplierID",
					fmt.Errorf("supplier %s already has open bid %s", actor.ID(), b.id))
			}
		}
	}

	bid, err := NewBid(bidID, t.id, actor.ID(), lines)
	if err != nil {
		return nil, err
	}

	if err = bid.transition(statemachine.Submit, actor.Role()); err != nil {
		return nil, err
	}
	bid.submittedAt = time.Now().UTC()

	t.bids = append(t.bids, bid)
	return bid, nil
}

// ReviewBidLine approves or rejects one line of a Submitted bid.
func (t *Tender) ReviewBidLine(actor kernel.Actor, bidID, lineID kernel.UUID, approve bool) error {
	bid, err := t.decidableBid(actor, bidID, "ReviewBidLine")
	if err != nil {
		return err
	}

	line, err := bid.line(lineID)
	if err != nil {
		return err
	}

	return line.review(approve)
}

// RejectBid declines a Submitted bid.
func (t *Tender) RejectBid(actor kernel.Actor, bidID kernel.UUID) error {
	bid, err := t.decidableBid(actor, bidID, "RejectBid")
	if err != nil {
		return err
	}

	return bid.transition(statemachine.Reject, actor.Role())
}

// ApproveBid awards the tender to bidID: the bid becomes Approved, its
// undecided lines CustomerApproved, every other open bid Rejected and the
// tender Completed. A Published tender passes through Evaluating on the way.
// Nothing changes unless every step is legal.
func (t *Tender) ApproveBid(actor kernel.Actor, bidID kernel.UUID) (*Bid, error) {
	if err := t.checkOwner(actor); err != nil {
		return nil, err
	}

	if awarded := t.AwardedBid(); awarded != nil {
		return nil, errs.NewAlreadyAwardedError(t.id.String(), awarded.id.String())
	}

	bid, err := t.Bid(bidID)
	if err != nil {
		return nil, err
	}

	nextBid, err := bidStatusTable.Next(bid.status, statemachine.Approve, actor.Role())
	if err != nil {
		return nil, err
	}

	status := t.status
	if status == Published {
		if status, err = statusTable.Next(status, statemachine.Evaluate, kernel.System); err != nil {
			return nil, err
		}
	}
	nextTender, err := statusTable.Next(status, statemachine.Award, actor.Role())
	if err != nil {
		return nil, err
	}

	if len(bid.AcceptedLines()) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("bid lines",
			fmt.Errorf("every line of bid %s was rejected", bid.id))
	}

	for _, l := range bid.lines {
		if l.status == BidLinePending {
			l.status = BidLineCustomerApproved
		}
	}
	bid.status = nextBid

	if err = t.rejectOpenBids(bid); err != nil {
		return nil, err
	}

	t.status = nextTender
	return bid, nil
}

func (t *Tender) decidableBid(actor kernel.Actor, bidID kernel.UUID, action string) (*Bid, error) {
	if err := t.checkOwner(actor); err != nil {
		return nil, err
	}

	if actor.Role() != kernel.Customer || (t.status != Published && t.status != Evaluating) {
		return nil, errs.NewInvalidTransitionError("tender", t.status.String(), action, actor.Role().String())
	}

	bid, err := t.Bid(bidID)
	if err != nil {
		return nil, err
	}

	if bid.status != BidSubmitted {
		return nil, errs.NewInvalidTransitionError("bid", bid.status.String(), action, actor.Role().String())
	}

	return bid, nil
}

// rejectOpenBids moves every open bid except keep to Rejected as System.
func (t *Tender) rejectOpenBids(keep *Bid) error {
	for _, b := range t.bids {
		if b == keep || !b.status.IsOpen() {
			continue
		}
		if err := b.transition(statemachine.Reject, kernel.System); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tender) checkOwner(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() == kernel.Customer && !actor.ID().IsEqual(t.customerID) {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%s is not the customer of tender %s", actor.ID(), t.id))
	}
	return nil
}

func (t *Tender) addInvitees(supplierIDs []kernel.UUID) error {
	if len(supplierIDs) == 0 {
		return ErrSuppliersAreRequired
	}

	if t.kind != TypeInvited {
		return errs.NewValueIsInvalidErrorWithCause("invitees", fmt.Errorf("%s tenders take no invitees", t.kind))
	}

	for i, id := range supplierIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("supplierIDs[%d]", i), err)
		}
		if id.IsEqual(t.customerID) {
			return errs.NewValueIsInvalidErrorWithCause("supplierIDs", fmt.Errorf("%s cannot be invited to its own tender", id))
		}
	}

	for _, id := range supplierIDs {
		if !t.IsInvited(id) {
			t.invitees = append(t.invitees, id)
		}
	}
	return nil
}

func (t *Tender) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tender) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	t.customerID = id
	return nil
}

func (t *Tender) setType(kind Type) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	t.kind = kind
	return nil
}

func (t *Tender) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleIsRequired
	}
	t.title = title
	return nil
}

func (t *Tender) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}
