package commands

import (
	"errors"
	"slices"
	"strings"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/pkg/guard"
)

var ErrTenderCommandIsNotConstructed = errors.New("tender command must be created via its New...Command constructor")

// CreateTenderCommand opens a Draft tender owned by the acting customer.
type CreateTenderCommand struct {
	tenderID kernel.UUID
	actor    kernel.Actor
	kind     tender.Type
	title    string
	invitees []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateTenderCommand(
	tenderID kernel.UUID,
	actor kernel.Actor,
	kind tender.Type,
	title string,
	invitees []kernel.UUID,
) (CreateTenderCommand, error) {
	if err := errors.Join(
		requiredID("tenderID", tenderID),
		actor.Validate(),
		kind.Validate(),
		requiredString("title", title),
	); err != nil {
		return CreateTenderCommand{}, err
	}

	return CreateTenderCommand{
		tenderID: tenderID,
		actor:    actor,
		kind:     kind,
		title:    strings.TrimSpace(title),
		invitees: slices.Clone(invitees),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTenderCommand) Validate() error {
	return c.guard.Validate(ErrTenderCommandIsNotConstructed)
}

func (c CreateTenderCommand) TenderID() kernel.UUID   { return c.tenderID }
func (c CreateTenderCommand) Actor() kernel.Actor     { return c.actor }
func (c CreateTenderCommand) Kind() tender.Type       { return c.kind }
func (c CreateTenderCommand) Title() string           { return c.title }
func (c CreateTenderCommand) Invitees() []kernel.UUID { return slices.Clone(c.invitees) }

// TenderActionCommand addresses a tender on behalf of an actor. It backs
// Publish and StartEvaluation, which need nothing else.
type TenderActionCommand struct {
	tenderID kernel.UUID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewTenderActionCommand(tenderID kernel.UUID, actor kernel.Actor) (TenderActionCommand, error) {
	if err := errors.Join(requiredID("tenderID", tenderID), actor.Validate()); err != nil {
		return TenderActionCommand{}, err
	}
	return TenderActionCommand{tenderID: tenderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c TenderActionCommand) Validate() error {
	return c.guard.Validate(ErrTenderCommandIsNotConstructed)
}

func (c TenderActionCommand) TenderID() kernel.UUID { return c.tenderID }
func (c TenderActionCommand) Actor() kernel.Actor   { return c.actor }

type CancelTenderCommand struct {
	TenderActionCommand
	reason string
}

func NewCancelTenderCommand(tenderID kernel.UUID, actor kernel.Actor, reason string) (CancelTenderCommand, error) {
	base, err := NewTenderActionCommand(tenderID, actor)
	if err != nil {
		return CancelTenderCommand{}, err
	}
	return CancelTenderCommand{TenderActionCommand: base, reason: reason}, nil
}

func (c CancelTenderCommand) Reason() string { return c.reason }

type InviteSuppliersCommand struct {
	TenderActionCommand
	supplierIDs []kernel.UUID
}

func NewInviteSuppliersCommand(
	tenderID kernel.UUID,
	actor kernel.Actor,
	supplierIDs []kernel.UUID,
) (InviteSuppliersCommand, error) {
	base, err := NewTenderActionCommand(tenderID, actor)
	if err != nil {
		return InviteSuppliersCommand{}, err
	}
	return InviteSuppliersCommand{TenderActionCommand: base, supplierIDs: slices.Clone(supplierIDs)}, nil
}

func (c InviteSuppliersCommand) SupplierIDs() []kernel.UUID { return slices.Clone(c.supplierIDs) }

// SubmitBidCommand offers lines on a Published tender as the acting supplier.
type SubmitBidCommand struct {
	TenderActionCommand
	bidID kernel.UUID
	lines []LineInput
}

func NewSubmitBidCommand(
	tenderID, bidID kernel.UUID,
	actor kernel.Actor,
	lines []LineInput,
) (SubmitBidCommand, error) {
	base, err := NewTenderActionCommand(tenderID, actor)
	if err = errors.Join(err, requiredID("bidID", bidID)); err != nil {
		return SubmitBidCommand{}, err
	}
	return SubmitBidCommand{TenderActionCommand: base, bidID: bidID, lines: slices.Clone(lines)}, nil
}

func (c SubmitBidCommand) BidID() kernel.UUID { return c.bidID }
func (c SubmitBidCommand) Lines() []LineInput { return slices.Clone(c.lines) }

// BidActionCommand addresses a bid; the owning tender is found through it.
type BidActionCommand struct {
	bidID kernel.UUID
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewBidActionCommand(bidID kernel.UUID, actor kernel.Actor) (BidActionCommand, error) {
	if err := errors.Join(requiredID("bidID", bidID), actor.Validate()); err != nil {
		return BidActionCommand{}, err
	}
	return BidActionCommand{bidID: bidID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c BidActionCommand) Validate() error {
	return c.guard.Validate(ErrTenderCommandIsNotConstructed)
}

func (c BidActionCommand) BidID() kernel.UUID  { return c.bidID }
func (c BidActionCommand) Actor() kernel.Actor { return c.actor }

type ReviewBidLineCommand struct {
	BidActionCommand
	lineID  kernel.UUID
	approve bool
}

func NewReviewBidLineCommand(bidID, lineID kernel.UUID, actor kernel.Actor, approve bool) (ReviewBidLineCommand, error) {
	base, err := NewBidActionCommand(bidID, actor)
	if err = errors.Join(err, requiredID("lineID", lineID)); err != nil {
		return ReviewBidLineCommand{}, err
	}
	return ReviewBidLineCommand{BidActionCommand: base, lineID: lineID, approve: approve}, nil
}

func (c ReviewBidLineCommand) LineID() kernel.UUID { return c.lineID }
func (c ReviewBidLineCommand) Approve() bool       { return c.approve }

// ApproveBidCommand awards the tender to a bid and opens order orderID from it.
type ApproveBidCommand struct {
	BidActionCommand
	orderID kernel.UUID
}

func NewApproveBidCommand(bidID, orderID kernel.UUID, actor kernel.Actor) (ApproveBidCommand, error) {
	base, err := NewBidActionCommand(bidID, actor)
	if err = errors.Join(err, requiredID("orderID", orderID)); err != nil {
		return ApproveBidCommand{}, err
	}
	return ApproveBidCommand{BidActionCommand: base, orderID: orderID}, nil
}

func (c ApproveBidCommand) OrderID() kernel.UUID { return c.orderID }
