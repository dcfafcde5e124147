package commands

import (
	"errors"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrReviseLineCommandIsNotConstructed = errors.New(
		"ReviseLineCommand must be created via NewReviseLineCommand constructor",
	)
	ErrApproveLineCommandIsNotConstructed = errors.New(
		"ApproveLineCommand must be created via NewApproveLineCommand constructor",
	)
	ErrRejectLineCommandIsNotConstructed = errors.New(
		"RejectLineCommand must be created via NewRejectLineCommand constructor",
	)
	ErrCloseOrderCommandIsNotConstructed = errors.New(
		"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
	)
)

// lineTarget addresses one line of one order on behalf of an actor.
type lineTarget struct {
	orderID kernel.UUID
	lineID  kernel.UUID
	actor   kernel.Actor
}

func newLineTarget(orderID, lineID kernel.UUID, actor kernel.Actor) (lineTarget, error) {
	if err := errors.Join(
		requiredID("orderID", orderID),
		requiredID("lineID", lineID),
		actor.Validate(),
	); err != nil {
		return lineTarget{}, err
	}
	return lineTarget{orderID: orderID, lineID: lineID, actor: actor}, nil
}

func (t lineTarget) OrderID() kernel.UUID {
	return t.orderID
}

func (t lineTarget) LineID() kernel.UUID {
	return t.lineID
}

func (t lineTarget) Actor() kernel.Actor {
	return t.actor
}

// ReviseLineCommand proposes new terms for a line. Only the party that did
// not act on the line last may revise it.
type ReviseLineCommand struct {
	lineTarget
	quantity decimal.Decimal
	price    decimal.Decimal

	guard guard.ConstructorGuard
}

func NewReviseLineCommand(
	orderID, lineID kernel.UUID,
	actor kernel.Actor,
	quantity, price decimal.Decimal,
) (ReviseLineCommand, error) {
	target, err := newLineTarget(orderID, lineID, actor)
	if err != nil {
		return ReviseLineCommand{}, err
	}
	return ReviseLineCommand{
		lineTarget: target,
		quantity:   quantity,
		price:      price,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReviseLineCommand) Validate() error {
	return c.guard.Validate(ErrReviseLineCommandIsNotConstructed)
}

func (c ReviseLineCommand) Quantity() decimal.Decimal {
	return c.quantity
}

func (c ReviseLineCommand) Price() decimal.Decimal {
	return c.price
}

type ApproveLineCommand struct {
	lineTarget

	guard guard.ConstructorGuard
}

func NewApproveLineCommand(orderID, lineID kernel.UUID, actor kernel.Actor) (ApproveLineCommand, error) {
	target, err := newLineTarget(orderID, lineID, actor)
	if err != nil {
		return ApproveLineCommand{}, err
	}
	return ApproveLineCommand{lineTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveLineCommand) Validate() error {
	return c.guard.Validate(ErrApproveLineCommandIsNotConstructed)
}

type RejectLineCommand struct {
	lineTarget
	reason string

	guard guard.ConstructorGuard
}

func NewRejectLineCommand(orderID, lineID kernel.UUID, actor kernel.Actor, reason string) (RejectLineCommand, error) {
	target, err := newLineTarget(orderID, lineID, actor)
	if err != nil {
		return RejectLineCommand{}, err
	}
	return RejectLineCommand{lineTarget: target, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectLineCommand) Validate() error {
	return c.guard.Validate(ErrRejectLineCommandIsNotConstructed)
}

func (c RejectLineCommand) Reason() string {
	return c.reason
}

type CloseOrderCommand struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCloseOrderCommand(orderID kernel.UUID, actor kernel.Actor) (CloseOrderCommand, error) {
	if err := errors.Join(requiredID("orderID", orderID), actor.Validate()); err != nil {
		return CloseOrderCommand{}, err
	}
	return CloseOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

func (c CloseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CloseOrderCommand) Actor() kernel.Actor {
	return c.actor
}
