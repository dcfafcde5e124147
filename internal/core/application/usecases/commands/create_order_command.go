package commands

import (
	"errors"
	"slices"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errs.NewValueIsRequiredError("lines")
)

// CreateOrderCommand represents a request to open a direct order between a
// customer and a supplier.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), actor, order.Purchase,
//	    customerID, supplierID, []LineInput{{MaterialID: m, Quantity: q, Price: p}})
//	if err != nil {
//	    return result.Fail[OrderResponse](err), nil
//	}
//	env, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      kernel.Actor
	kind       order.Type
	customerID kernel.UUID
	supplierID kernel.UUID
	lines      []LineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the shape of the request. Party and line
// rules are enforced when the order is built.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	kind order.Type,
	customerID, supplierID kernel.UUID,
	lines []LineInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setKind(kind),
		cmd.setParties(customerID, supplierID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Kind() order.Type {
	return c.kind
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

func (c CreateOrderCommand) Lines() []LineInput {
	return slices.Clone(c.lines)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setKind(kind order.Type) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *CreateOrderCommand) setParties(customerID, supplierID kernel.UUID) error {
	if err := errors.Join(
		requiredID("customerID", customerID),
		requiredID("supplierID", supplierID),
	); err != nil {
		return err
	}
	c.customerID = customerID
	c.supplierID = supplierID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []LineInput) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	c.lines = slices.Clone(lines)
	return nil
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
