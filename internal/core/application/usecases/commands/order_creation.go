package commands

import (
	"context"
	"errors"
	"fmt"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/core/ports"
	"vendorportal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineInput is one requested line of a new order or bid.
type LineInput struct {
	MaterialID kernel.UUID
	Quantity   decimal.Decimal
	Price      decimal.Decimal
}

// tradeRepos is what order creation needs from a unit of work. Both the
// interactive and the import paths provide it.
type tradeRepos interface {
	OrderRepoFactory
	CompanyRepoFactory
}

type orderDraft struct {
	orderID    kernel.UUID
	actor      kernel.Actor
	kind       order.Type
	customerID kernel.UUID
	supplierID kernel.UUID
	lines      []LineInput
}

// createOrder checks both parties, builds the order and adds it through
// repos. The caller owns the transaction.
func createOrder(ctx context.Context, repos tradeRepos, d orderDraft) (*order.Order, error) {
	if err := checkCreator(d.actor, d.customerID, d.supplierID); err != nil {
		return nil, err
	}

	companies := repos.CompanyRepository()
	if err := errs.JoinChecks(
		checkParty(ctx, companies, d.customerID, kernel.Customer),
		checkParty(ctx, companies, d.supplierID, kernel.Supplier),
	); err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(d.lines))
	var lineErrs []error
	for i, in := range d.lines {
		l, err := order.NewLine(kernel.NewUUID(), in.MaterialID, in.Quantity, in.Price)
		if err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), err))
			continue
		}
		lines = append(lines, l)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(d.orderID, d.kind, d.customerID, d.supplierID, lines, d.actor.ID())
	if err != nil {
		return nil, err
	}

	if err = repos.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// checkCreator lets a party open an order only on its own side. The System
// role creates orders on behalf of importers.
func checkCreator(actor kernel.Actor, customerID, supplierID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	switch actor.Role() {
	case kernel.Customer:
		if !actor.ID().IsEqual(customerID) {
			return errs.NewValueIsInvalidErrorWithCause("actor",
				fmt.Errorf("%s cannot open an order as customer %s", actor.ID(), customerID))
		}
	case kernel.Supplier:
		if !actor.ID().IsEqual(supplierID) {
			return errs.NewValueIsInvalidErrorWithCause("actor",
				fmt.Errorf("%s cannot open an order as supplier %s", actor.ID(), supplierID))
		}
	}
	return nil
}

// checkParty loads a company and verifies it may trade in role.
func checkParty(ctx context.Context, companies ports.CompanyRepository, id kernel.UUID, role kernel.Role) error {
	c, err := companies.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.CanTradeAs(role)
}
