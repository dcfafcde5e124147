package services

import (
	"fmt"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/pkg/errs"
)

type BidAwarder struct{}

func NewBidAwarder() BidAwarder {
	return BidAwarder{}
}

// Award approves bidID on t and returns the approved bid with a new
// Purchase order between the tender's customer and the bid's supplier. The
// order is built before the tender changes, so a failure leaves t untouched.
func (BidAwarder) Award(t *tender.Tender, actor kernel.Actor, bidID, orderID kernel.UUID) (*tender.Bid, *order.Order, error) {
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}

	if awarded := t.AwardedBid(); awarded != nil {
		return nil, nil, errs.NewAlreadyAwardedError(t.ID().String(), awarded.ID().String())
	}

	bid, err := t.Bid(bidID)
	if err != nil {
		return nil, nil, err
	}

	o, err := orderFromBid(t, bid, orderID, actor.ID())
	if err != nil {
		return nil, nil, err
	}

	approved, err := t.ApproveBid(actor, bidID)
	if err != nil {
		return nil, nil, err
	}

	return approved, o, nil
}

func orderFromBid(t *tender.Tender, bid *tender.Bid, orderID, createdBy kernel.UUID) (*order.Order, error) {
	accepted := bid.AcceptedLines()
	if len(accepted) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("bid lines",
			fmt.Errorf("every line of bid %s was rejected", bid.ID()))
	}

	lines := make([]*order.Line, 0, len(accepted))
	for _, bl := range accepted {
		l, err := order.NewLine(kernel.NewUUID(), bl.MaterialID(), bl.Quantity(), bl.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return order.NewOrder(orderID, order.Purchase, t.CustomerID(), bid.SupplierID(), lines, createdBy)
}
