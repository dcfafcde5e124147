package commands

import (
	"context"

	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/core/domain/services"
	"vendorportal/internal/pkg/result"
)

// ApproveBidCommandHandler awards a tender. The approved bid, the rejected
// siblings, the completed tender and the new order are committed together;
// a second approval on the same tender fails with AlreadyAwarded.
type ApproveBidCommandHandler struct {
	uowFactory AwardUoWFactory
	awarder    services.BidAwarder
}

func NewApproveBidCommandHandler(uowFactory AwardUoWFactory) ApproveBidCommandHandler {
	return ApproveBidCommandHandler{
		uowFactory: uowFactory,
		awarder:    services.NewBidAwarder(),
	}
}

type award struct {
	bid   *tender.Bid
	order *order.Order
}

func (h ApproveBidCommandHandler) Handle(ctx context.Context, cmd ApproveBidCommand) (result.Envelope[AwardResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[AwardResponse]{}, err
	}

	a, err := h.approve(ctx, cmd)
	return reply("bid approved", a, err, func(a award) AwardResponse {
		return AwardResponse{Bid: newBidResponse(a.bid), Order: newOrderResponse(a.order)}
	})
}

func (h ApproveBidCommandHandler) approve(ctx context.Context, cmd ApproveBidCommand) (award, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return award{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()

	t, err := tenderRepo.GetByBid(ctx, cmd.BidID())
	if err != nil {
		return award{}, err
	}

	bid, o, err := h.awarder.Award(t, cmd.Actor(), cmd.BidID(), cmd.OrderID())
	if err != nil {
		return award{}, err
	}

	if err = tenderRepo.Update(ctx, t); err != nil {
		return award{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return award{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return award{}, err
	}

	return award{bid: bid, order: o}, nil
}
