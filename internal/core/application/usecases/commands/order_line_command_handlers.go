package commands

import (
	"context"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/result"
)

// OrderCommandHandler runs the negotiation commands on an existing order.
// Each command loads the order under a row lock, applies one aggregate
// method and writes the order back in the same transaction.
type OrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewOrderCommandHandler(uowFactory OrderUoWFactory) OrderCommandHandler {
	return OrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h OrderCommandHandler) ReviseLine(ctx context.Context, cmd ReviseLineCommand) (result.Envelope[OrderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[OrderResponse]{}, err
	}

	o, err := h.update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.ReviseLine(cmd.Actor(), cmd.LineID(), cmd.Quantity(), cmd.Price())
	})
	return reply("order line revised", o, err, newOrderResponse)
}

func (h OrderCommandHandler) ApproveLine(ctx context.Context, cmd ApproveLineCommand) (result.Envelope[OrderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[OrderResponse]{}, err
	}

	o, err := h.update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.ApproveLine(cmd.Actor(), cmd.LineID())
	})
	return reply("order line approved", o, err, newOrderResponse)
}

func (h OrderCommandHandler) RejectLine(ctx context.Context, cmd RejectLineCommand) (result.Envelope[OrderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[OrderResponse]{}, err
	}

	o, err := h.update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.RejectLine(cmd.Actor(), cmd.LineID(), cmd.Reason())
	})
	return reply("order line rejected", o, err, newOrderResponse)
}

func (h OrderCommandHandler) CloseOrder(ctx context.Context, cmd CloseOrderCommand) (result.Envelope[OrderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[OrderResponse]{}, err
	}

	o, err := h.update(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.Close(cmd.Actor())
	})
	return reply("order closed", o, err, newOrderResponse)
}

func (h OrderCommandHandler) update(
	ctx context.Context,
	orderID kernel.UUID,
	mutate func(*order.Order) error,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = mutate(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
