package commands

import (
	"context"

	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/result"
)

// CreateOrderCommandHandler opens a direct order: both parties must be
// approved companies classified for their side, every line starts Pending
// and the history starts with a Created entry.
type CreateOrderCommandHandler struct {
	uowFactory TradeUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory TradeUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (result.Envelope[OrderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[OrderResponse]{}, err
	}

	o, err := h.create(ctx, cmd)
	return reply("order created", o, err, newOrderResponse)
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := createOrder(ctx, uow, orderDraft{
		orderID:    cmd.OrderID(),
		actor:      cmd.Actor(),
		kind:       cmd.Kind(),
		customerID: cmd.CustomerID(),
		supplierID: cmd.SupplierID(),
		lines:      cmd.Lines(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
