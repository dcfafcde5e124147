package queries

import (
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

type GetOrderHistoryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}
