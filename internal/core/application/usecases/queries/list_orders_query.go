// Package queries is the read side. Queries go straight to the tables the
// repositories write, through sqlx, and return flat read models.
package queries

import (
	"errors"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

var ErrQueryIsNotConstructed = errors.New("query must be created via its New...Query constructor")

// ListOrdersQuery lists the orders a company takes part in, on either side,
// optionally narrowed to one status.
type ListOrdersQuery struct {
	companyID kernel.UUID
	status    *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(companyID kernel.UUID, status *order.Status) (ListOrdersQuery, error) {
	if err := companyID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("companyID", err)
	}

	var filter *order.Status
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		filter = &s
	}

	return ListOrdersQuery{
		companyID: companyID,
		status:    filter,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrQueryIsNotConstructed)
}

func (q ListOrdersQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Status is nil when every status is wanted.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}
