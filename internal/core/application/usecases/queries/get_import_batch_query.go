package queries

import (
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

type GetImportBatchQuery struct {
	batchID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetImportBatchQuery(batchID kernel.UUID) (GetImportBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetImportBatchQuery{}, errs.NewValueIsRequiredErrorWithCause("batchID", err)
	}
	return GetImportBatchQuery{batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetImportBatchQuery) Validate() error {
	return q.guard.Validate(ErrQueryIsNotConstructed)
}

func (q GetImportBatchQuery) BatchID() kernel.UUID {
	return q.batchID
}
