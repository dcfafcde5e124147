// Package batchrepo persists import batches: the raw payload, the cursor of
// the next record and the failures recorded so far.
package batchrepo

import (
	"time"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"

	"github.com/google/uuid"
)

type BatchDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	SubmittedBy uuid.UUID    `gorm:"type:uuid;not null"`
	Payload     []byte       `gorm:"type:bytea;not null"`
	Status      int          `gorm:"type:smallint;not null"`
	Total       int          `gorm:"not null"`
	NextRecord  int          `gorm:"not null"`
	Succeeded   int          `gorm:"not null"`
	SubmittedAt time.Time    `gorm:"not null"`
	CompletedAt *time.Time
	Failures    []FailureDTO `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
}

func (BatchDTO) TableName() string {
	return "import_batches"
}

type FailureDTO struct {
	BatchID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecordIndex int       `gorm:"primaryKey;autoIncrement:false"`
	Kind        string    `gorm:"type:varchar(32);not null"`
	Reason      string    `gorm:"not null"`
}

func (FailureDTO) TableName() string {
	return "import_failures"
}

func fromDomain(b *importbatch.Batch) BatchDTO {
	batchID := b.ID().Bytes()
	res := b.Result()

	failures := make([]FailureDTO, 0, len(res.Failures))
	for _, f := range res.Failures {
		failures = append(failures, FailureDTO{
			BatchID:     batchID,
			RecordIndex: f.Index,
			Kind:        string(f.Kind),
			Reason:      f.Reason,
		})
	}

	return BatchDTO{
		ID:          batchID,
		SubmittedBy: b.SubmittedBy().Bytes(),
		Payload:     b.Payload(),
		Status:      int(b.Status()),
		Total:       b.Total(),
		NextRecord:  b.Cursor(),
		Succeeded:   res.SucceededCount,
		SubmittedAt: b.SubmittedAt(),
		CompletedAt: b.CompletedAt(),
		Failures:    failures,
	}
}

func toDomain(dto BatchDTO) (*importbatch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	submittedBy, err := kernel.UUIDFromBytes(dto.SubmittedBy[:])
	if err != nil {
		return nil, err
	}

	failures := make([]importbatch.Failure, 0, len(dto.Failures))
	for _, f := range dto.Failures {
		failures = append(failures, importbatch.Failure{
			Index:  f.RecordIndex,
			Kind:   errs.Kind(f.Kind),
			Reason: f.Reason,
		})
	}

	var completedAt *time.Time
	if dto.CompletedAt != nil {
		at := dto.CompletedAt.UTC()
		completedAt = &at
	}

	return importbatch.RestoreBatch(
		id,
		submittedBy,
		dto.Payload,
		importbatch.Status(dto.Status),
		dto.NextRecord,
		dto.Succeeded,
		failures,
		dto.SubmittedAt.UTC(),
		completedAt,
	)
}
