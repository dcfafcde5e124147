package batchrepo

import (
	"context"
	"errors"

	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBatchRepository) Add(ctx context.Context, aggregate *importbatch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update stores progress. Failures are append-only and keyed by record index.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *importbatch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&BatchDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":       dto.Status,
		"next_record":  dto.NextRecord,
		"succeeded":    dto.Succeeded,
		"completed_at": dto.CompletedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("importBatch", aggregate.ID().String())
	}

	if len(dto.Failures) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Failures).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a batch and locks it, so only one processor advances it at a time.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*importbatch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Failures", func(db *gorm.DB) *gorm.DB { return db.Order("record_index") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("importBatch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormBatchRepository) ListPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("status = ?", int(importbatch.Pending)).
		Order("submitted_at, id").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		batchID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, batchID)
	}

	return ids, nil
}
