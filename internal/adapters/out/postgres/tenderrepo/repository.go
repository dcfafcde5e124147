package tenderrepo

import (
	"context"
	"errors"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTenderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTenderRepository(db *gorm.DB, tracker aggregateTracker) *GormTenderRepository {
	return &GormTenderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTenderRepository) Add(ctx context.Context, aggregate *tender.Tender) error {
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

// Update writes the tender row and upserts invitees, bids and bid lines.
// Nothing is ever removed from a tender, so no rows are deleted.
func (r *GormTenderRepository) Update(ctx context.Context, aggregate *tender.Tender) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&TenderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":        dto.Status,
		"cancel_reason": dto.CancelReason,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tender", aggregate.ID().String())
	}

	if len(dto.Invitees) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Invitees).Error; err != nil {
			return err
		}
	}

	if len(dto.Bids) == 0 {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
		return nil
	}

	if err := db.Omit(clause.Associations).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Bids).Error; err != nil {
		return err
	}

	var lines []BidLineDTO
	for _, b := range dto.Bids {
		lines = append(lines, b.Lines...)
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&lines).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a tender and locks its row for the current transaction.
func (r *GormTenderRepository) Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TenderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Invitees", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Bids", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Bids.Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tender", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormTenderRepository) GetByBid(ctx context.Context, bidID kernel.UUID) (*tender.Tender, error) {
	if err := bidID.Validate(); err != nil {
		return nil, err
	}

	var owner BidDTO
	if err := r.db.WithContext(ctx).Select("tender_id").Take(&owner, "id = ?", bidID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", bidID.String())
		}
		return nil, err
	}

	tenderID, err := kernel.UUIDFromBytes(owner.TenderID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, tenderID)
}
