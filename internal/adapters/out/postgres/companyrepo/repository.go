package companyrepo

import (
	"context"
	"errors"

	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormCompanyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCompanyRepository(db *gorm.DB, tracker aggregateTracker) *GormCompanyRepository {
	return &GormCompanyRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCompanyRepository) Add(ctx context.Context, aggregate *company.Company) error {
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

// Update writes the approval state; name and classification are fixed at registration.
func (r *GormCompanyRepository) Update(ctx context.Context, aggregate *company.Company) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CompanyDTO{}).
		Where("id = ?", dto.ID).
		Update("approval", dto.Approval)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("company", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CompanyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("company", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
