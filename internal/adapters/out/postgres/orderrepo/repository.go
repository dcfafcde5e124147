package orderrepo

import (
	"context"
	"errors"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update writes the order status and every line, then appends the history
// entries that are not stored yet.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Lines).Error; err != nil {
		return err
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID and locks its row for the current transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
