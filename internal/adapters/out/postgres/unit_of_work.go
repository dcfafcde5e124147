// Package postgres implements the Unit of Work over GORM.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it after Begin run inside that transaction; before Begin they run on the
// plain connection pool, which is how read-only lookups such as
// ImportBatchRepository.ListPending are issued.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	o, err := uow.OrderRepository().Get(ctx, orderID) // row locked until Commit
//	if err != nil {
//	    return err
//	}
//	if err = o.ApproveLine(actor, lineID); err != nil {
//	    return err
//	}
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op returning
// gorm.ErrInvalidTransaction, so the deferred call is always safe.
//
// Each UnitOfWork instance belongs to a single goroutine.
package postgres

import (
	"context"

	"vendorportal/internal/adapters/out/postgres/batchrepo"
	"vendorportal/internal/adapters/out/postgres/companyrepo"
	"vendorportal/internal/adapters/out/postgres/orderrepo"
	"vendorportal/internal/adapters/out/postgres/tenderrepo"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction across the order, tender,
// company and import batch repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while one is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction if
// none is open. A unit of work that wrote nothing only held row locks, so
// its transaction is rolled back instead.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var err error
	if uow.wroteAny() {
		err = uow.tx.Commit().Error
	} else {
		err = uow.tx.Rollback().Error
	}
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction if
// none is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TenderRepository() ports.TenderRepository {
	return tenderrepo.NewGormTenderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CompanyRepository() ports.CompanyRepository {
	return companyrepo.NewGormCompanyRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ImportBatchRepository() ports.ImportBatchRepository {
	return batchrepo.NewGormBatchRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written in this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) wroteAny() bool {
	return len(uow.trackedAggregates) > 0
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
