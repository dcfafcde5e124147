// Package pgtest starts a disposable PostgreSQL for integration tests and
// applies the goose migrations to it.
package pgtest

import (
	"context"
	"database/sql"
	"time"

	"vendorportal/internal/adapters/out/postgres/migrations"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Container *postgres.PostgresContainer
	DSN       string
	Gorm      *gorm.DB
	SQL       *sql.DB
}

func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	d := &Database{Container: container}
	if d.DSN, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
		return nil, d.fail(ctx, err)
	}

	if d.SQL, err = migrations.Open(d.DSN); err != nil {
		return nil, d.fail(ctx, err)
	}

	d.Gorm, err = gorm.Open(gorm_postgres.Open(d.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	return d, nil
}

// Truncate empties every table between tests.
func (d *Database) Truncate() error {
	return d.Gorm.Exec(`TRUNCATE TABLE
		import_failures, import_batches,
		bid_lines, bids, tender_invitees, tenders,
		order_history, order_lines, orders,
		companies CASCADE`).Error
}

// SeedCompany inserts a company row directly and returns its id.
func (d *Database) SeedCompany(
	ctx context.Context,
	name string,
	classification company.Classification,
	approval company.Approval,
) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := d.Gorm.WithContext(ctx).Exec(
		`INSERT INTO companies (id, name, classification, approval, registered_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), name, int(classification), int(approval), time.Now().UTC(),
	).Error
	return id, err
}

func (d *Database) Terminate(ctx context.Context) error {
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	return d.Container.Terminate(ctx)
}

func (d *Database) fail(ctx context.Context, err error) error {
	_ = d.Terminate(ctx)
	return err
}
