// Package ports defines the persistence contracts of the procurement core.
// Adapters implement them; command handlers depend only on these interfaces.
package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction spanning every aggregate a command
// touches. Begin must precede any repository call.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TenderRepository() TenderRepository
	CompanyRepository() CompanyRepository
	ImportBatchRepository() ImportBatchRepository
}
