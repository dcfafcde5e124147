// Package commands contains business operations that modify system state.
// Every handler runs one unit of work and answers with a result.Envelope:
// business rule violations come back as a failed envelope, infrastructure
// faults as an error.
package commands

import (
	"context"

	"vendorportal/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TenderRepoFactory interface {
		TenderRepository() ports.TenderRepository
	}

	CompanyRepoFactory interface {
		CompanyRepository() ports.CompanyRepository
	}

	ImportBatchRepoFactory interface {
		ImportBatchRepository() ports.ImportBatchRepository
	}

	// OrderUoW serves line negotiation on an existing order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CompanyUoW serves company registration and approval.
	CompanyUoW interface {
		TxManager
		CompanyRepoFactory
	}

	CompanyUoWFactory interface {
		Create() CompanyUoW
	}

	// TradeUoW creates orders, which requires reading both parties.
	TradeUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
	}

	TradeUoWFactory interface {
		Create() TradeUoW
	}

	// TenderUoW serves the tender lifecycle and bidding.
	TenderUoW interface {
		TxManager
		TenderRepoFactory
		CompanyRepoFactory
	}

	TenderUoWFactory interface {
		Create() TenderUoW
	}

	// AwardUoW approves a bid and stores the resulting order in the same
	// transaction.
	AwardUoW interface {
		TxManager
		TenderRepoFactory
		OrderRepoFactory
	}

	AwardUoWFactory interface {
		Create() AwardUoW
	}

	// ImportUoW advances an import batch together with the order its next
	// record creates.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   batch, err := uow.ImportBatchRepository().Get(ctx, batchID)
	//   // ... create the order, advance the batch
	//
	//   err = uow.Commit(ctx)
	ImportUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
		ImportBatchRepoFactory
	}

	ImportUoWFactory interface {
		Create() ImportUoW
	}
)
