package cmd

import (
	"log/slog"

	"vendorportal/internal/adapters/out/postgres"
	"vendorportal/internal/core/application/usecases/commands"
	"vendorportal/internal/core/application/usecases/queries"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// CompositionRoot wires use cases to their adapters. Commands write through
// the gorm unit of work; queries read through sqlx.
type CompositionRoot struct {
	readDB     *sqlx.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, readDB *sqlx.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		readDB:     readDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCompanyCommandHandler() commands.CompanyCommandHandler {
	var f commands.CompanyUoWFactory = FuncCompanyUoWFactory(func() commands.CompanyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompanyCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.tradeUoWFactory())
}

func (c *CompositionRoot) CreateOrderCommandHandler() commands.OrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTenderCommandHandler() commands.TenderCommandHandler {
	var f commands.TenderUoWFactory = FuncTenderUoWFactory(func() commands.TenderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTenderCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveBidCommandHandler() commands.ApproveBidCommandHandler {
	var f commands.AwardUoWFactory = FuncAwardUoWFactory(func() commands.AwardUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveBidCommandHandler(f)
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() commands.ImportOrdersCommandHandler {
	return commands.NewImportOrdersCommandHandler(c.tradeUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSubmitImportBatchCommandHandler() commands.SubmitImportBatchCommandHandler {
	return commands.NewSubmitImportBatchCommandHandler(c.importUoWFactory())
}

func (c *CompositionRoot) CreateProcessImportBatchesCommandHandler() commands.ProcessImportBatchesCommandHandler {
	return commands.NewProcessImportBatchesCommandHandler(c.importUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.readDB)
}

func (c *CompositionRoot) CreateGetImportBatchQueryHandler() queries.GetImportBatchQueryHandler {
	return queries.NewGetImportBatchQueryHandler(c.readDB)
}

func (c *CompositionRoot) tradeUoWFactory() commands.TradeUoWFactory {
	return FuncTradeUoWFactory(func() commands.TradeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) importUoWFactory() commands.ImportUoWFactory {
	return FuncImportUoWFactory(func() commands.ImportUoW {
		return c.uowFactory.Create()
	})
}

type FuncCompanyUoWFactory func() commands.CompanyUoW

func (f FuncCompanyUoWFactory) Create() commands.CompanyUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTradeUoWFactory func() commands.TradeUoW

func (f FuncTradeUoWFactory) Create() commands.TradeUoW {
	return f()
}

type FuncTenderUoWFactory func() commands.TenderUoW

func (f FuncTenderUoWFactory) Create() commands.TenderUoW {
	return f()
}

type FuncAwardUoWFactory func() commands.AwardUoW

func (f FuncAwardUoWFactory) Create() commands.AwardUoW {
	return f()
}

type FuncImportUoWFactory func() commands.ImportUoW

func (f FuncImportUoWFactory) Create() commands.ImportUoW {
	return f()
}
