package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"vendorportal/internal/core/application/usecases/commands"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockTenderRepository struct{ mock.Mock }

func (m *MockTenderRepository) Add(ctx context.Context, t *tender.Tender) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenderRepository) Update(ctx context.Context, t *tender.Tender) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenderRepository) Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*tender.Tender)
	return t, args.Error(1)
}

func (m *MockTenderRepository) GetByBid(ctx context.Context, bidID kernel.UUID) (*tender.Tender, error) {
	args := m.Called(ctx, bidID)
	t, _ := args.Get(0).(*tender.Tender)
	return t, args.Error(1)
}

type MockCompanyRepository struct{ mock.Mock }

func (m *MockCompanyRepository) Add(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*company.Company)
	return c, args.Error(1)
}

type MockImportBatchRepository struct{ mock.Mock }

func (m *MockImportBatchRepository) Add(ctx context.Context, b *importbatch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockImportBatchRepository) Update(ctx context.Context, b *importbatch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockImportBatchRepository) Get(ctx context.Context, id kernel.UUID) (*importbatch.Batch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*importbatch.Batch)
	return b, args.Error(1)
}

func (m *MockImportBatchRepository) ListPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

// MockUoW serves every unit of work interface the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TenderRepository() ports.TenderRepository {
	args := m.Called()
	return args.Get(0).(ports.TenderRepository)
}

func (m *MockUoW) CompanyRepository() ports.CompanyRepository {
	args := m.Called()
	return args.Get(0).(ports.CompanyRepository)
}

func (m *MockUoW) ImportBatchRepository() ports.ImportBatchRepository {
	args := m.Called()
	return args.Get(0).(ports.ImportBatchRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCompanyUoWFactory struct{ mock.Mock }

func (m *MockCompanyUoWFactory) Create() commands.CompanyUoW {
	args := m.Called()
	return args.Get(0).(commands.CompanyUoW)
}

type MockTradeUoWFactory struct{ mock.Mock }

func (m *MockTradeUoWFactory) Create() commands.TradeUoW {
	args := m.Called()
	return args.Get(0).(commands.TradeUoW)
}

type MockTenderUoWFactory struct{ mock.Mock }

func (m *MockTenderUoWFactory) Create() commands.TenderUoW {
	args := m.Called()
	return args.Get(0).(commands.TenderUoW)
}

type MockAwardUoWFactory struct{ mock.Mock }

func (m *MockAwardUoWFactory) Create() commands.AwardUoW {
	args := m.Called()
	return args.Get(0).(commands.AwardUoW)
}

type MockImportUoWFactory struct{ mock.Mock }

func (m *MockImportUoWFactory) Create() commands.ImportUoW {
	args := m.Called()
	return args.Get(0).(commands.ImportUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCompany(t *testing.T, class company.Classification, approval company.Approval) *company.Company {
	t.Helper()
	c, err := company.RestoreCompany(kernel.NewUUID(), "Acme", class, approval, time.Now().UTC())
	require.NoError(t, err)
	return c
}

func newActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func lineInput(qty, price string) commands.LineInput {
	return commands.LineInput{
		MaterialID: kernel.NewUUID(),
		Quantity:   decimal.RequireFromString(qty),
		Price:      decimal.RequireFromString(price),
	}
}

func newOrder(t *testing.T, customerID, supplierID kernel.UUID, lines ...*order.Line) *order.Order {
	t.Helper()
	if len(lines) == 0 {
		l, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(5), decimal.NewFromInt(10))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), order.Purchase, customerID, supplierID, lines, customerID)
	require.NoError(t, err)
	return o
}
