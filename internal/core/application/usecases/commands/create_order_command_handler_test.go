package commands_test

import (
	"errors"
	"testing"

	"vendorportal/internal/core/application/usecases/commands"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	customer *company.Company
	supplier *company.Company
	cmd      commands.CreateOrderCommand
}

func newCreateOrderFixture(t *testing.T, supplierApproval company.Approval) createOrderFixture {
	t.Helper()
	customer := newCompany(t, company.ClassCustomer, company.Approved)
	supplier := newCompany(t, company.ClassBoth, supplierApproval)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), newActor(t, customer.ID(), kernel.Customer),
		order.Purchase, customer.ID(), supplier.ID(),
		[]commands.LineInput{lineInput("10", "2.50"), lineInput("3", "100")})
	require.NoError(t, err)

	return createOrderFixture{customer: customer, supplier: supplier, cmd: cmd}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)

	companyRepo := new(MockCompanyRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once(),
		companyRepo.On("Get", ctx, f.supplier.ID()).Return(f.supplier, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	env, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "order created", env.Message)
	assert.Equal(t, f.cmd.OrderID().String(), env.Data.ID)
	assert.Equal(t, "Created", env.Data.StatusName)
	assert.Equal(t, int(order.Created), env.Data.Status)
	require.Len(t, env.Data.Lines, 2)
	assert.Equal(t, "Pending", env.Data.Lines[0].StatusName)
	require.Len(t, env.Data.History, 1)
	assert.Equal(t, "Created", env.Data.History[0].Kind)
	companyRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockTradeUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_SupplierNotApproved(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Pending)

	companyRepo := new(MockCompanyRepository)
	companyRepo.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once()
	companyRepo.On("Get", ctx, f.supplier.ID()).Return(f.supplier, nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CompanyRepository").Return(companyRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	env, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.True(t, env.HasError(errs.KindValidation))
	assert.Contains(t, env.Message, "is Pending")
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CompanyNotFound(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)

	companyRepo := new(MockCompanyRepository)
	companyRepo.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once()
	companyRepo.On("Get", ctx, f.supplier.ID()).
		Return(nil, errs.NewObjectNotFoundError("companyID", f.supplier.ID())).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CompanyRepository").Return(companyRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	env, err := h.Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.True(t, env.HasError(errs.KindNotFound))
}

func TestCreateOrderCommandHandler_Handle_StorageFailureBesideRejection(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)

	companyRepo := new(MockCompanyRepository)
	companyRepo.On("Get", ctx, f.customer.ID()).
		Return(nil, errs.NewObjectNotFoundError("companyID", f.customer.ID())).Once()
	companyRepo.On("Get", ctx, f.supplier.ID()).Return(nil, errors.New("connection reset")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CompanyRepository").Return(companyRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, f.cmd)

	require.EqualError(t, err, "connection reset")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_ActorIsNotAParty(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)
	stranger := newActor(t, kernel.NewUUID(), kernel.Customer)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), stranger, order.Purchase,
		f.customer.ID(), f.supplier.ID(), f.cmd.Lines())
	require.NoError(t, err)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	env, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, env.HasError(errs.KindValidation))
	uow.AssertNotCalled(t, "CompanyRepository")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)

	uow := new(MockUoW)
	factory := new(MockTradeUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, f.cmd)

	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)

	companyRepo := new(MockCompanyRepository)
	companyRepo.On("Get", ctx, f.customer.ID()).Return(f.customer, nil).Once()
	companyRepo.On("Get", ctx, f.supplier.ID()).Return(f.supplier, nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CompanyRepository").Return(companyRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, f.cmd)

	require.EqualError(t, err, "add error")
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t, company.Approved)

	companyRepo := new(MockCompanyRepository)
	companyRepo.On("Get", ctx, mock.Anything).Return(f.customer, nil).Once()
	companyRepo.On("Get", ctx, mock.Anything).Return(f.supplier, nil).Once()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTradeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, f.cmd)

	require.EqualError(t, err, "commit error")
	uow.AssertExpectations(t)
}
