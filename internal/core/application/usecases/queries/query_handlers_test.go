package queries_test

import (
	"context"
	"testing"

	"vendorportal/internal/adapters/out/postgres/batchrepo"
	"vendorportal/internal/adapters/out/postgres/orderrepo"
	"vendorportal/internal/adapters/out/postgres/pgtest"
	"vendorportal/internal/core/application/usecases/queries"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueryHandlersTestSuite struct {
	suite.Suite
	db        *pgtest.Database
	sqlx      *sqlx.DB
	orders    *orderrepo.GormOrderRepository
	batches   *batchrepo.GormBatchRepository
	customer  kernel.Actor
	supplier  kernel.Actor
	bystander kernel.UUID
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
	suite.sqlx = sqlx.NewDb(db.SQL, "postgres")
	suite.orders = orderrepo.NewGormOrderRepository(db.Gorm, noopTracker{})
	suite.batches = batchrepo.NewGormBatchRepository(db.Gorm, noopTracker{})
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.db.Truncate())

	customerID, err := suite.db.SeedCompany(ctx, "Acme Retail", company.ClassCustomer, company.Approved)
	suite.Require().NoError(err)
	supplierID, err := suite.db.SeedCompany(ctx, "Steel Works", company.ClassSupplier, company.Approved)
	suite.Require().NoError(err)
	suite.bystander, err = suite.db.SeedCompany(ctx, "Other Co", company.ClassBoth, company.Approved)
	suite.Require().NoError(err)

	suite.customer, err = kernel.NewActor(customerID, kernel.Customer)
	suite.Require().NoError(err)
	suite.supplier, err = kernel.NewActor(supplierID, kernel.Supplier)
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) TestListOrders_BothSidesWithTotals() {
	ctx := context.Background()
	first := suite.addOrder(ctx, suite.customer.ID(), suite.supplier.ID(), "2", "10.50", "3", "1.25")
	suite.addOrder(ctx, suite.bystander, suite.supplier.ID(), "1", "1")

	q, err := queries.NewListOrdersQuery(suite.customer.ID(), nil)
	suite.Require().NoError(err)

	env, err := queries.NewListOrdersQueryHandler(suite.sqlx).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.True(env.Success)
	suite.Require().Len(env.Data, 1)
	got := env.Data[0]
	suite.Equal(first.ID().String(), got.ID)
	suite.Equal("Purchase", got.Type)
	suite.Equal("Created", got.StatusName)
	suite.Equal(2, got.LineCount)
	suite.True(decimal.RequireFromString("24.75").Equal(got.Total), got.Total.String())

	q, err = queries.NewListOrdersQuery(suite.supplier.ID(), nil)
	suite.Require().NoError(err)
	env, err = queries.NewListOrdersQueryHandler(suite.sqlx).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Len(env.Data, 2)
}

func (suite *QueryHandlersTestSuite) TestListOrders_StatusFilter() {
	ctx := context.Background()
	approved := suite.addOrder(ctx, suite.customer.ID(), suite.supplier.ID(), "1", "5")
	suite.Require().NoError(approved.ApproveLine(suite.supplier, approved.Lines()[0].ID()))
	suite.Require().NoError(suite.orders.Update(ctx, approved))
	suite.addOrder(ctx, suite.customer.ID(), suite.supplier.ID(), "1", "5")

	status := order.Approved
	q, err := queries.NewListOrdersQuery(suite.customer.ID(), &status)
	suite.Require().NoError(err)

	env, err := queries.NewListOrdersQueryHandler(suite.sqlx).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Require().Len(env.Data, 1)
	suite.Equal(approved.ID().String(), env.Data[0].ID)
	suite.Equal(int(order.Approved), env.Data[0].Status)
}

func (suite *QueryHandlersTestSuite) TestListOrders_Empty() {
	q, err := queries.NewListOrdersQuery(suite.bystander, nil)
	suite.Require().NoError(err)

	env, err := queries.NewListOrdersQueryHandler(suite.sqlx).Handle(context.Background(), q)

	suite.Require().NoError(err)
	suite.NotNil(env.Data)
	suite.Empty(env.Data)
}

func (suite *QueryHandlersTestSuite) TestGetOrderHistory() {
	ctx := context.Background()
	o := suite.addOrder(ctx, suite.customer.ID(), suite.supplier.ID(), "4", "2")
	lineID := o.Lines()[0].ID()
	suite.Require().NoError(o.ReviseLine(suite.customer, lineID, decimal.NewFromInt(5), decimal.NewFromInt(2)))
	suite.Require().NoError(o.RejectLine(suite.supplier, lineID, "price too low"))
	suite.Require().NoError(suite.orders.Update(ctx, o))

	q, err := queries.NewGetOrderHistoryQuery(o.ID())
	suite.Require().NoError(err)

	env, err := queries.NewGetOrderHistoryQueryHandler(suite.sqlx).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Require().Len(env.Data, 3)
	suite.Equal("Created", env.Data[0].Kind)
	suite.Empty(env.Data[0].LineID)
	suite.Equal("Revised", env.Data[1].Kind)
	suite.Equal(lineID.String(), env.Data[1].LineID)
	suite.Equal(suite.customer.ID().String(), env.Data[1].ActorID)
	suite.Equal("Rejected", env.Data[2].Kind)
	suite.Equal("price too low", env.Data[2].Note)
}

func (suite *QueryHandlersTestSuite) TestGetOrderHistory_UnknownOrder() {
	q, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	env, err := queries.NewGetOrderHistoryQueryHandler(suite.sqlx).Handle(context.Background(), q)

	suite.Require().NoError(err)
	suite.False(env.Success)
	suite.True(env.HasError(errs.KindNotFound))
}

func (suite *QueryHandlersTestSuite) TestGetImportBatch() {
	ctx := context.Background()
	b, err := importbatch.NewBatch(kernel.NewUUID(), kernel.NewUUID(), []byte(`{"orders":[{},{},{}]}`))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.batches.Add(ctx, b))
	suite.Require().NoError(b.Succeed())
	suite.Require().NoError(b.Fail(errs.NewValueIsRequiredError("lines")))
	suite.Require().NoError(suite.batches.Update(ctx, b))

	q, err := queries.NewGetImportBatchQuery(b.ID())
	suite.Require().NoError(err)

	env, err := queries.NewGetImportBatchQueryHandler(suite.sqlx).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.True(env.Success)
	suite.Equal("Pending", env.Data.Status)
	suite.Equal(3, env.Data.Total)
	suite.Equal(2, env.Data.Processed)
	suite.Equal(1, env.Data.SucceededCount)
	suite.Nil(env.Data.CompletedAt)
	suite.Equal([]queries.ImportFailureResponse{
		{Index: 1, Kind: "ValidationError", Reason: "value is required: lines"},
	}, env.Data.Failures)
}

func (suite *QueryHandlersTestSuite) TestGetImportBatch_Unknown() {
	q, err := queries.NewGetImportBatchQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	env, err := queries.NewGetImportBatchQueryHandler(suite.sqlx).Handle(context.Background(), q)

	suite.Require().NoError(err)
	suite.True(env.HasError(errs.KindNotFound))
}

// addOrder stores a Purchase order with one line per quantity/price pair.
func (suite *QueryHandlersTestSuite) addOrder(ctx context.Context, customerID, supplierID kernel.UUID, terms ...string) *order.Order {
	lines := make([]*order.Line, 0, len(terms)/2)
	for i := 0; i+1 < len(terms); i += 2 {
		l, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(),
			decimal.RequireFromString(terms[i]), decimal.RequireFromString(terms[i+1]))
		suite.Require().NoError(err)
		lines = append(lines, l)
	}

	o, err := order.NewOrder(kernel.NewUUID(), order.Purchase, customerID, supplierID, lines, customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, o))
	return o
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
