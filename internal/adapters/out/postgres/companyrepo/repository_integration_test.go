package companyrepo_test

import (
	"context"
	"testing"
	"time"

	"vendorportal/internal/adapters/out/postgres/companyrepo"
	"vendorportal/internal/adapters/out/postgres/pgtest"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CompanyRepositoryIntegrationTestSuite struct {
	suite.Suite
	db         *pgtest.Database
	repository *companyrepo.GormCompanyRepository
	tracker    *MockAggregateTracker
}

func (suite *CompanyRepositoryIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *CompanyRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.repository = companyrepo.NewGormCompanyRepository(suite.db.Gorm, suite.tracker)
}

func (suite *CompanyRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *CompanyRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	c, err := company.NewCompany(kernel.NewUUID(), "Steel Works", company.ClassBoth)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", c.ID(), c).Once()

	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal("Steel Works", got.Name())
	suite.Equal(company.ClassBoth, got.Classification())
	suite.Equal(company.Pending, got.Approval())
	suite.WithinDuration(c.RegisteredAt(), got.RegisteredAt(), time.Millisecond)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CompanyRepositoryIntegrationTestSuite) TestUpdate_Approval() {
	ctx := context.Background()
	c, err := company.NewCompany(kernel.NewUUID(), "Steel Works", company.ClassSupplier)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", c.ID(), c)
	suite.Require().NoError(suite.repository.Add(ctx, c))

	suite.Require().NoError(c.ChangeApproval(kernel.SystemActor(kernel.NewUUID()), statemachine.Approve))
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal(company.Approved, got.Approval())
	suite.NoError(got.CanTradeAs(kernel.Supplier))
}

func (suite *CompanyRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	c, err := company.NewCompany(kernel.NewUUID(), "Ghost Ltd", company.ClassCustomer)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), c)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CompanyRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCompanyRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyRepositoryIntegrationTestSuite))
}
