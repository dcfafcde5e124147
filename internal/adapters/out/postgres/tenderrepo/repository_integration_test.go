package tenderrepo_test

import (
	"context"
	"testing"

	"vendorportal/internal/adapters/out/postgres/pgtest"
	"vendorportal/internal/adapters/out/postgres/tenderrepo"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type TenderRepositoryIntegrationTestSuite struct {
	suite.Suite
	db         *pgtest.Database
	repository *tenderrepo.GormTenderRepository
	tracker    *MockAggregateTracker
	customer   kernel.Actor
	supplier   kernel.Actor
	rival      kernel.Actor
}

func (suite *TenderRepositoryIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *TenderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.db.Truncate())

	suite.customer = suite.seedActor(ctx, "Acme Retail", company.ClassCustomer, kernel.Customer)
	suite.supplier = suite.seedActor(ctx, "Steel Works", company.ClassSupplier, kernel.Supplier)
	suite.rival = suite.seedActor(ctx, "Iron Mill", company.ClassSupplier, kernel.Supplier)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = tenderrepo.NewGormTenderRepository(suite.db.Gorm, suite.tracker)
}

func (suite *TenderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *TenderRepositoryIntegrationTestSuite) TestAdd_DraftWithInvitees() {
	ctx := context.Background()
	t, err := tender.NewTender(kernel.NewUUID(), suite.customer.ID(), tender.TypeInvited, "Steel beams Q3",
		[]kernel.UUID{suite.rival.ID(), suite.supplier.ID()})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, t))

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(tender.Draft, got.Status())
	suite.Equal(tender.TypeInvited, got.Type())
	suite.Equal("Steel beams Q3", got.Title())
	suite.Equal([]kernel.UUID{suite.rival.ID(), suite.supplier.ID()}, got.Invitees())
	suite.Empty(got.Bids())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", t.ID(), t)
}

func (suite *TenderRepositoryIntegrationTestSuite) TestUpdate_PersistsAwardedBid() {
	ctx := context.Background()
	t := suite.publishedTender(ctx)

	winner := suite.submit(t, suite.supplier, 2)
	loser := suite.submit(t, suite.rival, 1)
	suite.Require().NoError(suite.repository.Update(ctx, t))

	suite.Require().NoError(t.ReviewBidLine(suite.customer, winner.ID(), winner.Lines()[1].ID(), false))
	_, err := t.ApproveBid(suite.customer, winner.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(tender.Completed, got.Status())
	suite.Require().Len(got.Bids(), 2)

	awarded := got.AwardedBid()
	suite.Require().NotNil(awarded)
	suite.Equal(winner.ID(), awarded.ID())
	suite.Equal(tender.BidLineCustomerApproved, awarded.Lines()[0].Status())
	suite.Equal(tender.BidLineCustomerRejected, awarded.Lines()[1].Status())
	suite.Len(awarded.AcceptedLines(), 1)
	suite.False(awarded.SubmittedAt().IsZero())

	rejected, err := got.Bid(loser.ID())
	suite.Require().NoError(err)
	suite.Equal(tender.BidRejected, rejected.Status())
}

func (suite *TenderRepositoryIntegrationTestSuite) TestUpdate_CancelReason() {
	ctx := context.Background()
	t := suite.publishedTender(ctx)

	suite.Require().NoError(t.Cancel(suite.customer, "budget withdrawn"))
	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.Get(ctx, t.ID())
	suite.Require().NoError(err)
	suite.Equal(tender.Cancelled, got.Status())
	suite.Equal("budget withdrawn", got.CancelReason())
}

func (suite *TenderRepositoryIntegrationTestSuite) TestGetByBid() {
	ctx := context.Background()
	t := suite.publishedTender(ctx)
	bid := suite.submit(t, suite.supplier, 1)
	suite.Require().NoError(suite.repository.Update(ctx, t))

	got, err := suite.repository.GetByBid(ctx, bid.ID())
	suite.Require().NoError(err)
	suite.Equal(t.ID(), got.ID())

	_, err = suite.repository.GetByBid(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TenderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TenderRepositoryIntegrationTestSuite) publishedTender(ctx context.Context) *tender.Tender {
	t, err := tender.NewTender(kernel.NewUUID(), suite.customer.ID(), tender.TypeOpen, "Copper wire", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, t))
	suite.Require().NoError(t.Publish(suite.customer))
	suite.Require().NoError(suite.repository.Update(ctx, t))
	return t
}

func (suite *TenderRepositoryIntegrationTestSuite) submit(t *tender.Tender, supplier kernel.Actor, lineCount int) *tender.Bid {
	lines := make([]*tender.BidLine, 0, lineCount)
	for range lineCount {
		l, err := tender.NewBidLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(5), decimal.RequireFromString("19.99"))
		suite.Require().NoError(err)
		lines = append(lines, l)
	}

	bid, err := t.SubmitBid(supplier, kernel.NewUUID(), lines)
	suite.Require().NoError(err)
	return bid
}

func (suite *TenderRepositoryIntegrationTestSuite) seedActor(
	ctx context.Context,
	name string,
	class company.Classification,
	role kernel.Role,
) kernel.Actor {
	id, err := suite.db.SeedCompany(ctx, name, class, company.Approved)
	suite.Require().NoError(err)
	actor, err := kernel.NewActor(id, role)
	suite.Require().NoError(err)
	return actor
}

func TestTenderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TenderRepositoryIntegrationTestSuite))
}
