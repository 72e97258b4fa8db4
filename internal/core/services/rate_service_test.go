package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RateServiceTestSuite struct {
	suite.Suite
	source  *MockRateSource
	history *MockRateHistory
	store   *fakeStore
	clock   *fakeClock
	service portssvc.RateSvc
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.source = new(MockRateSource)
	suite.history = new(MockRateHistory)
	suite.store = &fakeStore{}
	suite.clock = &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	suite.service = services.NewRateService(suite.source, suite.store,
		services.WithRateClock(suite.clock.Now),
		services.WithRateTTL(5*time.Minute),
		services.WithRateHistory(suite.history),
	)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}

func upstreamRates() map[domain.Currency]decimal.Decimal {
	return map[domain.Currency]decimal.Decimal{
		domain.BRL: d("5.01"),
		domain.AUD: d("1.52"),
		domain.EUR: d("0.92"),
	}
}

func (suite *RateServiceTestSuite) TestGetRates_CachesWithinTTL() {
	ctx := context.Background()
	suite.source.On("FetchLatest", mock.Anything, mock.Anything).Return(upstreamRates(), nil).Once()
	suite.history.On("SaveSnapshot", mock.Anything, mock.AnythingOfType("domain.RateSnapshot")).Return("snap-1", nil).Once()

	first, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)
	usd, ok := first.Rate(domain.USD)
	suite.True(ok)
	suite.True(usd.Equal(decimal.NewFromInt(1)))
	suite.Equal(suite.clock.Now(), first.AsOf())

	suite.clock.Advance(4*time.Minute + 59*time.Second)
	second, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.AsOf(), second.AsOf())

	suite.source.AssertNumberOfCalls(suite.T(), "FetchLatest", 1)
	suite.Equal(1, suite.store.stores)
}

func (suite *RateServiceTestSuite) TestGetRates_RefetchesAfterTTL() {
	ctx := context.Background()
	suite.source.On("FetchLatest", mock.Anything, mock.Anything).Return(upstreamRates(), nil).Twice()
	suite.history.On("SaveSnapshot", mock.Anything, mock.Anything).Return("snap", nil).Twice()

	_, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)

	suite.clock.Advance(5 * time.Minute)
	refreshed, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(suite.clock.Now(), refreshed.AsOf())
	suite.source.AssertNumberOfCalls(suite.T(), "FetchLatest", 2)
}

func (suite *RateServiceTestSuite) TestGetRates_FetchError() {
	ctx := context.Background()
	suite.source.On("FetchLatest", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := suite.service.GetRates(ctx)
	suite.ErrorIs(err, apperrors.ErrRateFetch)
	suite.Nil(suite.store.cached)
	suite.history.AssertNotCalled(suite.T(), "SaveSnapshot", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetRates_MissingCurrencyIsFetchError() {
	ctx := context.Background()
	partial := upstreamRates()
	delete(partial, domain.AUD)
	suite.source.On("FetchLatest", mock.Anything, mock.Anything).Return(partial, nil).Once()

	_, err := suite.service.GetRates(ctx)
	suite.ErrorIs(err, apperrors.ErrRateFetch)
}

func (suite *RateServiceTestSuite) TestGetRates_HistoryFailureIsNotFatal() {
	ctx := context.Background()
	suite.source.On("FetchLatest", mock.Anything, mock.Anything).Return(upstreamRates(), nil).Once()
	suite.history.On("SaveSnapshot", mock.Anything, mock.Anything).Return("", errors.New("db down")).Once()

	snapshot, err := suite.service.GetRates(ctx)
	suite.Require().NoError(err)
	suite.False(snapshot.IsZero())
}

func (suite *RateServiceTestSuite) TestGetRates_CancelledCallerLeavesRefreshRunning() {
	started := make(chan struct{})
	release := make(chan struct{})
	suite.source.On("FetchLatest", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(upstreamRates(), nil).Once()
	suite.history.On("SaveSnapshot", mock.Anything, mock.Anything).Return("snap", nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := suite.service.GetRates(ctx)
		errs <- err
	}()

	<-started
	cancel()
	err := <-errs
	suite.ErrorIs(err, context.Canceled)
	suite.ErrorIs(err, apperrors.ErrRateFetch)

	close(release)
	snapshot, err := suite.service.GetRates(context.Background())
	suite.Require().NoError(err)
	suite.False(snapshot.IsZero())
	suite.Eventually(func() bool { return suite.store.storeCount() == 1 }, time.Second, 5*time.Millisecond)
	suite.source.AssertNumberOfCalls(suite.T(), "FetchLatest", 1)
}

func (suite *RateServiceTestSuite) TestHistory() {
	ctx := context.Background()
	archived := []domain.ArchivedSnapshot{{SnapshotID: "a", Snapshot: defaultSnapshot()}}
	suite.history.On("ListSnapshots", ctx, 10).Return(archived, nil).Once()
	suite.history.On("ListSnapshots", ctx, 100).Return(archived, nil).Once()

	got, err := suite.service.History(ctx, 0)
	suite.Require().NoError(err)
	suite.Equal(archived, got)

	_, err = suite.service.History(ctx, 1000)
	suite.Require().NoError(err)
	suite.history.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestHistory_NotConfigured() {
	svc := services.NewRateService(suite.source, suite.store)
	_, err := svc.History(context.Background(), 5)
	suite.ErrorIs(err, apperrors.ErrNotConfigured)
}
