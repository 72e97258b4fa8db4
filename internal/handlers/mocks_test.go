package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Current(ctx context.Context, period string) (*domain.CurrentView, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentView), args.Error(1)
}

func (m *MockDashboardService) Evolution(ctx context.Context, g domain.Granularity) (*domain.EvolutionView, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvolutionView), args.Error(1)
}

func (m *MockDashboardService) Breakdown(ctx context.Context) (*domain.BreakdownView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BreakdownView), args.Error(1)
}

func (m *MockDashboardService) BreakdownFromTable(ctx context.Context, table domain.RawTable) (*domain.BreakdownView, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BreakdownView), args.Error(1)
}

func (m *MockDashboardService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, domain.RateSnapshot, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(domain.RateSnapshot), args.Error(2)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRates(ctx context.Context) (domain.RateSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

func (m *MockRateService) History(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedSnapshot), args.Error(1)
}

var _ portssvc.RateSvc = (*MockRateService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
	enabled bool
}

func (m *MockAuthService) Enabled() bool { return m.enabled }

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

func testSnapshot(asOf time.Time) domain.RateSnapshot {
	s, err := domain.NewRateSnapshot(map[domain.Currency]decimal.Decimal{
		domain.BRL: decimal.NewFromInt(5),
		domain.AUD: decimal.RequireFromString("1.5"),
		domain.EUR: decimal.RequireFromString("0.9"),
	}, asOf)
	if err != nil {
		panic(err)
	}
	return s
}
