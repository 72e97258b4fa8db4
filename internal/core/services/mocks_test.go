package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerSource ---
type MockLedgerSource struct {
	mock.Mock
}

func (m *MockLedgerSource) FetchRows(ctx context.Context) (domain.RawTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RawTable), args.Error(1)
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchLatest(ctx context.Context, currencies []domain.Currency) (map[domain.Currency]decimal.Decimal, error) {
	args := m.Called(ctx, currencies)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Currency]decimal.Decimal), args.Error(1)
}

// --- Mock RateHistoryRepository ---
type MockRateHistory struct {
	mock.Mock
}

func (m *MockRateHistory) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) (string, error) {
	args := m.Called(ctx, snapshot)
	return args.String(0), args.Error(1)
}

func (m *MockRateHistory) ListSnapshots(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedSnapshot), args.Error(1)
}

// --- Mock RateSvc ---
type MockRateSvc struct {
	mock.Mock
}

func (m *MockRateSvc) GetRates(ctx context.Context) (domain.RateSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

func (m *MockRateSvc) History(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedSnapshot), args.Error(1)
}

// fakeStore is an in-memory SnapshotStore.
type fakeStore struct {
	mu      sync.Mutex
	cached  *domain.CachedRates
	stores  int
	loadErr error
}

func (f *fakeStore) Load(_ context.Context) (domain.CachedRates, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return domain.CachedRates{}, false, f.loadErr
	}
	if f.cached == nil {
		return domain.CachedRates{}, false, nil
	}
	return *f.cached, true, nil
}

func (f *fakeStore) Store(_ context.Context, c domain.CachedRates) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cached = &c
	f.stores++
	return nil
}

func (f *fakeStore) storeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stores
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustSnapshot(rates map[domain.Currency]string) domain.RateSnapshot {
	m := make(map[domain.Currency]decimal.Decimal, len(rates))
	for c, r := range rates {
		m[c] = d(r)
	}
	s, err := domain.NewRateSnapshot(m, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	return s
}

func defaultSnapshot() domain.RateSnapshot {
	return mustSnapshot(map[domain.Currency]string{
		domain.BRL: "5",
		domain.AUD: "1.5",
		domain.EUR: "0.9",
	})
}
