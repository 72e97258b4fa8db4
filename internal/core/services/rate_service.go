package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

// DefaultRateTTL is how long a fetched snapshot is served before a refresh.
const DefaultRateTTL = 5 * time.Minute

// DefaultRateFetchTimeout bounds a refresh, which outlives the request that started it.
const DefaultRateFetchTimeout = 30 * time.Second

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// upstreamCurrencies are the rates read from the provider; USD is implicit.
var upstreamCurrencies = []domain.Currency{domain.BRL, domain.AUD, domain.EUR}

// rateService implements portssvc.RateSvc
type rateService struct {
	BaseService
	source  portsrepo.RateSource
	store   portsrepo.SnapshotStore
	history portsrepo.RateHistoryRepository
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	group   singleflight.Group
}

// RateServiceOption is a functional option for configuring the rate service
type RateServiceOption func(*rateService)

// WithRateTTL sets how long a snapshot stays fresh.
func WithRateTTL(ttl time.Duration) RateServiceOption {
	return func(s *rateService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRateFetchTimeout bounds each upstream refresh.
func WithRateFetchTimeout(timeout time.Duration) RateServiceOption {
	return func(s *rateService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithRateClock replaces time.Now, mainly for tests.
func WithRateClock(now func() time.Time) RateServiceOption {
	return func(s *rateService) {
		s.now = now
	}
}

// WithRateHistory archives every fetched snapshot in repo.
func WithRateHistory(repo portsrepo.RateHistoryRepository) RateServiceOption {
	return func(s *rateService) {
		s.history = repo
	}
}

// NewRateService creates a rate service reading from source and caching in store.
func NewRateService(source portsrepo.RateSource, store portsrepo.SnapshotStore, options ...RateServiceOption) portssvc.RateSvc {
	svc := &rateService{
		source: source,
		store:  store,
		ttl:     DefaultRateTTL,
		timeout: DefaultRateFetchTimeout,
		now:     time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RateSvc = (*rateService)(nil)

// GetRates serves the cached snapshot while it is fresh and refreshes it otherwise.
func (s *rateService) GetRates(ctx context.Context) (domain.RateSnapshot, error) {
	cached, ok, err := s.store.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read cached rate snapshot, refetching")
	} else if ok && !cached.IsExpired(s.now()) {
		return cached.Snapshot, nil
	}

	// The refresh is shared by every waiting caller and outlives the one that started it.
	ch := s.group.DoChan("latest", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.refresh(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return domain.RateSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrRateFetch, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.RateSnapshot{}, res.Err
		}
		if res.Shared {
			s.LogDebug(ctx, "Rate refresh shared with a concurrent request")
		}
		return res.Val.(domain.RateSnapshot), nil
	}
}

func (s *rateService) refresh(ctx context.Context) (domain.RateSnapshot, error) {
	rates, err := s.source.FetchLatest(ctx, upstreamCurrencies)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rates")
		return domain.RateSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrRateFetch, err)
	}
	for _, c := range upstreamCurrencies {
		if _, ok := rates[c]; !ok {
			return domain.RateSnapshot{}, fmt.Errorf("%w: upstream response has no %s rate", apperrors.ErrRateFetch, c)
		}
	}

	fetchedAt := s.now()
	snapshot, err := domain.NewRateSnapshot(rates, fetchedAt)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrRateFetch, err)
	}

	if err := s.store.Store(ctx, domain.CachedRates{Snapshot: snapshot, FetchedAt: fetchedAt, TTL: s.ttl}); err != nil {
		s.LogError(ctx, err, "Failed to cache rate snapshot")
	}

	if s.history != nil {
		id, err := s.history.SaveSnapshot(ctx, snapshot)
		if err != nil {
			s.LogError(ctx, err, "Failed to archive rate snapshot")
		} else {
			s.LogDebug(ctx, "Rate snapshot archived", slog.String("snapshot_id", id))
		}
	}

	s.LogInfo(ctx, "Exchange rates refreshed",
		slog.Time("fetched_at", fetchedAt),
		slog.Duration("ttl", s.ttl))
	return snapshot, nil
}

// History lists archived snapshots, newest first.
func (s *rateService) History(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error) {
	if s.history == nil {
		return nil, fmt.Errorf("%w: rate history requires PGSQL_URL", apperrors.ErrNotConfigured)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	snapshots, err := s.history.ListSnapshots(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rate history", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list rate history: %w", err)
	}
	return snapshots, nil
}
