package repositories

import (
	"context"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource fetches the latest USD-based rates from an upstream provider.
type RateSource interface {
	// FetchLatest returns "units of currency per 1 USD" for the requested currencies.
	FetchLatest(ctx context.Context, currencies []domain.Currency) (map[domain.Currency]decimal.Decimal, error)
}

// SnapshotStore holds the single cached rate snapshot.
type SnapshotStore interface {
	// Load returns the cached snapshot; ok is false on a miss.
	Load(ctx context.Context) (cached domain.CachedRates, ok bool, err error)
	// Store replaces the cached snapshot.
	Store(ctx context.Context, cached domain.CachedRates) error
}

// RateHistoryReader defines read operations for archived snapshots
type RateHistoryReader interface {
	// ListSnapshots returns the most recent archived snapshots, newest first.
	ListSnapshots(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error)
}

// RateHistoryWriter defines write operations for archived snapshots
type RateHistoryWriter interface {
	// SaveSnapshot archives a snapshot under its AsOf time and returns the archive id.
	SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) (string, error)
}

// RateHistoryRepository combines all rate history repository interfaces
type RateHistoryRepository interface {
	RateHistoryReader
	RateHistoryWriter
}
