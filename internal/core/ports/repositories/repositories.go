package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Ledger      LedgerSource
	RateSource  RateSource
	RateStore   SnapshotStore
	RateHistory RateHistoryRepository // nil when no database is configured
}
