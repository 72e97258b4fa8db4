package pgsql

import (
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRateHistoryRepository returns the PostgreSQL rate history for dbPool.
func NewRateHistoryRepository(dbPool *pgxpool.Pool) portsrepo.RateHistoryRepository {
	return newPgxRateHistoryRepository(dbPool)
}
