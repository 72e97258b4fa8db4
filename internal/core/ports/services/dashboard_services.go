package services

import (
	"context"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardSvc runs one fetch-clean-aggregate cycle per call.
type DashboardSvc interface {
	// Current breaks down a single ledger period; an empty period selects the latest.
	Current(ctx context.Context, period string) (*domain.CurrentView, error)

	// Evolution returns the USD series over all periods.
	Evolution(ctx context.Context, g domain.Granularity) (*domain.EvolutionView, error)

	// Breakdown values the whole ledger in every supported currency.
	Breakdown(ctx context.Context) (*domain.BreakdownView, error)

	// BreakdownFromTable is Breakdown for a ledger supplied by the caller.
	BreakdownFromTable(ctx context.Context, table domain.RawTable) (*domain.BreakdownView, error)

	// Convert converts an ad-hoc amount with the current snapshot.
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, domain.RateSnapshot, error)
}
