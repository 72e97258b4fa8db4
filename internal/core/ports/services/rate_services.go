package services

import (
	"context"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSvc provides exchange-rate snapshots.
type RateSvc interface {
	// GetRates returns the current snapshot, fetching a fresh one when the
	// cached snapshot expired. Fetch failures wrap apperrors.ErrRateFetch.
	GetRates(ctx context.Context) (domain.RateSnapshot, error)

	// History lists archived snapshots, newest first.
	History(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error)
}

// ConversionSvc converts amounts between currencies with a given snapshot.
type ConversionSvc interface {
	// Convert converts amount from one currency to another.
	Convert(amount decimal.Decimal, from, to domain.Currency, rates domain.RateSnapshot) (decimal.Decimal, error)

	// ConvertAll expresses amount in every supported currency.
	ConvertAll(amount decimal.Decimal, from domain.Currency, rates domain.RateSnapshot) (domain.CurrencyAmounts, error)

	// Policy reports how unknown currencies are handled.
	Policy() domain.ConversionPolicy
}
