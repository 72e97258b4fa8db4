package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is an immutable mapping from currency to "units of that currency
// per 1 USD". The zero value is empty; use NewRateSnapshot.
type RateSnapshot struct {
	rates map[Currency]decimal.Decimal
	asOf  time.Time
}

// NewRateSnapshot copies rates, forces USD to 1 and rejects non-positive rates.
func NewRateSnapshot(rates map[Currency]decimal.Decimal, asOf time.Time) (RateSnapshot, error) {
	m := make(map[Currency]decimal.Decimal, len(rates)+1)
	for c, r := range rates {
		if c == BaseCurrency {
			continue
		}
		if !r.IsPositive() {
			return RateSnapshot{}, fmt.Errorf("rate for %s must be positive, got %s", c, r)
		}
		m[c] = r
	}
	m[BaseCurrency] = decimal.NewFromInt(1)
	return RateSnapshot{rates: m, asOf: asOf}, nil
}

// Rate returns the rate of c and whether it is present.
func (s RateSnapshot) Rate(c Currency) (decimal.Decimal, bool) {
	r, ok := s.rates[c]
	return r, ok
}

// AsOf is the time the snapshot was fetched.
func (s RateSnapshot) AsOf() time.Time { return s.asOf }

// IsZero reports whether the snapshot was never populated.
func (s RateSnapshot) IsZero() bool { return len(s.rates) == 0 }

// Currencies returns the currencies of the snapshot sorted by code.
func (s RateSnapshot) Currencies() []Currency {
	out := make([]Currency, 0, len(s.rates))
	for c := range s.rates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Rates returns a copy of the underlying mapping.
func (s RateSnapshot) Rates() map[Currency]decimal.Decimal {
	out := make(map[Currency]decimal.Decimal, len(s.rates))
	for c, r := range s.rates {
		out[c] = r
	}
	return out
}

// CachedRates is a snapshot held by a SnapshotStore together with its fetch time.
type CachedRates struct {
	Snapshot  RateSnapshot
	FetchedAt time.Time
	TTL       time.Duration
}

// IsExpired reports whether the cached snapshot may no longer be served at now.
func (c CachedRates) IsExpired(now time.Time) bool {
	if c.Snapshot.IsZero() {
		return true
	}
	return !now.Before(c.FetchedAt.Add(c.TTL))
}

// ArchivedSnapshot is a snapshot read back from the rate history.
type ArchivedSnapshot struct {
	SnapshotID string
	Snapshot   RateSnapshot
}
