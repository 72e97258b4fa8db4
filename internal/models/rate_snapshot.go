package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is a row of rate_snapshots: one archived fetch of the rate provider.
type RateSnapshot struct {
	SnapshotID string    `json:"snapshotID"` // Primary Key (UUID)
	FetchedAt  time.Time `json:"fetchedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RateSnapshotEntry is a row of rate_snapshot_entries.
type RateSnapshotEntry struct {
	SnapshotID   string          `json:"snapshotID"`   // FK -> rate_snapshots.snapshot_id
	CurrencyCode string          `json:"currencyCode"` // ISO 4217 code
	Rate         decimal.Decimal `json:"rate"`         // units of CurrencyCode per 1 USD
}
