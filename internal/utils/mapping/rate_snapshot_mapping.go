package mapping

import (
	"fmt"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/SscSPs/million_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelRateSnapshotEntries converts a domain snapshot to its entry rows.
func ToModelRateSnapshotEntries(snapshotID string, s domain.RateSnapshot) []models.RateSnapshotEntry {
	currencies := s.Currencies()
	entries := make([]models.RateSnapshotEntry, 0, len(currencies))
	for _, c := range currencies {
		rate, _ := s.Rate(c)
		entries = append(entries, models.RateSnapshotEntry{
			SnapshotID:   snapshotID,
			CurrencyCode: c.String(),
			Rate:         rate,
		})
	}
	return entries
}

// ToDomainArchivedSnapshot rebuilds a domain snapshot from its rows.
func ToDomainArchivedSnapshot(m models.RateSnapshot, entries []models.RateSnapshotEntry) (domain.ArchivedSnapshot, error) {
	rates := make(map[domain.Currency]decimal.Decimal, len(entries))
	for _, e := range entries {
		rates[domain.ParseCurrency(e.CurrencyCode)] = e.Rate
	}
	snapshot, err := domain.NewRateSnapshot(rates, m.FetchedAt)
	if err != nil {
		return domain.ArchivedSnapshot{}, fmt.Errorf("snapshot %s: %w", m.SnapshotID, err)
	}
	return domain.ArchivedSnapshot{SnapshotID: m.SnapshotID, Snapshot: snapshot}, nil
}
