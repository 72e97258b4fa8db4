package services

import (
	"context"

	"github.com/SscSPs/million_tracker/internal/core/domain"
)

// NormalizationSvc turns raw ledger tables into cleaned records.
type NormalizationSvc interface {
	// Normalize cleans every data row of table. It fails only when a required
	// column is missing; malformed cell values are replaced by defaults.
	Normalize(ctx context.Context, table domain.RawTable) (*domain.NormalizeResult, error)
}
