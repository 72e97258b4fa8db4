package repositories

import (
	"context"

	"github.com/SscSPs/million_tracker/internal/core/domain"
)

// LedgerSource is a read-only tabular store holding the ledger worksheet.
type LedgerSource interface {
	// FetchRows returns the header row and the data rows of the ledger.
	// An empty table is not an error.
	FetchRows(ctx context.Context) (domain.RawTable, error)
}
