// Package csvfile reads ledger tables from CSV, for offline use and uploads.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
)

// ReadTable parses r as a header row followed by data rows. Rows may have
// fewer or more fields than the header. Semicolon-separated files are
// detected from the header line.
func ReadTable(r io.Reader) (domain.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to read csv: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comma = detectComma(text)

	records, err := reader.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: malformed csv: %v", apperrors.ErrValidation, err)
	}
	if len(records) == 0 {
		return domain.RawTable{}, nil
	}
	return domain.RawTable{Header: records[0], Rows: records[1:]}, nil
}

// detectComma picks ';' when the header has more semicolons than commas,
// as spreadsheets exported with a comma decimal mark do.
func detectComma(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// LedgerSource reads the ledger from a CSV file on every fetch.
type LedgerSource struct {
	path string
}

var _ portsrepo.LedgerSource = (*LedgerSource)(nil)

// NewLedgerSource creates a source for the CSV file at path.
func NewLedgerSource(path string) *LedgerSource {
	return &LedgerSource{path: path}
}

func (s *LedgerSource) FetchRows(_ context.Context) (domain.RawTable, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.RawTable{}, fmt.Errorf("%w: ledger file %s", apperrors.ErrNotFound, s.path)
		}
		return domain.RawTable{}, fmt.Errorf("%w: %v", apperrors.ErrDataSource, err)
	}
	defer f.Close()
	return ReadTable(f)
}
