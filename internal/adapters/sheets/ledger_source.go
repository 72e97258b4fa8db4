// Package sheets reads the ledger worksheet through the Google Sheets API.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/million_tracker/internal/middleware"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SpreadsheetID accepts either a bare id or a full spreadsheet URL.
func SpreadsheetID(idOrURL string) string {
	idOrURL = strings.TrimSpace(idOrURL)
	if m := spreadsheetURLPattern.FindStringSubmatch(idOrURL); m != nil {
		return m[1]
	}
	return idOrURL
}

// LedgerSource reads every row of one worksheet.
type LedgerSource struct {
	service       *sheetsapi.Service
	spreadsheetID string
	worksheet     string
}

var _ portsrepo.LedgerSource = (*LedgerSource)(nil)

// NewLedgerSource authenticates with the service-account key at credentialsFile.
func NewLedgerSource(ctx context.Context, credentialsFile, spreadsheet, worksheet string) (*LedgerSource, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read google credentials %s: %w", credentialsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, key, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}
	service, err := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return NewLedgerSourceWithService(service, spreadsheet, worksheet), nil
}

// NewLedgerSourceWithService uses an already configured client.
func NewLedgerSourceWithService(service *sheetsapi.Service, spreadsheet, worksheet string) *LedgerSource {
	return &LedgerSource{
		service:       service,
		spreadsheetID: SpreadsheetID(spreadsheet),
		worksheet:     worksheet,
	}
}

// FetchRows reads the worksheet as formatted strings.
func (s *LedgerSource) FetchRows(ctx context.Context) (domain.RawTable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if s.spreadsheetID == "" {
		return domain.RawTable{}, fmt.Errorf("%w: SPREADSHEET_ID is not set", apperrors.ErrNotConfigured)
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return domain.RawTable{}, fmt.Errorf("%w: spreadsheet %s worksheet %q", apperrors.ErrNotFound, s.spreadsheetID, s.worksheet)
		}
		logger.Error("Failed to read ledger worksheet",
			slog.String("spreadsheet_id", s.spreadsheetID),
			slog.String("error", err.Error()))
		return domain.RawTable{}, fmt.Errorf("%w: %v", apperrors.ErrDataSource, err)
	}

	table := toRawTable(resp.Values)
	logger.Debug("Ledger worksheet read", slog.Int("rows", len(table.Rows)))
	return table, nil
}

// toRawTable turns the API's [][]interface{} into strings. Trailing empty
// cells are omitted by the API, so rows may be shorter than the header.
func toRawTable(values [][]interface{}) domain.RawTable {
	if len(values) == 0 {
		return domain.RawTable{}
	}
	table := domain.RawTable{
		Header: cellsToStrings(values[0]),
		Rows:   make([][]string, 0, len(values)-1),
	}
	for _, row := range values[1:] {
		table.Rows = append(table.Rows, cellsToStrings(row))
	}
	return table
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case nil:
		case string:
			out[i] = v
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
