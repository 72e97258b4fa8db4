package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/utils/locale"
)

// Canonical ledger column names, see canonicalColumn.
const (
	colDate        = "date"
	colAmount      = "amount"
	colCurrency    = "currency"
	colCategory    = "category"
	colSubCategory = "sub category"
	colInvestment  = "investment name"
	colAmountUSD   = "currency usd"
)

var columnAliases = map[string]string{
	"amount usd":  colAmountUSD,
	"usd amount":  colAmountUSD,
	"subcategory": colSubCategory,
	"investment":  colInvestment,
}

var requiredColumns = []string{colAmount, colCurrency}

// normalizationService implements portssvc.NormalizationSvc
type normalizationService struct {
	BaseService
	policy domain.UnsupportedCurrencyPolicy
}

// NewNormalizationService creates a normalization service applying policy to
// rows whose currency is not supported.
func NewNormalizationService(policy domain.UnsupportedCurrencyPolicy) portssvc.NormalizationSvc {
	if policy == "" {
		policy = domain.DropUnsupported
	}
	return &normalizationService{policy: policy}
}

var _ portssvc.NormalizationSvc = (*normalizationService)(nil)

// Normalize cleans every data row of table.
func (s *normalizationService) Normalize(ctx context.Context, table domain.RawTable) (*domain.NormalizeResult, error) {
	result := &domain.NormalizeResult{Records: make([]domain.LedgerRecord, 0, len(table.Rows))}
	if table.IsEmpty() {
		return result, nil
	}

	columns := make(map[string]int, len(table.Header))
	for i, h := range table.Header {
		name := canonicalColumn(h)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingColumns, strings.Join(missing, ", "))
	}

	_, hasUSD := columns[colAmountUSD]
	unparsed := 0
	for _, row := range table.Rows {
		if isBlankRow(row) {
			continue
		}
		cell := func(col string) string {
			i, ok := columns[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		currency := domain.ParseCurrency(cell(colCurrency))
		if currency == "" {
			currency = domain.BaseCurrency
		}
		if !currency.IsSupported() {
			if s.policy == domain.DropUnsupported {
				result.Dropped++
				continue
			}
			currency = domain.BaseCurrency
			result.Coerced++
		}

		amount, ok := locale.ParseAmount(cell(colAmount))
		if !ok && strings.TrimSpace(cell(colAmount)) != "" {
			unparsed++
		}

		rawDate := strings.TrimSpace(cell(colDate))
		date, precision := locale.ParseDate(rawDate)

		record := domain.LedgerRecord{
			Date:           date,
			DateLabel:      rawDate,
			DatePrecision:  precision,
			Amount:         amount,
			Currency:       currency,
			Category:       strings.TrimSpace(cell(colCategory)),
			SubCategory:    strings.TrimSpace(cell(colSubCategory)),
			InvestmentName: strings.TrimSpace(cell(colInvestment)),
		}
		if hasUSD {
			record.AmountUSD, _ = locale.ParseUSDEquivalent(cell(colAmountUSD))
			record.HasAmountUSD = true
		}
		result.Records = append(result.Records, record)
	}

	s.LogDebug(ctx, "Ledger normalized",
		slog.Int("rows", len(table.Rows)),
		slog.Int("records", len(result.Records)),
		slog.Int("dropped", result.Dropped),
		slog.Int("coerced", result.Coerced),
		slog.Int("unparsed_amounts", unparsed),
		slog.String("policy", string(s.policy)))
	return result, nil
}

// canonicalColumn lower-cases a header and folds '_' and '-' into single spaces.
func canonicalColumn(h string) string {
	h = strings.ToLower(h)
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	h = strings.Join(strings.Fields(h), " ")
	if alias, ok := columnAliases[h]; ok {
		return alias
	}
	return h
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
