package services

import (
	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregationSvc groups cleaned ledger records. A nil snapshot means USD
// values are read from the ledger's precomputed USD column.
type AggregationSvc interface {
	// TotalUSD sums the USD value of every record.
	TotalUSD(records []domain.LedgerRecord, rates *domain.RateSnapshot) (decimal.Decimal, error)

	// CurrencyTotals sums raw amounts by currency.
	CurrencyTotals(records []domain.LedgerRecord) []domain.AggregateRow

	// CategoryTotals sums USD values by category label.
	CategoryTotals(records []domain.LedgerRecord, rates *domain.RateSnapshot, field domain.CategoryField) ([]domain.AggregateRow, error)

	// CategoryCurrencyTotals sums raw amounts and USD values by (category, currency).
	CategoryCurrencyTotals(records []domain.LedgerRecord, rates *domain.RateSnapshot, field domain.CategoryField) ([]domain.CategoryCurrencyRow, error)

	// InvestmentTotals values each investment in every supported currency.
	InvestmentTotals(records []domain.LedgerRecord, rates domain.RateSnapshot) ([]domain.MultiCurrencyRow, error)

	// CategoryMultiCurrencyTotals values each category in every supported currency.
	CategoryMultiCurrencyTotals(records []domain.LedgerRecord, rates domain.RateSnapshot, field domain.CategoryField) ([]domain.MultiCurrencyRow, error)

	// DateTotals sums USD values by period, sorted ascending by date.
	DateTotals(records []domain.LedgerRecord, rates *domain.RateSnapshot, g domain.Granularity) ([]domain.AggregateRow, error)

	// DateCategorySeries pivots USD values by period and category.
	DateCategorySeries(records []domain.LedgerRecord, rates *domain.RateSnapshot, g domain.Granularity, field domain.CategoryField) ([]domain.DateCategoryRow, error)

	// MonthCurrencyTable sums by (month, currency) and appends a total row.
	MonthCurrencyTable(records []domain.LedgerRecord, rates domain.RateSnapshot) ([]domain.MonthCurrencyRow, error)

	// CurrencySummary expresses the grand total in every supported currency.
	CurrencySummary(records []domain.LedgerRecord, rates domain.RateSnapshot) (domain.CurrencyAmounts, error)

	// PeriodDelta compares the first and last entries of an ascending series.
	PeriodDelta(series []domain.AggregateRow) domain.PeriodDelta

	// GoalProgress measures current against target.
	GoalProgress(current, target decimal.Decimal) domain.GoalProgress
}
