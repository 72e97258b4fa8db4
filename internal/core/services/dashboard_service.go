package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// dashboardService implements portssvc.DashboardSvc
type dashboardService struct {
	BaseService
	ledger        portsrepo.LedgerSource
	normalization portssvc.NormalizationSvc
	rates         portssvc.RateSvc
	conversion    portssvc.ConversionSvc
	aggregation   portssvc.AggregationSvc
	valuation     domain.ValuationSource
	goalTarget    decimal.Decimal
}

// DashboardOption is a functional option for configuring the dashboard service
type DashboardOption func(*dashboardService)

// WithValuationSource selects where USD values come from.
func WithValuationSource(v domain.ValuationSource) DashboardOption {
	return func(s *dashboardService) {
		if v != "" {
			s.valuation = v
		}
	}
}

// WithGoalTarget overrides the USD goal.
func WithGoalTarget(target decimal.Decimal) DashboardOption {
	return func(s *dashboardService) {
		if target.IsPositive() {
			s.goalTarget = target
		}
	}
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	ledger portsrepo.LedgerSource,
	normalization portssvc.NormalizationSvc,
	rates portssvc.RateSvc,
	conversion portssvc.ConversionSvc,
	aggregation portssvc.AggregationSvc,
	options ...DashboardOption,
) portssvc.DashboardSvc {
	svc := &dashboardService{
		ledger:        ledger,
		normalization: normalization,
		rates:         rates,
		conversion:    conversion,
		aggregation:   aggregation,
		valuation:     domain.ValueWithRates,
		goalTarget:    domain.DefaultGoalTarget,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) Current(ctx context.Context, period string) (*domain.CurrentView, error) {
	cleaned, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	periods, dated := availablePeriods(cleaned.Records)
	view := &domain.CurrentView{
		AvailablePeriods: periods,
		Dropped:          cleaned.Dropped,
		Warnings:         dateWarnings(cleaned.Records),
	}
	if len(view.AvailablePeriods) == 0 {
		view.Records = []domain.LedgerRecord{}
		return view, nil
	}

	if period == "" {
		period = periods[len(periods)-1]
		if dated > 0 {
			period = periods[dated-1]
		}
	} else if !contains(view.AvailablePeriods, period) {
		return nil, fmt.Errorf("%w: no ledger entries for period %q", apperrors.ErrNotFound, period)
	}
	view.Period = period

	view.Records = make([]domain.LedgerRecord, 0)
	for _, r := range cleaned.Records {
		if !r.HasPeriod() {
			continue
		}
		if key, _ := r.PeriodKey(domain.ByDay); key == period {
			view.Records = append(view.Records, r)
		}
	}
	view.ByCurrency = s.aggregation.CurrencyTotals(view.Records)

	rates, usable, warnings := s.valuationRates(ctx)
	view.Rates = rates
	view.Warnings = append(view.Warnings, warnings...)
	if !usable {
		return view, nil
	}

	if view.TotalUSD, err = s.aggregation.TotalUSD(view.Records, rates); err != nil {
		return nil, err
	}
	progress := s.aggregation.GoalProgress(view.TotalUSD, s.goalTarget)
	view.Progress = &progress
	if view.ByCategoryCurrency, err = s.aggregation.CategoryCurrencyTotals(view.Records, rates, domain.BySubCategory); err != nil {
		return nil, err
	}
	if view.ByCategory, err = s.aggregation.CategoryTotals(view.Records, rates, domain.ByCategory); err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Built current breakdown",
		slog.String("period", period),
		slog.Int("records", len(view.Records)))
	return view, nil
}

func (s *dashboardService) Evolution(ctx context.Context, g domain.Granularity) (*domain.EvolutionView, error) {
	if g == "" {
		g = domain.ByDay
	}
	cleaned, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	view := &domain.EvolutionView{
		Granularity: g,
		Target:      s.goalTarget,
		Warnings:    dateWarnings(cleaned.Records),
	}
	rates, usable, warnings := s.valuationRates(ctx)
	view.Rates = rates
	view.Warnings = append(view.Warnings, warnings...)
	if !usable {
		return view, nil
	}

	if view.Series, err = s.aggregation.DateTotals(cleaned.Records, rates, g); err != nil {
		return nil, err
	}
	view.Delta = s.aggregation.PeriodDelta(datedRows(view.Series))
	view.Progress = s.aggregation.GoalProgress(view.Delta.Current, s.goalTarget)
	if view.CategorySeries, err = s.aggregation.DateCategorySeries(cleaned.Records, rates, g, domain.ByCategory); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *dashboardService) Breakdown(ctx context.Context) (*domain.BreakdownView, error) {
	table, err := s.ledger.FetchRows(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger")
		return nil, err
	}
	return s.BreakdownFromTable(ctx, table)
}

// BreakdownFromTable always needs a snapshot, whatever the valuation source,
// since every section is expressed in all supported currencies.
func (s *dashboardService) BreakdownFromTable(ctx context.Context, table domain.RawTable) (*domain.BreakdownView, error) {
	cleaned, err := s.normalize(ctx, table)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	view := &domain.BreakdownView{
		Records:    cleaned.Records,
		ByCurrency: s.aggregation.CurrencyTotals(cleaned.Records),
		Rates:      rates,
		Dropped:    cleaned.Dropped,
	}
	if view.ByInvestment, err = s.aggregation.InvestmentTotals(cleaned.Records, rates); err != nil {
		return nil, err
	}
	if view.ByCategory, err = s.aggregation.CategoryMultiCurrencyTotals(cleaned.Records, rates, domain.ByCategory); err != nil {
		return nil, err
	}
	if view.MonthCurrency, err = s.aggregation.MonthCurrencyTable(cleaned.Records, rates); err != nil {
		return nil, err
	}
	if view.Totals, err = s.aggregation.CurrencySummary(cleaned.Records, rates); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *dashboardService) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, domain.RateSnapshot, error) {
	if amount.IsNegative() {
		return decimal.Zero, domain.RateSnapshot{}, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	rates, err := s.rates.GetRates(ctx)
	if err != nil {
		return decimal.Zero, domain.RateSnapshot{}, err
	}
	converted, err := s.conversion.Convert(amount, from, to, rates)
	if err != nil {
		return decimal.Zero, rates, err
	}
	return converted, rates, nil
}

// load fetches the ledger and cleans it.
func (s *dashboardService) load(ctx context.Context) (*domain.NormalizeResult, error) {
	table, err := s.ledger.FetchRows(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger")
		return nil, err
	}
	return s.normalize(ctx, table)
}

func (s *dashboardService) normalize(ctx context.Context, table domain.RawTable) (*domain.NormalizeResult, error) {
	if table.IsEmpty() {
		s.LogInfo(ctx, "Ledger is empty")
		return &domain.NormalizeResult{Records: []domain.LedgerRecord{}}, nil
	}
	return s.normalization.Normalize(ctx, table)
}

// valuationRates returns the snapshot used for USD values (nil when the ledger
// column is used) and whether USD values can be computed at all.
func (s *dashboardService) valuationRates(ctx context.Context) (*domain.RateSnapshot, bool, []string) {
	if s.valuation == domain.ValueFromLedger {
		return nil, true, nil
	}
	rates, err := s.rates.GetRates(ctx)
	if err != nil {
		s.LogWarn(ctx, "Serving dashboard without exchange rates", slog.String("error", err.Error()))
		return nil, false, []string{"Exchange rates are unavailable; USD values are omitted."}
	}
	return &rates, true, nil
}

// availablePeriods lists the distinct period labels, oldest first, and how many
// of them are dated. Labels of unparsed dates follow the dated periods.
func availablePeriods(records []domain.LedgerRecord) ([]string, int) {
	dates := make(map[string]time.Time)
	for _, r := range records {
		if !r.HasPeriod() {
			continue
		}
		key, date := r.PeriodKey(domain.ByDay)
		dates[key] = date
	}
	periods := make([]string, 0, len(dates))
	dated := 0
	for k, date := range dates {
		periods = append(periods, k)
		if !date.IsZero() {
			dated++
		}
	}
	sort.Slice(periods, func(i, j int) bool {
		return periodLess(dates[periods[i]], periods[i], dates[periods[j]], periods[j])
	})
	return periods, dated
}

// datedRows returns the leading dated rows of a sorted series, or the whole
// series when none is dated.
func datedRows(series []domain.AggregateRow) []domain.AggregateRow {
	n := 0
	for n < len(series) && !series[n].Date.IsZero() {
		n++
	}
	if n == 0 {
		return series
	}
	return series[:n]
}

// dateWarnings reports rows whose date could not be read.
func dateWarnings(records []domain.LedgerRecord) []string {
	var unparsed, blank int
	for _, r := range records {
		switch {
		case r.HasDate():
		case r.HasPeriod():
			unparsed++
		default:
			blank++
		}
	}
	var warnings []string
	if unparsed > 0 {
		warnings = append(warnings, fmt.Sprintf("%d ledger rows have an unrecognised date; they are grouped by their raw date label after the dated periods.", unparsed))
	}
	if blank > 0 {
		warnings = append(warnings, fmt.Sprintf("%d ledger rows have no date and are left out of period views.", blank))
	}
	return warnings
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
