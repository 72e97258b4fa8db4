package services

import (
	"sort"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// MonthTotalLabel is the Month value of the closing row of MonthCurrencyTable.
const MonthTotalLabel = "Total"

// aggregationService implements portssvc.AggregationSvc
type aggregationService struct {
	conversion portssvc.ConversionSvc
}

// NewAggregationService creates an aggregation service that values records with conversion.
func NewAggregationService(conversion portssvc.ConversionSvc) portssvc.AggregationSvc {
	return &aggregationService{conversion: conversion}
}

var _ portssvc.AggregationSvc = (*aggregationService)(nil)

// usdValue values a record in USD. Without a snapshot the ledger column is used.
func (s *aggregationService) usdValue(r domain.LedgerRecord, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	if rates == nil {
		return r.AmountUSD, nil
	}
	return s.conversion.Convert(r.Amount, r.Currency, domain.BaseCurrency, *rates)
}

func (s *aggregationService) TotalUSD(records []domain.LedgerRecord, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range records {
		v, err := s.usdValue(r, rates)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}

func (s *aggregationService) CurrencyTotals(records []domain.LedgerRecord) []domain.AggregateRow {
	sums := make(map[domain.Currency]decimal.Decimal)
	for _, r := range records {
		sums[r.Currency] = sums[r.Currency].Add(r.Amount)
	}

	rows := make([]domain.AggregateRow, 0, len(sums))
	for c, amount := range sums {
		rows = append(rows, domain.AggregateRow{Key: c.String(), Amount: amount})
	}
	sortRowsByKey(rows)
	return rows
}

func (s *aggregationService) CategoryTotals(records []domain.LedgerRecord, rates *domain.RateSnapshot, field domain.CategoryField) ([]domain.AggregateRow, error) {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		v, err := s.usdValue(r, rates)
		if err != nil {
			return nil, err
		}
		label := r.Label(field)
		sums[label] = sums[label].Add(v)
	}

	rows := make([]domain.AggregateRow, 0, len(sums))
	for label, amount := range sums {
		rows = append(rows, domain.AggregateRow{Key: label, Amount: amount})
	}
	sortRowsByKey(rows)
	return rows, nil
}

func (s *aggregationService) CategoryCurrencyTotals(records []domain.LedgerRecord, rates *domain.RateSnapshot, field domain.CategoryField) ([]domain.CategoryCurrencyRow, error) {
	type groupKey struct {
		category string
		currency domain.Currency
	}
	groups := make(map[groupKey]*domain.CategoryCurrencyRow)
	for _, r := range records {
		v, err := s.usdValue(r, rates)
		if err != nil {
			return nil, err
		}
		k := groupKey{category: r.Label(field), currency: r.Currency}
		g, ok := groups[k]
		if !ok {
			g = &domain.CategoryCurrencyRow{Category: k.category, Currency: k.currency}
			groups[k] = g
		}
		g.Amount = g.Amount.Add(r.Amount)
		g.AmountUSD = g.AmountUSD.Add(v)
	}

	rows := make([]domain.CategoryCurrencyRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Currency < rows[j].Currency
	})
	return rows, nil
}

func (s *aggregationService) InvestmentTotals(records []domain.LedgerRecord, rates domain.RateSnapshot) ([]domain.MultiCurrencyRow, error) {
	return s.multiCurrency(records, rates, func(r domain.LedgerRecord) string { return r.InvestmentName })
}

func (s *aggregationService) CategoryMultiCurrencyTotals(records []domain.LedgerRecord, rates domain.RateSnapshot, field domain.CategoryField) ([]domain.MultiCurrencyRow, error) {
	return s.multiCurrency(records, rates, func(r domain.LedgerRecord) string { return r.Label(field) })
}

// multiCurrency sums USD values by keyOf and expresses each sum in every supported currency.
func (s *aggregationService) multiCurrency(records []domain.LedgerRecord, rates domain.RateSnapshot, keyOf func(domain.LedgerRecord) string) ([]domain.MultiCurrencyRow, error) {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		v, err := s.usdValue(r, &rates)
		if err != nil {
			return nil, err
		}
		k := keyOf(r)
		sums[k] = sums[k].Add(v)
	}

	rows := make([]domain.MultiCurrencyRow, 0, len(sums))
	for k, usd := range sums {
		amounts, err := s.conversion.ConvertAll(usd, domain.BaseCurrency, rates)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.MultiCurrencyRow{Key: k, Amounts: amounts})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

func (s *aggregationService) DateTotals(records []domain.LedgerRecord, rates *domain.RateSnapshot, g domain.Granularity) ([]domain.AggregateRow, error) {
	buckets := make(map[string]*domain.AggregateRow)
	for _, r := range records {
		if !r.HasPeriod() {
			continue
		}
		v, err := s.usdValue(r, rates)
		if err != nil {
			return nil, err
		}
		key, date := r.PeriodKey(g)
		b, ok := buckets[key]
		if !ok {
			b = &domain.AggregateRow{Key: key, Date: date}
			buckets[key] = b
		}
		b.Amount = b.Amount.Add(v)
	}

	rows := make([]domain.AggregateRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, *b)
	}
	sortRowsByDate(rows)
	return rows, nil
}

func (s *aggregationService) DateCategorySeries(records []domain.LedgerRecord, rates *domain.RateSnapshot, g domain.Granularity, field domain.CategoryField) ([]domain.DateCategoryRow, error) {
	categories := make(map[string]struct{})
	periods := make(map[string]*domain.DateCategoryRow)
	for _, r := range records {
		if !r.HasPeriod() {
			continue
		}
		v, err := s.usdValue(r, rates)
		if err != nil {
			return nil, err
		}
		key, date := r.PeriodKey(g)
		p, ok := periods[key]
		if !ok {
			p = &domain.DateCategoryRow{Period: key, Date: date, Values: make(map[string]decimal.Decimal)}
			periods[key] = p
		}
		label := r.Label(field)
		categories[label] = struct{}{}
		p.Values[label] = p.Values[label].Add(v)
	}

	rows := make([]domain.DateCategoryRow, 0, len(periods))
	for _, p := range periods {
		for c := range categories {
			if _, ok := p.Values[c]; !ok {
				p.Values[c] = decimal.Zero
			}
		}
		rows = append(rows, *p)
	}
	sort.Slice(rows, func(i, j int) bool {
		return periodLess(rows[i].Date, rows[i].Period, rows[j].Date, rows[j].Period)
	})
	return rows, nil
}

func (s *aggregationService) MonthCurrencyTable(records []domain.LedgerRecord, rates domain.RateSnapshot) ([]domain.MonthCurrencyRow, error) {
	type groupKey struct {
		month    string
		currency domain.Currency
	}
	groups := make(map[groupKey]*domain.MonthCurrencyRow)
	months := make(map[string]time.Time)
	total := decimal.Zero
	for _, r := range records {
		if !r.HasPeriod() {
			continue
		}
		v, err := s.usdValue(r, &rates)
		if err != nil {
			return nil, err
		}
		month, date := r.PeriodKey(domain.ByMonth)
		months[month] = date
		k := groupKey{month: month, currency: r.Currency}
		g, ok := groups[k]
		if !ok {
			g = &domain.MonthCurrencyRow{Month: month, Currency: r.Currency}
			groups[k] = g
		}
		g.Amount = g.Amount.Add(r.Amount)
		g.AmountUSD = g.AmountUSD.Add(v)
		total = total.Add(v)
	}

	rows := make([]domain.MonthCurrencyRow, 0, len(groups)+1)
	for _, g := range groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return periodLess(months[rows[i].Month], rows[i].Month, months[rows[j].Month], rows[j].Month)
		}
		return rows[i].Currency < rows[j].Currency
	})
	// The total row is expressed in USD only; raw amounts of mixed currencies do not add up.
	rows = append(rows, domain.MonthCurrencyRow{
		Month:     MonthTotalLabel,
		Amount:    total,
		AmountUSD: total,
		IsTotal:   true,
	})
	return rows, nil
}

func (s *aggregationService) CurrencySummary(records []domain.LedgerRecord, rates domain.RateSnapshot) (domain.CurrencyAmounts, error) {
	total, err := s.TotalUSD(records, &rates)
	if err != nil {
		return nil, err
	}
	return s.conversion.ConvertAll(total, domain.BaseCurrency, rates)
}

func (s *aggregationService) PeriodDelta(series []domain.AggregateRow) domain.PeriodDelta {
	if len(series) == 0 {
		return domain.PeriodDelta{}
	}
	initial := series[0].Amount
	current := series[len(series)-1].Amount
	delta := domain.PeriodDelta{
		Initial: initial,
		Current: current,
		Change:  current.Sub(initial),
	}
	if initial.IsPositive() {
		delta.GrowthPercent = delta.Change.Div(initial).Mul(decimal.NewFromInt(100))
	}
	return delta
}

func (s *aggregationService) GoalProgress(current, target decimal.Decimal) domain.GoalProgress {
	progress := domain.GoalProgress{
		Target:  target,
		Current: current,
		Pending: target.Sub(current),
	}
	if !target.IsZero() {
		progress.Fraction = current.Div(target)
	}
	return progress
}

func sortRowsByKey(rows []domain.AggregateRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
}

func sortRowsByDate(rows []domain.AggregateRow) {
	sort.Slice(rows, func(i, j int) bool {
		return periodLess(rows[i].Date, rows[i].Key, rows[j].Date, rows[j].Key)
	})
}

// periodLess orders dated periods chronologically, then raw-label periods
// (zero time) by label.
func periodLess(a time.Time, aKey string, b time.Time, bKey string) bool {
	if a.IsZero() != b.IsZero() {
		return !a.IsZero()
	}
	if !a.Equal(b) {
		return a.Before(b)
	}
	return aKey < bKey
}
