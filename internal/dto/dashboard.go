package dto

import (
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/SscSPs/million_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RecordResponse is one cleaned ledger entry.
type RecordResponse struct {
	Date           string `json:"date"`
	Amount         Money  `json:"amount"`
	Category       string `json:"category"`
	SubCategory    string `json:"subCategory"`
	InvestmentName string `json:"investmentName"`
}

// CurrencyTotalResponse is the raw total held in one currency.
type CurrencyTotalResponse struct {
	Currency string `json:"currency"`
	Total    Money  `json:"total"`
}

// CategoryCurrencyResponse is a (category, currency) group.
type CategoryCurrencyResponse struct {
	Category  string `json:"category"`
	Amount    Money  `json:"amount"`
	AmountUSD Money  `json:"amountUSD"`
}

// CategoryTotalResponse is the USD value held in one category.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	TotalUSD Money  `json:"totalUSD"`
}

// GoalProgressResponse is the distance to the USD goal. Fraction is exact and
// unclamped; PercentDisplay is clamped to [0%, 100%] for progress bars.
type GoalProgressResponse struct {
	Target         Money           `json:"target"`
	Current        Money           `json:"current"`
	Pending        Money           `json:"pending"`
	Fraction       decimal.Decimal `json:"fraction" swaggertype:"string"`
	PercentDisplay string          `json:"percentDisplay" example:"25.00%"`
}

// ToGoalProgressResponse converts goal progress to its API shape.
func ToGoalProgressResponse(p domain.GoalProgress) GoalProgressResponse {
	pct := p.Fraction.Mul(hundred)
	if pct.IsNegative() {
		pct = decimal.Zero
	} else if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return GoalProgressResponse{
		Target:         USD(p.Target),
		Current:        USD(p.Current),
		Pending:        USD(p.Pending),
		Fraction:       p.Fraction,
		PercentDisplay: utils.FormatPercent(pct),
	}
}

// CurrentResponse is the breakdown of one ledger period.
type CurrentResponse struct {
	Period             string                     `json:"period"`
	AvailablePeriods   []string                   `json:"availablePeriods"`
	TotalUSD           *Money                     `json:"totalUSD,omitempty"`
	Progress           *GoalProgressResponse      `json:"progress,omitempty"`
	ByCurrency         []CurrencyTotalResponse    `json:"byCurrency"`
	ByCategoryCurrency []CategoryCurrencyResponse `json:"byCategoryCurrency,omitempty"`
	ByCategoryUSD      []CategoryTotalResponse    `json:"byCategoryUSD,omitempty"`
	Records            []RecordResponse           `json:"records"`
	RatesAsOf          *time.Time                 `json:"ratesAsOf,omitempty"`
	Dropped            int                        `json:"dropped"`
	Warnings           []string                   `json:"warnings,omitempty"`
}

// ToCurrentResponse converts a current view to its API shape.
func ToCurrentResponse(v *domain.CurrentView) CurrentResponse {
	resp := CurrentResponse{
		Period:           v.Period,
		AvailablePeriods: v.AvailablePeriods,
		ByCurrency:       toCurrencyTotals(v.ByCurrency),
		Records:          make([]RecordResponse, 0, len(v.Records)),
		Dropped:          v.Dropped,
		Warnings:         v.Warnings,
	}
	for _, r := range v.Records {
		resp.Records = append(resp.Records, RecordResponse{
			Date:           r.DateLabel,
			Amount:         NewMoney(r.Amount, r.Currency),
			Category:       r.Category,
			SubCategory:    r.SubCategory,
			InvestmentName: r.InvestmentName,
		})
	}
	if v.Progress != nil {
		total := USD(v.TotalUSD)
		progress := ToGoalProgressResponse(*v.Progress)
		resp.TotalUSD, resp.Progress = &total, &progress
	}
	for _, row := range v.ByCategoryCurrency {
		resp.ByCategoryCurrency = append(resp.ByCategoryCurrency, CategoryCurrencyResponse{
			Category:  row.Category,
			Amount:    NewMoney(row.Amount, row.Currency),
			AmountUSD: USD(row.AmountUSD),
		})
	}
	for _, row := range v.ByCategory {
		resp.ByCategoryUSD = append(resp.ByCategoryUSD, CategoryTotalResponse{Category: row.Key, TotalUSD: USD(row.Amount)})
	}
	resp.RatesAsOf = asOf(v.Rates)
	return resp
}

// SeriesPointResponse is one period of the USD evolution.
type SeriesPointResponse struct {
	Period   string    `json:"period"`
	Date     time.Time `json:"date"`
	TotalUSD Money     `json:"totalUSD"`
}

// DeltaResponse compares the first and last period.
type DeltaResponse struct {
	Initial       Money           `json:"initial"`
	Current       Money           `json:"current"`
	Change        Money           `json:"change"`
	GrowthPercent decimal.Decimal `json:"growthPercent" swaggertype:"string"`
	GrowthDisplay string          `json:"growthDisplay" example:"150.00%"`
}

// CategoryPointResponse is one period of the per-category stacked series.
type CategoryPointResponse struct {
	Period string                     `json:"period"`
	Values map[string]decimal.Decimal `json:"values" swaggertype:"object,string"`
}

// EvolutionResponse is the wealth evolution over every period.
type EvolutionResponse struct {
	Granularity    string                  `json:"granularity" example:"day"`
	Series         []SeriesPointResponse   `json:"series"`
	Delta          DeltaResponse           `json:"delta"`
	Target         Money                   `json:"target"`
	Progress       GoalProgressResponse    `json:"progress"`
	CategorySeries []CategoryPointResponse `json:"categorySeries"`
	RatesAsOf      *time.Time              `json:"ratesAsOf,omitempty"`
	Warnings       []string                `json:"warnings,omitempty"`
}

// ToEvolutionResponse converts an evolution view to its API shape.
func ToEvolutionResponse(v *domain.EvolutionView) EvolutionResponse {
	resp := EvolutionResponse{
		Granularity: string(v.Granularity),
		Series:      make([]SeriesPointResponse, 0, len(v.Series)),
		Delta: DeltaResponse{
			Initial:       USD(v.Delta.Initial),
			Current:       USD(v.Delta.Current),
			Change:        USD(v.Delta.Change),
			GrowthPercent: v.Delta.GrowthPercent,
			GrowthDisplay: utils.FormatPercent(v.Delta.GrowthPercent),
		},
		Target:         USD(v.Target),
		Progress:       ToGoalProgressResponse(v.Progress),
		CategorySeries: make([]CategoryPointResponse, 0, len(v.CategorySeries)),
		RatesAsOf:      asOf(v.Rates),
		Warnings:       v.Warnings,
	}
	for _, p := range v.Series {
		resp.Series = append(resp.Series, SeriesPointResponse{Period: p.Key, Date: p.Date, TotalUSD: USD(p.Amount)})
	}
	for _, p := range v.CategorySeries {
		resp.CategorySeries = append(resp.CategorySeries, CategoryPointResponse{Period: p.Period, Values: p.Values})
	}
	return resp
}

// MultiCurrencyResponse is a group valued in every supported currency.
type MultiCurrencyResponse struct {
	Key     string           `json:"key"`
	Amounts map[string]Money `json:"amounts"`
}

// MonthCurrencyResponse is one row of the month × currency table.
type MonthCurrencyResponse struct {
	Month     string `json:"month"`
	Amount    Money  `json:"amount"`
	AmountUSD Money  `json:"amountUSD"`
	IsTotal   bool   `json:"isTotal"`
}

// BreakdownResponse values the ledger in every supported currency.
type BreakdownResponse struct {
	Records       int                     `json:"records"`
	ByInvestment  []MultiCurrencyResponse `json:"byInvestment"`
	ByCategory    []MultiCurrencyResponse `json:"byCategory"`
	ByCurrency    []CurrencyTotalResponse `json:"byCurrency"`
	MonthCurrency []MonthCurrencyResponse `json:"monthCurrency"`
	Totals        map[string]Money        `json:"totals"`
	Rates         RatesResponse           `json:"rates"`
	Dropped       int                     `json:"dropped"`
}

// ToBreakdownResponse converts a breakdown view to its API shape.
func ToBreakdownResponse(v *domain.BreakdownView) BreakdownResponse {
	resp := BreakdownResponse{
		Records:       len(v.Records),
		ByInvestment:  toMultiCurrency(v.ByInvestment),
		ByCategory:    toMultiCurrency(v.ByCategory),
		ByCurrency:    toCurrencyTotals(v.ByCurrency),
		MonthCurrency: make([]MonthCurrencyResponse, 0, len(v.MonthCurrency)),
		Totals:        ToMoneyMap(v.Totals),
		Rates:         ToRatesResponse(v.Rates),
		Dropped:       v.Dropped,
	}
	for _, row := range v.MonthCurrency {
		amount := NewMoney(row.Amount, row.Currency)
		if row.IsTotal {
			amount = USD(row.Amount)
		}
		resp.MonthCurrency = append(resp.MonthCurrency, MonthCurrencyResponse{
			Month:     row.Month,
			Amount:    amount,
			AmountUSD: USD(row.AmountUSD),
			IsTotal:   row.IsTotal,
		})
	}
	return resp
}

func toCurrencyTotals(rows []domain.AggregateRow) []CurrencyTotalResponse {
	out := make([]CurrencyTotalResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CurrencyTotalResponse{Currency: r.Key, Total: NewMoney(r.Amount, domain.Currency(r.Key))})
	}
	return out
}

func toMultiCurrency(rows []domain.MultiCurrencyRow) []MultiCurrencyResponse {
	out := make([]MultiCurrencyResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MultiCurrencyResponse{Key: r.Key, Amounts: ToMoneyMap(r.Amounts)})
	}
	return out
}

func asOf(rates *domain.RateSnapshot) *time.Time {
	if rates == nil {
		return nil
	}
	t := rates.AsOf()
	return &t
}
