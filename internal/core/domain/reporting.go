package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultGoalTarget is the USD amount the dashboard tracks progress towards.
var DefaultGoalTarget = decimal.NewFromInt(1_000_000)

// AggregateRow is a group of ledger records with their summed amount.
type AggregateRow struct {
	Key    string          `json:"key"`
	Date   time.Time       `json:"date,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// CurrencyAmounts holds one value per currency.
type CurrencyAmounts map[Currency]decimal.Decimal

// CategoryCurrencyRow is a (category, currency) group with its raw and USD sums.
type CategoryCurrencyRow struct {
	Category  string          `json:"category"`
	Currency  Currency        `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
}

// MultiCurrencyRow is a group valued in every supported currency.
type MultiCurrencyRow struct {
	Key     string          `json:"key"`
	Amounts CurrencyAmounts `json:"amounts"`
}

// DateCategoryRow is one period of a date × category pivot. Every category
// seen anywhere in the series has an entry, zero when absent in the period.
type DateCategoryRow struct {
	Period string                     `json:"period"`
	Date   time.Time                  `json:"date"`
	Values map[string]decimal.Decimal `json:"values"`
}

// MonthCurrencyRow is one row of the month × currency table. The last row of
// the table has IsTotal set and an empty currency.
type MonthCurrencyRow struct {
	Month     string          `json:"month"`
	Currency  Currency        `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
	IsTotal   bool            `json:"isTotal"`
}

// PeriodDelta compares the first and last values of a date series.
type PeriodDelta struct {
	Initial       decimal.Decimal `json:"initial"`
	Current       decimal.Decimal `json:"current"`
	Change        decimal.Decimal `json:"change"`
	GrowthPercent decimal.Decimal `json:"growthPercent"`
}

// GoalProgress is the distance of a total to the goal target. Fraction is not clamped.
type GoalProgress struct {
	Target   decimal.Decimal `json:"target"`
	Current  decimal.Decimal `json:"current"`
	Fraction decimal.Decimal `json:"fraction"`
	Pending  decimal.Decimal `json:"pending"`
}

// CurrentView is the "current money breakdown" of a single ledger period.
type CurrentView struct {
	Period             string
	AvailablePeriods   []string
	Records            []LedgerRecord
	TotalUSD           decimal.Decimal
	Progress           *GoalProgress
	ByCurrency         []AggregateRow
	ByCategoryCurrency []CategoryCurrencyRow
	ByCategory         []AggregateRow
	Rates              *RateSnapshot
	Dropped            int
	Warnings           []string
}

// EvolutionView is the wealth evolution over every ledger period.
type EvolutionView struct {
	Granularity    Granularity
	Series         []AggregateRow
	Delta          PeriodDelta
	Target         decimal.Decimal
	Progress       GoalProgress
	CategorySeries []DateCategoryRow
	Rates          *RateSnapshot
	Warnings       []string
}

// BreakdownView values every investment and category in all currencies.
type BreakdownView struct {
	Records       []LedgerRecord
	ByInvestment  []MultiCurrencyRow
	ByCategory    []MultiCurrencyRow
	ByCurrency    []AggregateRow
	MonthCurrency []MonthCurrencyRow
	Totals        CurrencyAmounts
	Rates         RateSnapshot
	Dropped       int
}
