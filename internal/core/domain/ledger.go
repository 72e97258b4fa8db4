package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is a worksheet as returned by a ledger source: a header row and
// string data rows. Rows may be shorter than the header.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// IsEmpty reports whether the table carries no header at all.
func (t RawTable) IsEmpty() bool { return len(t.Header) == 0 }

// DatePrecision records how much of a ledger date was present in the source.
type DatePrecision int

const (
	// NoDate means the source date was blank or could not be parsed.
	NoDate DatePrecision = iota
	MonthPrecision
	DayPrecision
)

// LedgerRecord is one cleaned ledger entry.
type LedgerRecord struct {
	Date           time.Time       `json:"date"`
	DateLabel      string          `json:"dateLabel"`
	DatePrecision  DatePrecision   `json:"-"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       Currency        `json:"currency"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"subCategory"`
	InvestmentName string          `json:"investmentName"`
	AmountUSD      decimal.Decimal `json:"amountUSD"`
	HasAmountUSD   bool            `json:"-"`
}

// HasDate reports whether the record carries a parsed date.
func (r LedgerRecord) HasDate() bool { return r.DatePrecision != NoDate }

// HasPeriod reports whether the record can be placed in a period bucket:
// either its date parsed or it carries a non-blank raw label.
func (r LedgerRecord) HasPeriod() bool {
	return r.HasDate() || strings.TrimSpace(r.DateLabel) != ""
}

// PeriodKey returns the bucket label of the record for g. Month-precision
// dates always bucket by month. Unparsed dates bucket by their trimmed raw
// label with a zero time, which sorts after every dated period.
func (r LedgerRecord) PeriodKey(g Granularity) (string, time.Time) {
	if !r.HasDate() {
		return strings.TrimSpace(r.DateLabel), time.Time{}
	}
	if g == ByMonth || r.DatePrecision == MonthPrecision {
		m := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		return m.Format("2006-01"), m
	}
	return r.Date.Format("2006-01-02"), r.Date
}

// Label returns the value of the requested category field.
func (r LedgerRecord) Label(field CategoryField) string {
	if field == BySubCategory {
		return r.SubCategory
	}
	return r.Category
}

// NormalizeResult is the output of the cleaning pipeline.
type NormalizeResult struct {
	Records []LedgerRecord
	// Dropped counts rows removed by the unsupported-currency policy.
	Dropped int
	// Coerced counts rows whose unsupported currency was rewritten to USD.
	Coerced int
}
