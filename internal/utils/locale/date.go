package locale

import (
	"strings"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
)

// Single-digit layout fields also accept zero-padded input. Day-first comes
// before month-first, so "1/15/2024" only matches the en-US layout.
var dayLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2006/1/2",
}

var monthLayouts = []string{
	"2006-1",
	"1/2006",
	"2006/1",
	"Jan 2006",
	"January 2006",
	"Jan/2006",
}

// ParseDate reads a ledger date. Day-first slashed dates follow the source
// spreadsheet locale; en-US month-first dates are accepted when the day-first
// reading is impossible. Unparseable input returns domain.NoDate.
func ParseDate(raw string) (time.Time, domain.DatePrecision) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, domain.NoDate
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), domain.DayPrecision
		}
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, domain.MonthPrecision
		}
	}
	return time.Time{}, domain.NoDate
}
