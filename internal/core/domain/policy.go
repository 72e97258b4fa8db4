package domain

import (
	"fmt"
	"strings"
)

// UnsupportedCurrencyPolicy decides what happens to ledger rows whose currency
// is outside SupportedCurrencies.
type UnsupportedCurrencyPolicy string

const (
	// DropUnsupported removes the row from the cleaned set.
	DropUnsupported UnsupportedCurrencyPolicy = "drop"
	// CoerceUnsupported keeps the row and books its amount as USD.
	CoerceUnsupported UnsupportedCurrencyPolicy = "coerce"
)

// ParseUnsupportedCurrencyPolicy accepts "drop" or "coerce" (case-insensitive).
func ParseUnsupportedCurrencyPolicy(s string) (UnsupportedCurrencyPolicy, error) {
	switch p := UnsupportedCurrencyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DropUnsupported, CoerceUnsupported:
		return p, nil
	}
	return "", fmt.Errorf("unknown unsupported-currency policy %q", s)
}

// ConversionPolicy decides how a conversion reacts to a currency missing from the snapshot.
type ConversionPolicy string

const (
	// TolerantConversion converts unknown currencies to zero.
	TolerantConversion ConversionPolicy = "tolerant"
	// StrictConversion reports apperrors.ErrUnknownCurrency.
	StrictConversion ConversionPolicy = "strict"
)

// ParseConversionPolicy accepts "tolerant" or "strict" (case-insensitive).
func ParseConversionPolicy(s string) (ConversionPolicy, error) {
	switch p := ConversionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case TolerantConversion, StrictConversion:
		return p, nil
	}
	return "", fmt.Errorf("unknown conversion policy %q", s)
}

// ValuationSource selects where a record's USD value comes from.
type ValuationSource string

const (
	// ValueWithRates converts Amount with the live rate snapshot.
	ValueWithRates ValuationSource = "rates"
	// ValueFromLedger uses the precomputed USD column of the ledger.
	ValueFromLedger ValuationSource = "ledger"
)

// ParseValuationSource accepts "rates" or "ledger" (case-insensitive).
func ParseValuationSource(s string) (ValuationSource, error) {
	switch v := ValuationSource(strings.ToLower(strings.TrimSpace(s))); v {
	case ValueWithRates, ValueFromLedger:
		return v, nil
	}
	return "", fmt.Errorf("unknown valuation source %q", s)
}

// Granularity is the bucket size of a date series.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByMonth Granularity = "month"
)

// ParseGranularity accepts "day" or "month"; empty input means ByDay.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return ByDay, nil
	case ByDay, ByMonth:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// CategoryField selects which label a category breakdown groups by.
type CategoryField string

const (
	ByCategory    CategoryField = "category"
	BySubCategory CategoryField = "sub category"
)
