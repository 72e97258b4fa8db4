package domain

import "strings"

// Currency is an ISO 4217 code for one of the ledger currencies.
type Currency string

const (
	AUD Currency = "AUD"
	BRL Currency = "BRL"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// BaseCurrency is the currency every rate is expressed against.
const BaseCurrency = USD

// SupportedCurrencies lists the ledger currencies in display order.
var SupportedCurrencies = []Currency{AUD, BRL, EUR, USD}

// IsSupported reports whether c is one of the ledger currencies.
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Currency) String() string { return string(c) }

// ParseCurrency upper-cases and trims raw; the result may still be unsupported.
func ParseCurrency(raw string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(raw)))
}
