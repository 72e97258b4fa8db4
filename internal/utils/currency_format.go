package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount the way currency is conventionally displayed,
// rounded to the currency's minor unit. Example: 1234.567 USD is "$1,234.57".
func FormatMoney(amount decimal.Decimal, currency domain.Currency) string {
	cur := money.GetCurrency(currency.String())
	if cur == nil {
		return amount.StringFixed(2) + " " + currency.String()
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatPercent renders a percentage with two decimals, e.g. "150.00%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
