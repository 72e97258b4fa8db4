package dto

import (
	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/SscSPs/million_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount with its display rendering.
type Money struct {
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"1234.56"`
	Currency string          `json:"currency" example:"USD"`
	Display  string          `json:"display" example:"$1,234.56"`
}

// NewMoney builds a Money for amount in currency.
func NewMoney(amount decimal.Decimal, currency domain.Currency) Money {
	return Money{
		Amount:   amount,
		Currency: currency.String(),
		Display:  utils.FormatMoney(amount, currency),
	}
}

// USD is shorthand for NewMoney(amount, domain.USD).
func USD(amount decimal.Decimal) Money {
	return NewMoney(amount, domain.USD)
}

// ToMoneyMap renders one Money per currency, keyed by currency code.
func ToMoneyMap(amounts domain.CurrencyAmounts) map[string]Money {
	out := make(map[string]Money, len(amounts))
	for c, a := range amounts {
		out[c.String()] = NewMoney(a, c)
	}
	return out
}
