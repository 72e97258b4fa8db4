package services

import (
	"fmt"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// conversionService implements portssvc.ConversionSvc
type conversionService struct {
	policy domain.ConversionPolicy
}

// NewConversionService creates a conversion service with the given policy for
// currencies missing from a snapshot.
func NewConversionService(policy domain.ConversionPolicy) portssvc.ConversionSvc {
	if policy == "" {
		policy = domain.TolerantConversion
	}
	return &conversionService{policy: policy}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) Policy() domain.ConversionPolicy { return s.policy }

// Convert returns amount expressed in to. Rates are "units per 1 USD", so a
// non-USD amount is first divided back to USD.
func (s *conversionService) Convert(amount decimal.Decimal, from, to domain.Currency, rates domain.RateSnapshot) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	toRate, ok := rates.Rate(to)
	if !ok {
		return s.unknown(to)
	}
	if from == domain.BaseCurrency {
		return amount.Mul(toRate), nil
	}

	fromRate, ok := rates.Rate(from)
	if !ok {
		return s.unknown(from)
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// ConvertAll expresses amount in every supported currency.
func (s *conversionService) ConvertAll(amount decimal.Decimal, from domain.Currency, rates domain.RateSnapshot) (domain.CurrencyAmounts, error) {
	out := make(domain.CurrencyAmounts, len(domain.SupportedCurrencies))
	for _, to := range domain.SupportedCurrencies {
		v, err := s.Convert(amount, from, to, rates)
		if err != nil {
			return nil, err
		}
		out[to] = v
	}
	return out, nil
}

func (s *conversionService) unknown(c domain.Currency) (decimal.Decimal, error) {
	if s.policy == domain.StrictConversion {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, c)
	}
	return decimal.Zero, nil
}
