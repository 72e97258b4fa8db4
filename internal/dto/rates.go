package dto

import (
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatesResponse is a rate snapshot: units of each currency per 1 USD.
type RatesResponse struct {
	SnapshotID string                     `json:"snapshotID,omitempty"`
	Base       string                     `json:"base" example:"USD"`
	AsOf       time.Time                  `json:"asOf"`
	Rates      map[string]decimal.Decimal `json:"rates" swaggertype:"object,string"`
}

// ToRatesResponse converts a snapshot to its API shape.
func ToRatesResponse(s domain.RateSnapshot) RatesResponse {
	rates := make(map[string]decimal.Decimal)
	for c, r := range s.Rates() {
		rates[c.String()] = r
	}
	return RatesResponse{
		Base:  domain.BaseCurrency.String(),
		AsOf:  s.AsOf(),
		Rates: rates,
	}
}

// RateHistoryResponse lists archived snapshots, newest first.
type RateHistoryResponse struct {
	Snapshots []RatesResponse `json:"snapshots"`
}

// ToRateHistoryResponse converts archived snapshots to their API shape.
func ToRateHistoryResponse(archived []domain.ArchivedSnapshot) RateHistoryResponse {
	out := RateHistoryResponse{Snapshots: make([]RatesResponse, 0, len(archived))}
	for _, a := range archived {
		r := ToRatesResponse(a.Snapshot)
		r.SnapshotID = a.SnapshotID
		out.Snapshots = append(out.Snapshots, r)
	}
	return out
}

// RateHistoryQuery binds the query of GET /rates/history.
type RateHistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ConvertQuery binds the query of GET /rates/convert.
type ConvertQuery struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,supported_currency"`
	To     string `form:"to" binding:"required,supported_currency"`
}

// ConvertResponse is the result of an ad-hoc conversion.
type ConvertResponse struct {
	From      Money     `json:"from"`
	To        Money     `json:"to"`
	RatesAsOf time.Time `json:"ratesAsOf"`
}
