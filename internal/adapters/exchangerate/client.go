// Package exchangerate reads USD-based rates from an exchangerate-api style
// JSON endpoint ("GET .../latest/USD" answering {"rates": {"BRL": 5.01, ...}}).
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/million_tracker/internal/middleware"
	"github.com/shopspring/decimal"
)

// responses larger than this are rejected as malformed
const maxBodyBytes = 1 << 20

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Client is a portsrepo.RateSource backed by HTTP.
type Client struct {
	url        string
	httpClient *http.Client
}

var _ portsrepo.RateSource = (*Client)(nil)

// NewClient creates a client for url with the given request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchLatest returns the requested rates. Any transport failure, non-200
// status, undecodable body or missing currency is an error; no retries.
func (c *Client) FetchLatest(ctx context.Context, currencies []domain.Currency) (map[domain.Currency]decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Rates provider responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates provider returned non-200 status: %s", resp.Status)
	}

	var body latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if body.Base != "" && domain.ParseCurrency(body.Base) != domain.BaseCurrency {
		return nil, fmt.Errorf("rates response is based on %s, want %s", body.Base, domain.BaseCurrency)
	}

	out := make(map[domain.Currency]decimal.Decimal, len(currencies))
	for _, cur := range currencies {
		rate, ok := body.Rates[cur.String()]
		if !ok {
			return nil, fmt.Errorf("rates response has no %s rate", cur)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rates response has non-positive %s rate %s", cur, rate)
		}
		out[cur] = rate
	}
	return out, nil
}
