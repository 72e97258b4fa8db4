// Package cache holds the process-wide caches: the ledger table memo and the
// exchange-rate snapshot stores.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/million_tracker/internal/middleware"
	"golang.org/x/sync/singleflight"
)

// DefaultLedgerFetchTimeout bounds a read of the wrapped source.
const DefaultLedgerFetchTimeout = 30 * time.Second

// LedgerCache memoizes the table of another LedgerSource for ttl.
// Failed fetches are not cached.
type LedgerCache struct {
	source  portsrepo.LedgerSource
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	group   singleflight.Group

	mu        sync.Mutex
	table     domain.RawTable
	fetchedAt time.Time
	valid     bool
}

var _ portsrepo.LedgerSource = (*LedgerCache)(nil)

// NewLedgerCache wraps source. A non-positive ttl disables caching.
func NewLedgerCache(source portsrepo.LedgerSource, ttl time.Duration) *LedgerCache {
	return &LedgerCache{source: source, ttl: ttl, timeout: DefaultLedgerFetchTimeout, now: time.Now}
}

// FetchRows serves the memoized table while it is fresh. Concurrent misses
// share one read of the source, which keeps running when the caller that
// started it goes away.
func (c *LedgerCache) FetchRows(ctx context.Context) (domain.RawTable, error) {
	if c.ttl <= 0 {
		return c.source.FetchRows(ctx)
	}
	if table, ok := c.fresh(); ok {
		middleware.GetLoggerFromCtx(ctx).Debug("Ledger served from cache")
		return table, nil
	}

	ch := c.group.DoChan("ledger", func() (any, error) {
		if table, ok := c.fresh(); ok {
			return table, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		table, err := c.source.FetchRows(fetchCtx)
		if err != nil {
			return domain.RawTable{}, err
		}
		c.mu.Lock()
		c.table, c.fetchedAt, c.valid = table, c.now(), true
		c.mu.Unlock()
		return table, nil
	})
	select {
	case <-ctx.Done():
		return domain.RawTable{}, fmt.Errorf("%w: %w", apperrors.ErrDataSource, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.RawTable{}, res.Err
		}
		return res.Val.(domain.RawTable), nil
	}
}

func (c *LedgerCache) fresh() (domain.RawTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.now().Before(c.fetchedAt.Add(c.ttl)) {
		return c.table, true
	}
	return domain.RawTable{}, false
}
