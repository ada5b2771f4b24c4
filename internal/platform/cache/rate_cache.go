package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/fxops/currency_management_app/internal/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
)

// flushSchedule clears the whole cache every midnight, independent of
// per-entry age.
const flushSchedule = "0 0 * * *"

// entry is one cached quote plus its write time for TTL checks. Entries are
// replaced wholesale on refresh, never mutated.
type entry struct {
	quote     domain.ExchangeRateQuote
	writtenAt time.Time
}

// RateCache is a time- and capacity-bounded cache of rate lookups shared by
// all request goroutines. Eviction has three independent triggers: per-entry
// TTL (checked on access), the LRU capacity bound, and the scheduled full
// flush. Concurrent fetches for the same key are coalesced so a burst of
// identical lookups issues a single upstream call.
type RateCache struct {
	entries *lru.Cache[string, entry]
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option customizes a RateCache.
type Option func(*RateCache)

// WithClock replaces the cache's time source. Tests use this to age entries
// past their TTL without real waits.
func WithClock(now func() time.Time) Option {
	return func(c *RateCache) {
		c.now = now
	}
}

// NewRateCache creates a RateCache holding at most size entries, each live
// for at most ttl. The scheduled full flush does not run until Start.
func NewRateCache(size int, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics, opts ...Option) (*RateCache, error) {
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &RateCache{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
		cron:    cron.New(),
		logger:  logger,
		metrics: m,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Key normalizes a currency pair into the cache key, e.g. "USD-EUR".
func Key(base, target string) string {
	return strings.ToUpper(base) + "-" + strings.ToUpper(target)
}

// GetOrFetch returns the cached quote for base->target when a live entry
// exists, otherwise invokes fetch, stores the result and returns it.
// Nothing is cached when fetch fails.
func (c *RateCache) GetOrFetch(ctx context.Context, base, target string, fetch func(ctx context.Context) (domain.ExchangeRateQuote, error)) (domain.ExchangeRateQuote, error) {
	key := Key(base, target)

	if quote, ok := c.lookup(key); ok {
		if c.metrics != nil {
			c.metrics.RateCacheHits.Inc()
		}
		c.logger.Debug("rate cache hit", slog.String("key", key))
		return quote, nil
	}
	if c.metrics != nil {
		c.metrics.RateCacheMisses.Inc()
	}
	c.logger.Debug("rate cache miss", slog.String("key", key))

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		// A coalesced waiter may arrive after the leader already stored the
		// entry; serve it from the cache instead of fetching again.
		if quote, ok := c.lookup(key); ok {
			return quote, nil
		}
		quote, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, entry{quote: quote, writtenAt: c.now()})
		return quote, nil
	})
	if err != nil {
		return domain.ExchangeRateQuote{}, err
	}
	if shared {
		c.logger.Debug("rate fetch coalesced", slog.String("key", key))
	}
	return v.(domain.ExchangeRateQuote), nil
}

// lookup returns a live entry, removing it when expired so an aged entry
// behaves as a miss.
func (c *RateCache) lookup(key string) (domain.ExchangeRateQuote, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return domain.ExchangeRateQuote{}, false
	}
	if c.now().Sub(e.writtenAt) > c.ttl {
		c.entries.Remove(key)
		return domain.ExchangeRateQuote{}, false
	}
	return e.quote, true
}

// Len returns the number of live entries, expired ones included until their
// next access or the next flush.
func (c *RateCache) Len() int {
	return c.entries.Len()
}

// Flush unconditionally clears the whole cache.
func (c *RateCache) Flush() {
	c.entries.Purge()
	c.logger.Info("exchange rates cache cleared")
}

// Start schedules the daily full flush. The job runs on the cache's own
// goroutine, not on any request path.
func (c *RateCache) Start() error {
	_, err := c.cron.AddFunc(flushSchedule, c.Flush)
	if err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

// Stop halts the scheduled flush.
func (c *RateCache) Stop() {
	c.cron.Stop()
}
