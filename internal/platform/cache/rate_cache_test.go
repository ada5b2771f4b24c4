package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/fxops/currency_management_app/internal/platform/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteFetcher(calls *int32, rate string) func(ctx context.Context) (domain.ExchangeRateQuote, error) {
	return func(ctx context.Context) (domain.ExchangeRateQuote, error) {
		atomic.AddInt32(calls, 1)
		return domain.ExchangeRateQuote{
			BaseCurrency:   "USD",
			TargetCurrency: "EUR",
			ExchangeRate:   decimal.RequireFromString(rate),
		}, nil
	}
}

func TestRateCache_HitWithinTTL(t *testing.T) {
	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	var calls int32
	fetch := quoteFetcher(&calls, "0.92")

	first, err := c.GetOrFetch(context.Background(), "USD", "EUR", fetch)
	require.NoError(t, err)
	second, err := c.GetOrFetch(context.Background(), "USD", "EUR", fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, first.ExchangeRate.Equal(second.ExchangeRate))
	assert.Equal(t, 1, c.Len())
}

func TestRateCache_KeyNormalization(t *testing.T) {
	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	var calls int32
	fetch := quoteFetcher(&calls, "0.92")

	_, err = c.GetOrFetch(context.Background(), "usd", "eur", fetch)
	require.NoError(t, err)
	_, err = c.GetOrFetch(context.Background(), "USD", "EUR", fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "USD-EUR", cache.Key("usd", "eur"))
}

func TestRateCache_ExpiredEntryRefetches(t *testing.T) {
	now := time.Date(2025, 6, 24, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil, cache.WithClock(clock))
	require.NoError(t, err)

	var calls int32
	_, err = c.GetOrFetch(context.Background(), "USD", "EUR", quoteFetcher(&calls, "0.92"))
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(25 * time.Hour)
	mu.Unlock()

	refreshed, err := c.GetOrFetch(context.Background(), "USD", "EUR", quoteFetcher(&calls, "0.95"))
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.True(t, refreshed.ExchangeRate.Equal(decimal.RequireFromString("0.95")))
}

func TestRateCache_FetchErrorNotCached(t *testing.T) {
	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	_, err = c.GetOrFetch(context.Background(), "USD", "EUR", func(ctx context.Context) (domain.ExchangeRateQuote, error) {
		return domain.ExchangeRateQuote{}, assert.AnError
	})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	var calls int32
	quote, err := c.GetOrFetch(context.Background(), "USD", "EUR", quoteFetcher(&calls, "0.92"))
	require.NoError(t, err)
	assert.True(t, quote.ExchangeRate.Equal(decimal.RequireFromString("0.92")))
}

func TestRateCache_CapacityBound(t *testing.T) {
	c, err := cache.NewRateCache(2, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	var calls int32
	pairs := [][2]string{{"USD", "EUR"}, {"USD", "GBP"}, {"USD", "TRY"}}
	for _, pair := range pairs {
		_, err = c.GetOrFetch(context.Background(), pair[0], pair[1], quoteFetcher(&calls, "1.5"))
		require.NoError(t, err)
	}

	assert.Equal(t, 2, c.Len())

	// The oldest pair was evicted, so looking it up again refetches.
	_, err = c.GetOrFetch(context.Background(), "USD", "EUR", quoteFetcher(&calls, "1.5"))
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestRateCache_Flush(t *testing.T) {
	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	var calls int32
	_, err = c.GetOrFetch(context.Background(), "USD", "EUR", quoteFetcher(&calls, "0.92"))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Flush()

	assert.Equal(t, 0, c.Len())
	_, err = c.GetOrFetch(context.Background(), "USD", "EUR", quoteFetcher(&calls, "0.92"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateCache_CoalescesConcurrentFetches(t *testing.T) {
	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (domain.ExchangeRateQuote, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return domain.ExchangeRateQuote{
			BaseCurrency:   "USD",
			TargetCurrency: "EUR",
			ExchangeRate:   decimal.RequireFromString("0.92"),
		}, nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]domain.ExchangeRateQuote, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrFetch(context.Background(), "USD", "EUR", fetch)
		}(i)
	}

	// Give the goroutines a moment to pile onto the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].ExchangeRate.Equal(decimal.RequireFromString("0.92")))
	}
}

func TestRateCache_StartSchedulesFlush(t *testing.T) {
	c, err := cache.NewRateCache(10, 24*time.Hour, nil, nil)
	require.NoError(t, err)

	require.NoError(t, c.Start())
	c.Stop()
}
