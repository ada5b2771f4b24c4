package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters. Construct once per process (or per
// test registry) and share.
type Metrics struct {
	RateCacheHits   prometheus.Counter
	RateCacheMisses prometheus.Counter

	UpstreamCallsTotal *prometheus.CounterVec

	ConversionsPersisted prometheus.Counter
	BulkRowsSkipped      prometheus.Counter
	BulkBatchesAborted   prometheus.Counter
}

// NewMetrics registers the service counters on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_cache_hits_total",
			Help: "Total number of rate cache hits",
		}),
		RateCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_cache_misses_total",
			Help: "Total number of rate cache misses (including expired entries)",
		}),
		UpstreamCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Total number of upstream quote provider calls",
		}, []string{"operation"}),
		ConversionsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "conversions_persisted_total",
			Help: "Total number of conversion records persisted",
		}),
		BulkRowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulk_rows_skipped_total",
			Help: "Total number of bulk rows skipped due to unusable upstream responses",
		}),
		BulkBatchesAborted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bulk_batches_aborted_total",
			Help: "Total number of bulk batches aborted and rolled back by row validation failures",
		}),
	}
}
