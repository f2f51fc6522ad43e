package metrics

import (
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/enrich"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fillTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fill_cache",
		Name:      "runs_total",
		Help:      "Count of cache fill runs.",
	}, []string{"status"})

	fillDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "fill_cache",
		Name:      "run_duration_seconds",
		Help:      "Duration of a cache fill run.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"status"})

	fillItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fill_cache",
		Name:      "items_total",
		Help:      "Count of transactions handled by cache fills, by outcome.",
	}, []string{"outcome"})
)

// FillCache tracks metrics for the enrichment pipeline.
type FillCache struct{}

// NewFillCache constructs a FillCache.
func NewFillCache() *FillCache {
	return &FillCache{}
}

// ObserveFill records a fill run and the counts it reported.
func (m FillCache) ObserveFill(err error, result enrich.Result, started time.Time) {
	s := status(err)
	fillTotal.WithLabelValues(s).Inc()
	fillDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())

	for outcome, n := range map[string]int{
		"skipped": result.Skipped,
		"fetched": result.Fetched,
		"failed":  result.Failed,
		"ignored": result.Ignored,
		"parents": result.Parents,
		"orphans": result.Orphans,
		"counted": result.Counted,
	} {
		if n > 0 {
			fillItems.WithLabelValues(outcome).Add(float64(n))
		}
	}
}
