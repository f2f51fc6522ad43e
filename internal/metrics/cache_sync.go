package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache_sync",
		Name:      "notifications_total",
		Help:      "Count of sync results handled.",
	}, []string{"status"})

	cacheSyncQueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache_sync",
		Name:      "queued_total",
		Help:      "Count of transaction ids queued for enrichment.",
	})

	cacheSyncRolledBack = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache_sync",
		Name:      "rolled_back_total",
		Help:      "Count of confirmed items returned to pending by reorganizations.",
	})
)

// CacheSync tracks metrics for the sync to cache glue.
type CacheSync struct{}

// NewCacheSync constructs a CacheSync.
func NewCacheSync() *CacheSync {
	return &CacheSync{}
}

// ObserveNotify records a handled sync result.
func (m CacheSync) ObserveNotify(err error, queued, rolledBack int) {
	cacheSyncTotal.WithLabelValues(status(err)).Inc()
	cacheSyncQueued.Add(float64(queued))
	cacheSyncRolledBack.Add(float64(rolledBack))
}
