package metrics

import (
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	watcherSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "sync_total",
		Help:      "Count of block sync cycles.",
	}, []string{"status"})

	watcherSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "sync_duration_seconds",
		Help:      "Duration of a block sync cycle.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	watcherSyncedBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "synced_blocks_total",
		Help:      "Count of new blocks added to the window.",
	})

	watcherEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "chain_events_total",
		Help:      "Count of reorganizations and missed block gaps.",
	}, []string{"event"})

	watcherWindowSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "window_blocks",
		Help:      "Number of blocks held in the sync window.",
	})

	watcherTagsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "tag_fetches_total",
		Help:      "Count of transaction tag fetches.",
	}, []string{"status"})

	watcherTagDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_watcher",
		Name:      "tag_backfill_duration_seconds",
		Help:      "Duration of backfilling tags for a sync cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)

// BlockWatcher tracks metrics for the block watcher.
type BlockWatcher struct{}

// NewBlockWatcher constructs a BlockWatcher.
func NewBlockWatcher() *BlockWatcher {
	return &BlockWatcher{}
}

// ObserveSync records a sync cycle outcome and the resulting window.
func (m BlockWatcher) ObserveSync(err error, result model.SyncResult, started time.Time) {
	s := status(err)
	watcherSyncTotal.WithLabelValues(s).Inc()
	watcherSyncDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	watcherSyncedBlocks.Add(float64(result.Synced))
	watcherWindowSize.Set(float64(len(result.List)))
	if result.Reorg {
		watcherEvents.WithLabelValues("reorg").Inc()
	}
	if result.Missed {
		watcherEvents.WithLabelValues("missed").Inc()
	}
}

// ObserveTagFetch records one tag backfill pass.
func (m BlockWatcher) ObserveTagFetch(fetched, failed int, started time.Time) {
	watcherTagsTotal.WithLabelValues("success").Add(float64(fetched))
	watcherTagsTotal.WithLabelValues("error").Add(float64(failed))
	watcherTagDuration.Observe(time.Since(started).Seconds())
}
