package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pendingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pending_tracker",
		Name:      "transitions_total",
		Help:      "Count of tracked item state changes, by new state.",
	}, []string{"state"})

	pendingItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "pending_tracker",
		Name:      "pending_items",
		Help:      "Number of submitted items waiting for confirmation.",
	})
)

// PendingTracker tracks metrics for locally submitted items.
type PendingTracker struct{}

// NewPendingTracker constructs a PendingTracker.
func NewPendingTracker() *PendingTracker {
	return &PendingTracker{}
}

// ObserveTransition records an item entering state.
func (m PendingTracker) ObserveTransition(state string) {
	pendingTransitions.WithLabelValues(state).Inc()
}

// SetPending records the number of items still pending.
func (m PendingTracker) SetPending(count int) {
	pendingItems.Set(float64(count))
}
