package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger_client",
		Name:      "operations_total",
		Help:      "Count of gateway HTTP operations.",
	}, []string{"operation", "status"})
	ledgerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of gateway HTTP operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// LedgerClient tracks metrics for calls to the gateway.
type LedgerClient struct{}

// NewLedgerClient constructs a metrics collector for gateway calls.
func NewLedgerClient() *LedgerClient {
	return &LedgerClient{}
}

// Observe records a single gateway call outcome and duration.
func (m LedgerClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	ledgerRequestsTotal.WithLabelValues(operation, s).Inc()
	ledgerRequestDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
