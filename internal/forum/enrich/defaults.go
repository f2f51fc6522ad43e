package enrich

import "time"

const (
	defaultBatchSize    = 20
	defaultWorkers      = 5
	defaultRetries      = 4
	defaultRetryBase    = 800 * time.Millisecond
	defaultOrphanRounds = 3
)
