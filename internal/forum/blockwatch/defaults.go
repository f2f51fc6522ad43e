package blockwatch

import "time"

const (
	defaultBlocksToSync = 7

	defaultPollMin = 1 * time.Minute
	defaultPollMax = 3 * time.Minute

	defaultBackoffBase = 2 * time.Second
	defaultBackoffCap  = 5 * time.Minute

	defaultTagBatchSize   = 20
	defaultTagWorkers     = 5
	defaultTagRPS         = 20
	defaultTagRetries     = 4
	defaultTagRetryBase   = 150 * time.Millisecond
	tagBatchDelayFraction = 120
)
