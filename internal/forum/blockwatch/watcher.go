package blockwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/clock"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/pkg/broadcast"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Config tunes the watcher. Zero values take the defaults.
type Config struct {
	BlocksToSync int
	PollMin      time.Duration
	PollMax      time.Duration
	BackoffBase  time.Duration
	BackoffCap   time.Duration
	TagBatchSize int
	TagWorkers   int
	TagRPS       int
	TagRetries   int
	TagRetryBase time.Duration
}

func (c Config) withDefaults() Config {
	if c.BlocksToSync <= 0 {
		c.BlocksToSync = defaultBlocksToSync
	}
	if c.PollMin <= 0 {
		c.PollMin = defaultPollMin
	}
	if c.PollMax < c.PollMin {
		c.PollMax = defaultPollMax
		if c.PollMax < c.PollMin {
			c.PollMax = c.PollMin
		}
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = defaultBackoffCap
	}
	if c.TagBatchSize <= 0 {
		c.TagBatchSize = defaultTagBatchSize
	}
	if c.TagWorkers <= 0 {
		c.TagWorkers = defaultTagWorkers
	}
	if c.TagRPS <= 0 {
		c.TagRPS = defaultTagRPS
	}
	if c.TagRetries <= 0 {
		c.TagRetries = defaultTagRetries
	}
	if c.TagRetryBase <= 0 {
		c.TagRetryBase = defaultTagRetryBase
	}
	return c
}

// Subscriber receives every broadcast sync result.
type Subscriber = broadcast.Subscriber[model.SyncResult]

// Watcher polls the chain head and broadcasts the held block window.
type Watcher struct {
	logger  *zap.Logger
	source  Source
	metrics Metrics
	cfg     Config
	sleep   func(context.Context, time.Duration) error
	jitter  func(min, max time.Duration) time.Duration
	limiter ratelimit.Limiter
	hub     *broadcast.Hub[model.SyncResult]

	mu        sync.Mutex
	blocks    []model.WatchedBlock
	failures  int
	published bool
}

// NewWatcher builds a watcher over source.
func NewWatcher(source Source, metrics Metrics, cfg Config, logger *zap.Logger) (*Watcher, error) {
	if source == nil {
		return nil, errors.New("block watcher source is required")
	}
	if metrics == nil {
		return nil, errors.New("block watcher metrics is required")
	}
	cfg = cfg.withDefaults()
	logger = logger.Named("blockWatcher")
	return &Watcher{
		logger:  logger,
		source:  source,
		metrics: metrics,
		cfg:     cfg,
		sleep:   clock.SleepWithContext,
		jitter:  clock.RandomBetween,
		limiter: ratelimit.New(cfg.TagRPS),
		hub:     broadcast.New[model.SyncResult](logger.Named("subscribers"), model.SyncResult.Clone),
	}, nil
}

// Run syncs until ctx is canceled, waiting a random poll interval between
// cycles and backing off quadratically after failures.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("block watcher started",
		zap.Int("blocks_to_sync", w.cfg.BlocksToSync),
		zap.Duration("poll_min", w.cfg.PollMin),
		zap.Duration("poll_max", w.cfg.PollMax),
	)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := w.Sync(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.failures++
			d := clock.Backoff(w.cfg.BackoffBase, w.cfg.BackoffCap, w.failures)
			w.logger.Warn("run iteration failed, backing off",
				zap.Error(err),
				zap.Int("failures", w.failures),
				zap.Duration("sleep", d),
			)
			if sleepErr := w.sleep(ctx, d); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		w.failures = 0
		if err := w.sleep(ctx, w.jitter(w.cfg.PollMin, w.cfg.PollMax)); err != nil {
			return err
		}
	}
}

// Sync runs one cycle: fetch the head, extend the window, backfill tags and
// broadcast when anything changed. On error the held window is left as it was.
func (w *Watcher) Sync(ctx context.Context) (result model.SyncResult, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	started := time.Now()
	defer func() {
		w.metrics.ObserveSync(err, result, started)
	}()

	tip, err := w.source.CurrentTip(ctx)
	if err != nil {
		return model.SyncResult{}, err
	}
	w.logger.Debug("checking chain head", zap.String("tip", tip))

	result, err = SyncFromHash(ctx, w.source, tip, w.cfg.BlocksToSync, w.blocks)
	if err != nil {
		return model.SyncResult{}, err
	}
	// Tag maps already held are reused, so fill a copy to keep a failed
	// cycle from leaking into the window.
	result.List = cloneWindow(result.List)
	filled, err := w.backfillTags(ctx, result.List)
	if err != nil {
		return model.SyncResult{}, err
	}
	w.blocks = result.List

	if result.Missed {
		w.logger.Warn("blocks were missed, earlier history is stale", zap.Int("window", len(result.List)))
	}
	if result.Reorg {
		w.logger.Warn("chain reorganization", zap.Int("discarded", len(result.Discarded)))
	}
	if result.Synced > 0 || result.Reorg || filled > 0 || !w.published {
		w.logger.Info("synced blocks",
			zap.Int("synced", result.Synced),
			zap.Int("tags_filled", filled),
			zap.Int("window", len(result.List)),
		)
		w.published = true
		w.hub.Publish(ctx, result)
	}
	return result, nil
}

// Blocks returns a copy of the held window.
func (w *Watcher) Blocks() []model.WatchedBlock {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneWindow(w.blocks)
}

// LastResult returns the last broadcast result.
func (w *Watcher) LastResult() (model.SyncResult, bool) {
	return w.hub.Last()
}

// Subscribe registers sub for future results. If a result was already
// broadcast sub also receives it once, on its own goroutine.
func (w *Watcher) Subscribe(ctx context.Context, sub Subscriber) (int, error) {
	return w.hub.Subscribe(ctx, sub)
}

// Unsubscribe removes a subscriber by id.
func (w *Watcher) Unsubscribe(id int) bool {
	return w.hub.Unsubscribe(id)
}

// UnsubscribeHandler removes a subscriber by identity.
func (w *Watcher) UnsubscribeHandler(sub Subscriber) bool {
	return w.hub.UnsubscribeHandler(sub)
}

func cloneWindow(blocks []model.WatchedBlock) []model.WatchedBlock {
	out := make([]model.WatchedBlock, len(blocks))
	for i := range blocks {
		out[i] = blocks[i].Clone()
	}
	return out
}
