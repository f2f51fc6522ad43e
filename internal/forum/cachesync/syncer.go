// Package cachesync feeds forum items seen in synced blocks into the cache.
package cachesync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/enrich"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"go.uber.org/zap"
)

// Syncer receives sync results and queues the items of cached forums for
// enrichment. Every block of the window is scanned each time, since tags
// that failed to load earlier may be present in a later result.
//
// Posts rolled back to pending by a reorganization are remembered until
// their transaction shows up in a block of the window again, at which point
// they are confirmed.
type Syncer struct {
	logger  *zap.Logger
	cache   Cache
	queue   Queue
	metrics Metrics
	version string

	mu         sync.Mutex
	rolledBack map[string]struct{}
}

// NewSyncer builds a Syncer accepting items of the given schema version.
func NewSyncer(target Cache, queue Queue, metrics Metrics, version string, logger *zap.Logger) (*Syncer, error) {
	if target == nil {
		return nil, errors.New("cache sync cache is required")
	}
	if queue == nil {
		return nil, errors.New("cache sync queue is required")
	}
	if metrics == nil {
		return nil, errors.New("cache sync metrics is required")
	}
	if version == "" {
		version = schema.DefaultVersion
	}
	return &Syncer{
		logger:     logger.Named("cacheSync"),
		cache:      target,
		queue:      queue,
		metrics:    metrics,
		version:    version,
		rolledBack: make(map[string]struct{}),
	}, nil
}

// Notify implements the watcher subscription.
func (s *Syncer) Notify(ctx context.Context, result model.SyncResult) (err error) {
	queued, rolledBack := 0, 0
	defer func() {
		s.metrics.ObserveNotify(err, queued, rolledBack)
	}()

	if result.Missed {
		s.logger.Warn("blocks were missed, cached history may be stale", zap.Int("synced", result.Synced))
	}
	if result.Reorg && len(result.Discarded) > 0 {
		ids := discardedTxIDs(result.Discarded)
		changed := s.cache.RollbackConfirmed(ids)
		rolledBack = len(changed)
		s.remember(changed)
		s.logger.Info("reorganization discarded blocks",
			zap.Int("blocks", len(result.Discarded)),
			zap.Int("txs", len(ids)),
			zap.Int("rolled_back", rolledBack),
		)
	}
	if n := s.reconfirm(result.List); n > 0 {
		s.logger.Info("rolled back posts mined again", zap.Int("confirmed", n))
	}

	ids := s.Interesting(result)
	if len(ids) == 0 {
		return nil
	}
	if err := s.queue.AddAll(ctx, ids); err != nil {
		return fmt.Errorf("queue interesting txs: %w", err)
	}
	queued = len(ids)
	s.logger.Debug("queued interesting txs", zap.Int("count", queued))
	return nil
}

func (s *Syncer) remember(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.rolledBack[id] = struct{}{}
	}
}

// reconfirm confirms rolled back posts whose transaction is in one of blocks.
func (s *Syncer) reconfirm(blocks []model.WatchedBlock) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rolledBack) == 0 {
		return 0
	}
	confirmed := 0
	for _, b := range blocks {
		for _, id := range b.Block.TxIDs {
			if _, ok := s.rolledBack[id]; !ok {
				continue
			}
			delete(s.rolledBack, id)
			if s.cache.ConfirmPendingItem(id) {
				confirmed++
			}
		}
	}
	return confirmed
}

// RolledBack returns the sorted ids still waiting to be mined again.
func (s *Syncer) RolledBack() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.rolledBack))
	for id := range s.rolledBack {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Interesting returns the sorted ids of posts, edits and votes in the
// window whose category is already cached.
func (s *Syncer) Interesting(result model.SyncResult) []string {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, block := range result.List {
		for id, tags := range block.Tags {
			if _, dup := seen[id]; dup || !schema.IsForumItem(tags, s.version) {
				continue
			}
			seen[id] = struct{}{}
			segments, err := schema.SegmentsFromTags(tags)
			if err != nil {
				s.logger.Debug("ignoring item without a valid path", zap.String("tx_id", id), zap.Error(err))
				continue
			}
			if !s.cache.HasForum(segments) {
				s.logger.Debug("ignoring item from uncached path", zap.String("tx_id", id), zap.String("path", schema.EncodePath(segments)))
				continue
			}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Filler is what the flush step hands queued ids to.
type Filler interface {
	FillCache(ctx context.Context, ids []string) (enrich.Result, error)
}

// Flush adapts a Filler to the batcher callback signature.
func Flush(filler Filler) func(context.Context, []string) error {
	return func(ctx context.Context, ids []string) error {
		_, err := filler.FillCache(ctx, ids)
		return err
	}
}

func discardedTxIDs(blocks []model.WatchedBlock) []string {
	ids := make([]string, 0)
	for _, b := range blocks {
		ids = append(ids, b.Block.TxIDs...)
	}
	return ids
}
