package blockwatch

import (
	"context"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

// backfillTags fetches tags for every transaction in blocks that has none
// and stores them in place. A transaction whose fetch keeps failing is stored
// as nil and retried next cycle. Only cancellation fails the backfill.
func (w *Watcher) backfillTags(ctx context.Context, blocks []model.WatchedBlock) (int, error) {
	owners := make(map[string]int)
	missing := make([]string, 0)
	for i, b := range blocks {
		for _, id := range b.MissingTags() {
			if _, dup := owners[id]; dup {
				continue
			}
			owners[id] = i
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	started := time.Now()
	fetched, failed := 0, 0
	for start := 0; start < len(missing); start += w.cfg.TagBatchSize {
		if start > 0 {
			delay := w.jitter(w.cfg.PollMin/tagBatchDelayFraction, w.cfg.PollMax/tagBatchDelayFraction)
			if err := w.sleep(ctx, delay); err != nil {
				return fetched, err
			}
		}
		end := start + w.cfg.TagBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		results := workerpool.Map(ctx, w.cfg.TagWorkers, batch, w.fetchTags)
		if err := ctx.Err(); err != nil {
			return fetched, err
		}
		for i, r := range results {
			id := batch[i]
			block := blocks[owners[id]]
			if r.Err != nil {
				failed++
				block.Tags[id] = nil
				w.logger.Debug("tags not fetched", zap.String("tx_id", id), zap.Error(r.Err))
				continue
			}
			fetched++
			block.Tags[id] = r.Value
		}
	}

	w.metrics.ObserveTagFetch(fetched, failed, started)
	if failed > 0 {
		w.logger.Warn("some transaction tags could not be fetched", zap.Int("failed", failed), zap.Int("fetched", fetched))
	}
	return fetched, nil
}

func (w *Watcher) fetchTags(ctx context.Context, id string) (map[string]string, error) {
	var lastErr error
	for try := 1; try <= w.cfg.TagRetries; try++ {
		w.limiter.Take()
		tags, err := w.source.Tags(ctx, id)
		if err == nil {
			if tags == nil {
				tags = map[string]string{}
			}
			return tags, nil
		}
		lastErr = err
		if try == w.cfg.TagRetries {
			break
		}
		if err := w.sleep(ctx, w.cfg.TagRetryBase*time.Duration(try*try)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}
