// Package enrich loads full transactions for forum items and feeds them to the cache.
package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/arweave"
	"github.com/goodnatureofminers/decentforum-indexer/internal/clock"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/cache"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"github.com/goodnatureofminers/decentforum-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

// Config tunes fetching. Zero values take the defaults.
type Config struct {
	// Version is the DFV tag value items must carry.
	Version      string
	BatchSize    int
	Workers      int
	Retries      int
	RetryBase    time.Duration
	OrphanRounds int
}

func (c Config) withDefaults() Config {
	if c.Version == "" {
		c.Version = schema.DefaultVersion
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.Retries <= 0 {
		c.Retries = defaultRetries
	}
	if c.RetryBase <= 0 {
		c.RetryBase = defaultRetryBase
	}
	if c.OrphanRounds < 0 {
		c.OrphanRounds = 0
	} else if c.OrphanRounds == 0 {
		c.OrphanRounds = defaultOrphanRounds
	}
	return c
}

// Result summarizes one FillCache call.
type Result struct {
	Requested int
	Skipped   int
	Fetched   int
	Failed    int
	Ignored   int
	Posts     int
	Votes     int
	Counted   int
	Parents   int
	Orphans   int
}

// Filler turns transaction ids into cache entries.
type Filler struct {
	logger  *zap.Logger
	source  Source
	cache   Cache
	metrics Metrics
	cfg     Config
	sleep   func(context.Context, time.Duration) error
}

// NewFiller builds a Filler.
func NewFiller(source Source, target Cache, metrics Metrics, cfg Config, logger *zap.Logger) (*Filler, error) {
	if source == nil {
		return nil, errors.New("fill cache source is required")
	}
	if target == nil {
		return nil, errors.New("fill cache target cache is required")
	}
	if metrics == nil {
		return nil, errors.New("fill cache metrics is required")
	}
	return &Filler{
		logger:  logger.Named("fillCache"),
		source:  source,
		cache:   target,
		metrics: metrics,
		cfg:     cfg.withDefaults(),
		sleep:   clock.SleepWithContext,
	}, nil
}

// FillCache fetches the transactions behind ids that the cache does not hold
// yet, adds posts and edits, chases missing parents for a few rounds and
// finally adds votes. Transactions that cannot be fetched are skipped; only
// cancellation is returned as an error.
func (f *Filler) FillCache(ctx context.Context, ids []string) (result Result, err error) {
	started := time.Now()
	defer func() {
		f.metrics.ObserveFill(err, result, started)
	}()

	wanted := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result.Requested++
		if f.cache.IsFullTxPresent(id) || f.cache.IsVoteCounted(id) {
			result.Skipped++
			continue
		}
		wanted = append(wanted, id)
	}
	if result.Skipped > 0 {
		f.logger.Info("skipping transactions already in the cache", zap.Int("skipped", result.Skipped))
	}
	if len(wanted) == 0 {
		return result, nil
	}

	infos, err := f.fetch(ctx, wanted, &result)
	if err != nil {
		return result, err
	}
	posts, votes := f.classify(infos, &result)
	result.Posts = len(posts)
	result.Votes = len(votes)

	orphans := cache.Orphans{}
	if len(posts) > 0 {
		orphans = f.cache.AddPosts(posts)
	}
	tried := make(map[string]struct{})
	for round := 0; round < f.cfg.OrphanRounds && orphans.Len() > 0; round++ {
		parentIDs := make([]string, 0)
		for _, id := range orphans.MissingParents() {
			if _, ok := tried[id]; ok {
				continue
			}
			tried[id] = struct{}{}
			parentIDs = append(parentIDs, id)
		}
		if len(parentIDs) == 0 {
			break
		}
		f.logger.Debug("fetching missing parents", zap.Int("round", round+1), zap.Int("parents", len(parentIDs)))

		parentInfos, err := f.fetch(ctx, parentIDs, &result)
		if err != nil {
			return result, err
		}
		parents, _ := f.classify(parentInfos, &result)
		result.Parents += len(parents)

		retry := orphans.Items()
		for id, item := range parents {
			retry[id] = item
		}
		orphans = f.cache.AddPosts(retry)
	}
	result.Orphans = orphans.Len()

	if len(votes) > 0 {
		result.Counted = f.cache.AddVotes(votes)
	}

	f.logger.Info("filled cache",
		zap.Int("fetched", result.Fetched),
		zap.Int("failed", result.Failed),
		zap.Int("posts", result.Posts),
		zap.Int("votes", result.Votes),
		zap.Int("counted", result.Counted),
		zap.Int("orphans", result.Orphans),
	)
	return result, nil
}

// fetch loads ids in batches and converts them. Failures are counted and dropped.
func (f *Filler) fetch(ctx context.Context, ids []string, result *Result) ([]model.TransactionInfo, error) {
	out := make([]model.TransactionInfo, 0, len(ids))
	for start := 0; start < len(ids); start += f.cfg.BatchSize {
		end := start + f.cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]
		results := workerpool.Map(ctx, f.cfg.Workers, batch, f.fetchTransaction)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, r := range results {
			if r.Err != nil {
				result.Failed++
				f.logger.Debug("transaction not fetched", zap.String("tx_id", batch[i]), zap.Error(r.Err))
				continue
			}
			info, err := toInfo(r.Value)
			if err != nil {
				result.Failed++
				f.logger.Warn("transaction not decoded", zap.String("tx_id", batch[i]), zap.Error(err))
				continue
			}
			if info.ID == "" {
				info.ID = batch[i]
			}
			result.Fetched++
			out = append(out, info)
		}
	}
	return out, nil
}

func (f *Filler) fetchTransaction(ctx context.Context, id string) (model.Transaction, error) {
	var lastErr error
	for try := 1; try <= f.cfg.Retries; try++ {
		tx, err := f.source.Transaction(ctx, id)
		if err == nil {
			return tx, nil
		}
		lastErr = err
		if errors.Is(err, arweave.ErrNotFound) || errors.Is(err, arweave.ErrMalformed) || try == f.cfg.Retries {
			break
		}
		if err := f.sleep(ctx, f.cfg.RetryBase*time.Duration(try*try*try)); err != nil {
			return model.Transaction{}, err
		}
	}
	return model.Transaction{}, lastErr
}

func (f *Filler) classify(infos []model.TransactionInfo, result *Result) (posts, votes map[string]model.TransactionInfo) {
	posts = make(map[string]model.TransactionInfo)
	votes = make(map[string]model.TransactionInfo)
	for _, info := range infos {
		if info.Tags[schema.TagVersion] != f.cfg.Version {
			result.Ignored++
			continue
		}
		switch schema.TxTypeOf(info.Tags) {
		case schema.TxTypePost, schema.TxTypePostEdit:
			posts[info.ID] = info
		case schema.TxTypeVote:
			votes[info.ID] = info
		default:
			result.Ignored++
		}
	}
	return posts, votes
}

func toInfo(tx model.Transaction) (model.TransactionInfo, error) {
	owner, err := arweave.OwnerToAddress(tx.Owner)
	if err != nil {
		return model.TransactionInfo{}, err
	}
	content := string(tx.Data)
	return model.TransactionInfo{
		ID:           tx.ID,
		Tags:         schema.UpgradeLegacy(tx.TagMap()),
		OwnerAddress: owner,
		Target:       tx.Target,
		Quantity:     tx.Quantity,
		Reward:       tx.Reward,
		Content:      &content,
	}, nil
}
