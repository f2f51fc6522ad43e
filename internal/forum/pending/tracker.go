// Package pending tracks locally submitted forum items until the chain
// confirms them.
package pending

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/decentforum-indexer/internal/arweave"
	"github.com/goodnatureofminers/decentforum-indexer/internal/clock"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/model"
	"github.com/goodnatureofminers/decentforum-indexer/internal/forum/schema"
	"github.com/goodnatureofminers/decentforum-indexer/pkg/broadcast"
	"go.uber.org/zap"
)

var (
	// ErrWrongType is returned when an item does not match the add method used.
	ErrWrongType = errors.New("item has the wrong transaction type")
	// ErrNotAdded is returned when the cache would not take the item.
	ErrNotAdded = errors.New("item was not added to the cache")
)

const (
	defaultPollMin = time.Minute
	defaultPollMax = 2 * time.Minute
)

// State is the lifecycle position of a tracked item.
type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateFailed    State = "failed"
)

// Event reports a state change of a tracked item.
type Event struct {
	ID    string
	State State
	// BlockHash is the confirming block, empty unless State is StateConfirmed.
	BlockHash string
	At        time.Time
}

// Config tunes the tracker.
type Config struct {
	// FailAfter moves items still pending after this long to StateFailed.
	// Zero keeps them pending forever.
	FailAfter time.Duration
	PollMin   time.Duration
	PollMax   time.Duration
}

type entry struct {
	submitted time.Time
	notFound  int
}

// Tracker shadows submitted items into the cache and reconciles them
// against synced blocks and the node's status endpoint.
type Tracker struct {
	logger  *zap.Logger
	cache   Cache
	status  StatusSource
	metrics Metrics
	cfg     Config
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
	jitter  func(min, max time.Duration) time.Duration
	hub     *broadcast.Hub[Event]

	mu        sync.Mutex
	pending   map[string]*entry
	confirmed map[string]string
}

// NewTracker builds a Tracker.
func NewTracker(target Cache, status StatusSource, metrics Metrics, cfg Config, logger *zap.Logger) (*Tracker, error) {
	if target == nil {
		return nil, errors.New("pending tracker cache is required")
	}
	if status == nil {
		return nil, errors.New("pending tracker status source is required")
	}
	if metrics == nil {
		return nil, errors.New("pending tracker metrics is required")
	}
	if cfg.PollMin <= 0 {
		cfg.PollMin = defaultPollMin
	}
	if cfg.PollMax < cfg.PollMin {
		cfg.PollMax = cfg.PollMin
	}
	logger = logger.Named("pendingTracker")
	return &Tracker{
		logger:    logger,
		cache:     target,
		status:    status,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
		sleep:     clock.SleepWithContext,
		jitter:    clock.RandomBetween,
		hub:       broadcast.New[Event](logger, nil),
		pending:   make(map[string]*entry),
		confirmed: make(map[string]string),
	}, nil
}

// AddPost adds a new thread or reply to the cache as pending.
func (t *Tracker) AddPost(ctx context.Context, item model.TransactionInfo) error {
	return t.addPost(ctx, schema.TxTypePost, item)
}

// AddEdit adds a new revision to the cache as pending.
func (t *Tracker) AddEdit(ctx context.Context, item model.TransactionInfo) error {
	return t.addPost(ctx, schema.TxTypePostEdit, item)
}

func (t *Tracker) addPost(ctx context.Context, want schema.TxType, item model.TransactionInfo) error {
	if got := schema.TxTypeOf(item.Tags); got != want {
		return fmt.Errorf("%w: %q, want %q", ErrWrongType, got, want)
	}
	item.IsPendingTx = true
	if orphans := t.cache.AddPosts(map[string]model.TransactionInfo{item.ID: item}); orphans.Len() > 0 {
		return fmt.Errorf("%w: %s waits on %v", ErrNotAdded, item.ID, orphans.MissingParents())
	}
	t.register(ctx, item.ID)
	return nil
}

// AddVote counts a new vote as pending.
func (t *Tracker) AddVote(ctx context.Context, item model.TransactionInfo) error {
	if got := schema.TxTypeOf(item.Tags); got != schema.TxTypeVote {
		return fmt.Errorf("%w: %q, want %q", ErrWrongType, got, schema.TxTypeVote)
	}
	item.IsPendingTx = true
	if t.cache.AddVotes(map[string]model.TransactionInfo{item.ID: item}) == 0 {
		return fmt.Errorf("%w: vote %s not counted", ErrNotAdded, item.ID)
	}
	t.register(ctx, item.ID)
	return nil
}

func (t *Tracker) register(ctx context.Context, id string) {
	now := t.now()
	t.mu.Lock()
	t.pending[id] = &entry{submitted: now}
	count := len(t.pending)
	t.mu.Unlock()

	t.metrics.SetPending(count)
	t.logger.Info("tracking pending item", zap.String("tx_id", id))
	t.publish(ctx, []Event{{ID: id, State: StatePending, At: now}})
}

// Pending returns the ids still waiting for confirmation, sorted.
func (t *Tracker) Pending() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.pending))
	for id := range t.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsPending reports whether id is tracked and not yet confirmed.
func (t *Tracker) IsPending(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[id]
	return ok
}

// Subscribe registers sub for state change events.
func (t *Tracker) Subscribe(ctx context.Context, sub broadcast.Subscriber[Event]) (int, error) {
	return t.hub.Subscribe(ctx, sub)
}

// Unsubscribe removes the subscription with the given id.
func (t *Tracker) Unsubscribe(id int) bool {
	return t.hub.Unsubscribe(id)
}

// Notify implements the watcher subscription. Items confirmed by discarded
// blocks return to pending first, then pending items found in newly synced
// blocks are confirmed, then stale items fail.
func (t *Tracker) Notify(ctx context.Context, result model.SyncResult) error {
	now := t.now()
	t.mu.Lock()
	events := make([]Event, 0)
	if result.Reorg {
		events = append(events, t.rollbackLocked(result.Discarded, now)...)
	}
	for _, b := range result.NewBlocks() {
		for _, id := range b.Block.TxIDs {
			if ev, ok := t.confirmLocked(id, b.Hash, now); ok {
				events = append(events, ev)
			}
		}
	}
	t.pruneLocked(result.List)
	events = append(events, t.expireLocked(now)...)
	count := len(t.pending)
	t.mu.Unlock()

	t.metrics.SetPending(count)
	t.publish(ctx, events)
	return nil
}

// Run polls the status of pending items until ctx is canceled. It covers
// items mined in blocks the watcher never held.
func (t *Tracker) Run(ctx context.Context) error {
	for {
		if err := t.sleep(ctx, t.jitter(t.cfg.PollMin, t.cfg.PollMax)); err != nil {
			return err
		}
		if err := t.CheckStatus(ctx); err != nil {
			return err
		}
	}
}

// CheckStatus asks the node about every pending item. A not found answer is
// expected while a transaction propagates and only counts against the item.
func (t *Tracker) CheckStatus(ctx context.Context) error {
	ids := t.Pending()
	mined := make(map[string]string)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		st, err := t.status.Status(ctx, id)
		switch {
		case err == nil:
			mined[id] = st.BlockHash
		case errors.Is(err, arweave.ErrNotFound):
			t.mu.Lock()
			if e, ok := t.pending[id]; ok {
				e.notFound++
				t.logger.Debug("pending item not found yet", zap.String("tx_id", id), zap.Int("count", e.notFound))
			}
			t.mu.Unlock()
		case errors.Is(err, arweave.ErrPending):
			// accepted, not mined yet
		default:
			t.logger.Debug("pending item status not fetched", zap.String("tx_id", id), zap.Error(err))
		}
	}

	now := t.now()
	t.mu.Lock()
	events := make([]Event, 0, len(mined))
	for _, id := range ids {
		hash, ok := mined[id]
		if !ok {
			continue
		}
		if ev, ok := t.confirmLocked(id, hash, now); ok {
			events = append(events, ev)
		}
	}
	events = append(events, t.expireLocked(now)...)
	count := len(t.pending)
	t.mu.Unlock()

	t.metrics.SetPending(count)
	t.publish(ctx, events)
	return nil
}

func (t *Tracker) confirmLocked(id, blockHash string, now time.Time) (Event, bool) {
	if _, ok := t.pending[id]; !ok {
		return Event{}, false
	}
	delete(t.pending, id)
	t.confirmed[id] = blockHash
	t.cache.ConfirmPendingItem(id)
	t.metrics.ObserveTransition(string(StateConfirmed))
	t.logger.Info("pending item confirmed", zap.String("tx_id", id), zap.String("block", blockHash))
	return Event{ID: id, State: StateConfirmed, BlockHash: blockHash, At: now}, true
}

func (t *Tracker) rollbackLocked(discarded []model.WatchedBlock, now time.Time) []Event {
	gone := make(map[string]struct{}, len(discarded))
	for _, b := range discarded {
		gone[b.Hash] = struct{}{}
	}
	ids := make([]string, 0)
	for id, hash := range t.confirmed {
		if _, ok := gone[hash]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	t.cache.RollbackConfirmed(ids)

	events := make([]Event, 0, len(ids))
	for _, id := range ids {
		delete(t.confirmed, id)
		t.pending[id] = &entry{submitted: now}
		t.metrics.ObserveTransition(string(StatePending))
		events = append(events, Event{ID: id, State: StatePending, At: now})
	}
	t.logger.Warn("confirmed items returned to pending after reorganization", zap.Strings("tx_ids", ids))
	return events
}

// pruneLocked forgets confirmations whose block left the window, since a
// reorganization can no longer discard them.
func (t *Tracker) pruneLocked(window []model.WatchedBlock) {
	if len(window) == 0 {
		return
	}
	held := make(map[string]struct{}, len(window))
	for _, b := range window {
		held[b.Hash] = struct{}{}
	}
	for id, hash := range t.confirmed {
		if _, ok := held[hash]; !ok {
			delete(t.confirmed, id)
		}
	}
}

func (t *Tracker) expireLocked(now time.Time) []Event {
	if t.cfg.FailAfter <= 0 {
		return nil
	}
	ids := make([]string, 0)
	for id, e := range t.pending {
		if now.Sub(e.submitted) >= t.cfg.FailAfter {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	events := make([]Event, 0, len(ids))
	for _, id := range ids {
		delete(t.pending, id)
		t.cache.MarkPendingFailed(id)
		t.metrics.ObserveTransition(string(StateFailed))
		t.logger.Warn("pending item failed", zap.String("tx_id", id), zap.Duration("fail_after", t.cfg.FailAfter))
		events = append(events, Event{ID: id, State: StateFailed, At: now})
	}
	return events
}

func (t *Tracker) publish(ctx context.Context, events []Event) {
	for _, ev := range events {
		t.hub.Publish(ctx, ev)
	}
}
