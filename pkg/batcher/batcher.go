// Package batcher buffers distinct items and flushes them in rate limited batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned when adding to a batcher that was stopped.
var ErrStopped = errors.New("batcher stopped")

const (
	defaultFlushSize     = 100
	defaultFlushInterval = time.Second
	defaultRPS           = 1
)

// Config tunes flushing. Zero values take the defaults.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	// RPS caps flush callbacks per second.
	RPS int
}

func (c Config) withDefaults() Config {
	if c.FlushSize <= 0 {
		c.FlushSize = defaultFlushSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = defaultFlushInterval
	}
	if c.RPS <= 0 {
		c.RPS = defaultRPS
	}
	return c
}

// Batcher buffers items and flushes them either by size or interval. An item
// added again before its batch is flushed is kept once.
type Batcher[T comparable] struct {
	logger   *zap.Logger
	flush    func(context.Context, []T) error
	cfg      Config
	itemsCh  chan T
	rl       ratelimit.Limiter
	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher calling flush with each batch.
func New[T comparable](logger *zap.Logger, flush func(context.Context, []T) error, cfg Config) *Batcher[T] {
	cfg = cfg.withDefaults()
	return &Batcher[T]{
		logger:  logger,
		flush:   flush,
		cfg:     cfg,
		itemsCh: make(chan T, cfg.FlushSize*2),
		rl:      ratelimit.New(cfg.RPS),
		stop:    make(chan struct{}),
	}
}

// Start begins the background flushing loop. Cancelling ctx drops whatever
// is buffered; Stop flushes it.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes queued items and waits for the loop to exit. It is safe to
// call more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// AddAll queues items in order, stopping at the first error.
func (b *Batcher[T]) AddAll(ctx context.Context, items []T) error {
	for _, item := range items {
		if err := b.Add(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// Add queues an item, blocking while the queue is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.itemsCh <- item:
		return nil
	}
}

type buffer[T comparable] struct {
	items  []T
	queued map[T]struct{}
}

func newBuffer[T comparable](size int) *buffer[T] {
	return &buffer[T]{items: make([]T, 0, size), queued: make(map[T]struct{}, size)}
}

func (buf *buffer[T]) add(item T) {
	if _, dup := buf.queued[item]; dup {
		return
	}
	buf.queued[item] = struct{}{}
	buf.items = append(buf.items, item)
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := newBuffer[T](b.cfg.FlushSize)
	flush := func() {
		if len(buf.items) == 0 {
			return
		}
		b.rl.Take()
		if err := b.flush(ctx, buf.items); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf.items)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf.items)))
		}
		buf = newBuffer[T](b.cfg.FlushSize)
	}

	for {
		select {
		case <-ctx.Done():
			if n := len(buf.items) + len(b.itemsCh); n > 0 {
				b.logger.Debug("dropping queued items", zap.Int("count", n))
			}
			return

		case <-b.stop:
			for len(b.itemsCh) > 0 {
				buf.add(<-b.itemsCh)
				if len(buf.items) >= b.cfg.FlushSize {
					flush()
				}
			}
			flush()
			return

		case item := <-b.itemsCh:
			buf.add(item)
			if len(buf.items) >= b.cfg.FlushSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}
