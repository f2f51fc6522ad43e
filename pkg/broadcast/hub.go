// Package broadcast fans values out to registered subscribers.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrDuplicateSubscriber is returned when the same subscriber is registered twice.
var ErrDuplicateSubscriber = errors.New("subscriber already registered")

// Subscriber receives published values.
type Subscriber[T any] interface {
	Notify(ctx context.Context, v T) error
}

// SubscriberFunc adapts a function to Subscriber. Function values are not
// comparable and their code pointers are shared by every closure of one
// literal, so the hub cannot tell two registrations of a function apart:
// registering the same function twice delivers every value to it twice, and
// UnsubscribeHandler never finds it. Keep the id returned by Subscribe and
// use Unsubscribe, or wrap the function in a pointer type for identity.
type SubscriberFunc[T any] func(ctx context.Context, v T) error

// Notify calls f.
func (f SubscriberFunc[T]) Notify(ctx context.Context, v T) error { return f(ctx, v) }

// subscription serializes deliveries to one subscriber. seen is the sequence
// number of the newest value it was handed.
type subscription[T any] struct {
	sub  Subscriber[T]
	mu   sync.Mutex
	seen uint64
}

// Hub delivers each published value to every subscriber in registration order.
type Hub[T any] struct {
	logger *zap.Logger
	clone  func(T) T
	spawn  func(func())

	mu      sync.Mutex
	nextID  int
	seq     uint64
	subs    map[int]*subscription[T]
	last    T
	hasLast bool
}

// New builds a hub. clone, when set, gives each subscriber its own copy.
func New[T any](logger *zap.Logger, clone func(T) T) *Hub[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Hub[T]{
		logger: logger,
		clone:  clone,
		spawn:  func(f func()) { go f() },
		subs:   make(map[int]*subscription[T]),
	}
}

// Subscribe registers sub and returns its id. When a value was already
// published, sub receives it once on a separate goroutine. The replay is
// dropped if a newer Publish reaches sub first, so sub never sees the last
// value after a later one. Deliveries to one subscriber never overlap, so
// Notify must not publish to the same hub.
func (h *Hub[T]) Subscribe(ctx context.Context, sub Subscriber[T]) (int, error) {
	if sub == nil {
		return 0, errors.New("subscriber is required")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.indexOf(sub) >= 0 {
		return 0, ErrDuplicateSubscriber
	}
	h.nextID++
	id := h.nextID
	s := &subscription[T]{sub: sub}
	h.subs[id] = s
	if h.hasLast {
		last, seq := h.clone(h.last), h.seq
		h.spawn(func() { h.deliver(ctx, id, s, seq, last) })
	}
	return id, nil
}
// Unsubscribe removes the subscriber with id and reports whether it existed.
func (h *Hub[T]) Unsubscribe(id int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[id]; !ok {
		return false
	}
	delete(h.subs, id)
	return true
}

// UnsubscribeHandler removes sub by identity.
func (h *Hub[T]) UnsubscribeHandler(sub Subscriber[T]) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.indexOf(sub)
	if id < 0 {
		return false
	}
	delete(h.subs, id)
	return true
}

// Len returns the number of subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Last returns the most recently published value.
func (h *Hub[T]) Last() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.hasLast {
		var zero T
		return zero, false
	}
	return h.clone(h.last), true
}

// Publish stores v as the last value and delivers it synchronously to every
// subscriber. Subscriber errors and panics are logged and never returned.
// A subscriber that already received a newer value from a concurrent
// Publish skips v.
func (h *Hub[T]) Publish(ctx context.Context, v T) {
	h.mu.Lock()
	h.last = h.clone(v)
	h.hasLast = true
	h.seq++
	seq := h.seq
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]*subscription[T], len(ids))
	for i, id := range ids {
		subs[i] = h.subs[id]
	}
	h.mu.Unlock()

	for i, s := range subs {
		h.deliver(ctx, ids[i], s, seq, h.clone(v))
	}
}

func (h *Hub[T]) deliver(ctx context.Context, id int, s *subscription[T], seq uint64, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.seen {
		h.logger.Debug("skipping stale value", zap.Int("subscriber_id", id), zap.Uint64("seq", seq), zap.Uint64("seen", s.seen))
		return
	}
	s.seen = seq
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("subscriber panicked", zap.Int("subscriber_id", id), zap.String("panic", fmt.Sprint(r)))
		}
	}()
	if err := s.sub.Notify(ctx, v); err != nil {
		h.logger.Warn("subscriber failed", zap.Int("subscriber_id", id), zap.Error(err))
	}
}

// indexOf returns the id of sub or -1. Must be called with mu held.
func (h *Hub[T]) indexOf(sub Subscriber[T]) int {
	if !reflect.TypeOf(sub).Comparable() {
		return -1
	}
	for id, s := range h.subs {
		if reflect.TypeOf(s.sub).Comparable() && s.sub == sub {
			return id
		}
	}
	return -1
}
