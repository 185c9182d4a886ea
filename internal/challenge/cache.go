package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/fitstake/fitstake-go/internal/logger"
	"github.com/fitstake/fitstake-go/internal/metrics"
)

// fetchFunc produces a fresh copy of a collection from the backend
type fetchFunc[T any] func(ctx context.Context) ([]T, error)

// entry is one cached collection value. Entries are owned exclusively by
// the collection; callers always receive copies.
type entry[T any] struct {
	value     []T
	fetchedAt time.Time
}

type inflightFetch[T any] struct {
	done  chan struct{}
	value []T
	err   error
}

// collection is the per-key cache cell of the sync controller. Lifecycle per
// key: empty, fetching, fresh, stale. A get on an empty cell fetches and
// blocks; concurrent gets attach to the in-flight fetch. A get on a stale
// cell returns the cached value immediately and kicks off one non-blocking
// background refresh (stale-while-revalidate). Mutations invalidate the
// whole cell; a generation counter discards fetches that started before the
// invalidation and the in-flight handle is detached, so pre-mutation data
// can neither be stored nor served to later gets.
type collection[T any] struct {
	key       string
	freshness time.Duration
	fetch     fetchFunc[T]

	// onStore runs after a successful refresh stores a new value, outside
	// the cache lock. Used to publish <key>_updated events.
	onStore func(count int)

	mu         sync.Mutex
	gen        uint64
	cur        *entry[T]
	inflight   *inflightFetch[T]
	refreshing bool
	wg         sync.WaitGroup
}

func newCollection[T any](key string, freshness time.Duration, fetch fetchFunc[T], onStore func(count int)) *collection[T] {
	return &collection[T]{
		key:       key,
		freshness: freshness,
		fetch:     fetch,
		onStore:   onStore,
	}
}

// Get returns the collection, fetching it when the cell is empty and
// serving stale data while a background refresh runs when the freshness
// window has elapsed. The caller is never blocked on a background refresh.
func (c *collection[T]) Get(ctx context.Context) ([]T, error) {
	c.mu.Lock()

	if c.cur != nil {
		value := copySlice(c.cur.value)
		fresh := time.Since(c.cur.fetchedAt) <= c.freshness

		if !fresh && !c.refreshing {
			c.refreshing = true
			gen := c.gen
			c.wg.Add(1)
			go c.refreshInBackground(gen)
		}
		c.mu.Unlock()

		if fresh {
			metrics.CacheHits.WithLabelValues(c.key).Inc()
		} else {
			metrics.CacheStaleServed.WithLabelValues(c.key).Inc()
		}
		return value, nil
	}

	// Empty cell: attach to an in-flight fetch when one exists
	if c.inflight != nil {
		waiting := c.inflight
		c.mu.Unlock()

		metrics.CacheCoalescedGets.WithLabelValues(c.key).Inc()
		select {
		case <-waiting.done:
			if waiting.err != nil {
				return nil, waiting.err
			}
			return copySlice(waiting.value), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	fl := &inflightFetch[T]{done: make(chan struct{})}
	c.inflight = fl
	gen := c.gen
	c.mu.Unlock()

	metrics.CacheMisses.WithLabelValues(c.key).Inc()

	value, err := c.fetch(ctx)
	c.mu.Lock()
	// An invalidation may have detached this fetch and a newer one may
	// already be in flight; only clear our own handle.
	if c.inflight == fl {
		c.inflight = nil
	}
	c.mu.Unlock()
	stored := c.store(gen, value, err)
	fl.value, fl.err = value, err
	close(fl.done)

	if err != nil {
		metrics.CacheRefreshErrors.WithLabelValues(c.key).Inc()
		return nil, err
	}
	metrics.CacheRefreshes.WithLabelValues(c.key).Inc()
	if stored && c.onStore != nil {
		c.onStore(len(value))
	}
	return copySlice(value), nil
}

// Peek returns the current cached value without triggering any fetch.
// Used by read paths that must answer locally at zero network cost.
func (c *collection[T]) Peek() ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return nil, false
	}
	return copySlice(c.cur.value), true
}

// Refresh forces a fetch-and-store regardless of freshness. Used by the
// auto-sync timer and explicit refresh calls.
func (c *collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	value, err := c.fetch(ctx)
	if err != nil {
		metrics.CacheRefreshErrors.WithLabelValues(c.key).Inc()
		return err
	}
	metrics.CacheRefreshes.WithLabelValues(c.key).Inc()
	if c.store(gen, value, nil) && c.onStore != nil {
		c.onStore(len(value))
	}
	return nil
}

// Invalidate drops the cached value and bumps the generation so any fetch
// already in flight cannot store a pre-invalidation result. The in-flight
// handle is detached too: gets arriving after the invalidation start a
// fresh fetch instead of coalescing onto pre-invalidation data. Waiters
// already attached keep the old handle.
func (c *collection[T]) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.cur = nil
	c.inflight = nil
	c.mu.Unlock()
	metrics.CacheInvalidations.WithLabelValues(c.key).Inc()
}

// Wait blocks until in-progress background refreshes finish. Part of
// graceful shutdown.
func (c *collection[T]) Wait() {
	c.wg.Wait()
}

func (c *collection[T]) refreshInBackground(gen uint64) {
	defer c.wg.Done()

	// Detached context: the triggering request must not cancel the refresh
	value, err := c.fetch(context.Background())

	c.mu.Lock()
	c.refreshing = false
	c.mu.Unlock()

	if err != nil {
		metrics.CacheRefreshErrors.WithLabelValues(c.key).Inc()
		logger.Warn(LogMsgBackgroundRefreshFailed, "key", c.key, "error", err)
		return
	}

	metrics.CacheRefreshes.WithLabelValues(c.key).Inc()
	if c.store(gen, value, nil) && c.onStore != nil {
		c.onStore(len(value))
	}
}

// store records a fetch result if no invalidation happened since the fetch
// started. Returns whether the value was stored.
func (c *collection[T]) store(gen uint64, value []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil || gen != c.gen {
		return false
	}
	c.cur = &entry[T]{value: copySlice(value), fetchedAt: time.Now()}
	return true
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
