package event

import (
	"context"
	"sync"

	"github.com/fitstake/fitstake-go/internal/logger"
	"github.com/fitstake/fitstake-go/internal/metrics"
)

// subscription pairs a handler with a registration ordinal so fan-out order
// matches registration order even after removals
type subscription struct {
	id      uint64
	handler Handler
}

// MemoryBus is the in-process implementation of Bus
type MemoryBus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]subscription
	catchAll []subscription
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe registers a handler for one event type. The returned capability
// unregisters it; the bus holds no other reference to the subscriber.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) UnsubscribeFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[eventType] = removeSubscription(b.handlers[eventType], id)
	}
}

// SubscribeAll registers a handler for every event type. Used by bridges
// such as the SSE hub that forward the whole stream.
func (b *MemoryBus) SubscribeAll(handler Handler) UnsubscribeFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.catchAll = append(b.catchAll, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.catchAll = removeSubscription(b.catchAll, id)
	}
}

// Publish invokes every registered handler synchronously, in registration
// order. Each handler runs inside a failure boundary: an error or panic is
// logged and counted but never prevents the remaining handlers from running
// and never reaches the publisher.
func (b *MemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subs := make([]subscription, 0, len(b.handlers[event.Type])+len(b.catchAll))
	subs = append(subs, b.handlers[event.Type]...)
	subs = append(subs, b.catchAll...)
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	for _, sub := range subs {
		b.invoke(ctx, sub, event)
	}
}

func (b *MemoryBus) invoke(ctx context.Context, sub subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			logger.FromContext(ctx).Error(LogMsgHandlerPanicked, "event_type", event.Type, "panic", r)
		}
	}()

	if err := sub.handler(ctx, event); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
		logger.FromContext(ctx).Warn(LogMsgHandlerFailed, "event_type", event.Type, "error", err)
	}
}

// Reset drops every subscription. Called on session end so no callback
// outlives the session that registered it.
func (b *MemoryBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Type][]subscription)
	b.catchAll = nil
}

func removeSubscription(subs []subscription, id uint64) []subscription {
	for i, sub := range subs {
		if sub.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
