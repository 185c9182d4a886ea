package sse

import (
	"context"
	"log/slog"

	"github.com/fitstake/fitstake-go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub. Every bus
// event is forwarded with its type string and typed payload intact;
// per-client filtering happens in the hub.
type Subscriber struct {
	hub         *Hub
	bus         event.Bus
	unsubscribe event.UnsubscribeFunc
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe attaches the bridge to the bus
func (s *Subscriber) Subscribe() {
	s.unsubscribe = s.bus.SubscribeAll(s.forward)
	slog.Info("SSE subscriber attached to event bus")
}

// Unsubscribe detaches the bridge; safe to call more than once
func (s *Subscriber) Unsubscribe() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"clients", s.hub.ClientCount())
	return nil
}
