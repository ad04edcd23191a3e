package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler receives emitted events. Handlers must not block; slow consumers
// should buffer on their own channel.
type Handler func(event *Event)

// Bus is a simple in-process publish/subscribe event bus.
// There is a single emitter side (store mutations and jobs) and a small
// number of subscribers (websocket streams), so a mutex-guarded handler
// list is all the coordination needed.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	all      map[uint64]Handler
	nextID   uint64
	log      zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		all:      make(map[uint64]Handler),
		log:      log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type.
// Returns an unsubscribe function; callers must invoke it when the
// consumer (e.g. a websocket connection) goes away. Unsubscribing
// removes the entry so long-lived processes do not accumulate slots
// for departed connections.
func (b *Bus) SubscribeAll(handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.all[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.all, id)
	}
}

// Emit publishes an event to all matching subscribers
func (b *Bus) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	b.log.Debug().
		Str("event_type", string(eventType)).
		Str("module", module).
		Msg("Event emitted")

	b.mu.RLock()
	typed := b.handlers[eventType]
	all := make([]Handler, 0, len(b.all))
	for _, h := range b.all {
		all = append(all, h)
	}
	b.mu.RUnlock()

	for _, h := range typed {
		h(event)
	}
	for _, h := range all {
		h(event)
	}
}
