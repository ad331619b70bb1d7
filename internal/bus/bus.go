// Package bus provides in-process pub/sub connecting the tick engine
// to its consumers: the display, the family notifiers, the SSE stream,
// and metrics.
package bus

import (
	"sync"
	"time"
)

// Event types published by the engine.
const (
	TypeTick     = "tick"     // payload engine.Tick, once per minute
	TypeAlert    = "alert"    // payload *alert.Alert
	TypeSnapshot = "snapshot" // payload engine.Snapshot
	TypeReload   = "reload"   // payload string ("schedule", "events" or "settings")
	TypeDone     = "done"     // payload model.ActivityEntry
)

// Event is one in-process domain event.
type Event struct {
	Type    string
	Payload any
	At      time.Time
}

// Handler reacts to an event. Handlers run synchronously on the
// publisher's goroutine; long work belongs on the handler's own.
type Handler func(event Event)

// Bus fans events out to subscribers by type.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

// New constructs an empty bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies the type's subscribers in subscription order. The
// subscriber list is copied first so handlers may subscribe freely.
func (b *Bus) Publish(eventType string, payload any) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[eventType]...)
	b.mu.RUnlock()

	event := Event{Type: eventType, Payload: payload, At: time.Now()}
	for _, handler := range handlers {
		handler(event)
	}
}
