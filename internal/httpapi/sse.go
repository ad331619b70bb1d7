package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/carebell/carebell/internal/bus"
)

// SSE event names seen by connected family dashboards.
const (
	eventTick   = "tick"
	eventBlock  = "block"
	eventAlert  = "alert"
	eventReload = "reload"
	eventDone   = "done"
)

// sseEvent is one frame to broadcast.
type sseEvent struct {
	Type string
	Data any
}

// Broker manages SSE client connections for family dashboards.
//
// Concurrency model: a single internal loop owns all mutable state (the
// client set and the retained display frame), so public methods
// communicate through channels and no mutexes are needed. The retained
// frame is the last block event; it is replayed to new subscribers so a
// freshly opened tab paints without waiting for the next recompute.
type Broker struct {
	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan sseEvent
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates an SSE broker and starts its event loop.
func NewBroker() *Broker {
	b := &Broker{
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan sseEvent, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var retained []byte

	broadcast := func(event sseEvent) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		raw := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload))
		if event.Type == eventBlock {
			retained = raw
		}

		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Client buffer full; skip to avoid blocking the loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}
			if retained != nil {
				select {
				case ch <- retained:
				default:
				}
			}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops the broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

func (b *Broker) publish(event sseEvent) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// Bind forwards engine bus events onto the SSE stream. Frames carry the
// bus payload serialized as JSON; reload notices are wrapped so the
// client sees which document changed.
func (b *Broker) Bind(eventBus *bus.Bus) {
	eventBus.Subscribe(bus.TypeTick, func(ev bus.Event) {
		b.publish(sseEvent{Type: eventTick, Data: ev.Payload})
	})
	eventBus.Subscribe(bus.TypeSnapshot, func(ev bus.Event) {
		b.publish(sseEvent{Type: eventBlock, Data: ev.Payload})
	})
	eventBus.Subscribe(bus.TypeAlert, func(ev bus.Event) {
		b.publish(sseEvent{Type: eventAlert, Data: ev.Payload})
	})
	eventBus.Subscribe(bus.TypeDone, func(ev bus.Event) {
		b.publish(sseEvent{Type: eventDone, Data: ev.Payload})
	})
	eventBus.Subscribe(bus.TypeReload, func(ev bus.Event) {
		kind, _ := ev.Payload.(string)
		b.publish(sseEvent{Type: eventReload, Data: map[string]string{"kind": kind}})
	})
}

// ServeHTTP is the SSE endpoint handler (GET /events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
