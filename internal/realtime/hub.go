// Package realtime pushes load map change events to connected browsers over
// websockets.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
)

// Event is the message sent to every client after a write.
type Event struct {
	Type      string    `json:"type"`
	ID        uint      `json:"id"`
	Title     string    `json:"title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      chan chan int
	done       chan struct{}

	metrics *metrics.MetricsRegistry
}

// NewHub creates a new Hub instance. metricsReg may be nil.
func NewHub(metricsReg *metrics.MetricsRegistry) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		metrics:    metricsReg,
	}
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.metrics.RealtimeClientsChanged(1)
			logging.Debug("Realtime client connected", "client_id", c.ID)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				logging.Debug("Realtime client disconnected", "client_id", c.ID)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; it reconnects and refetches.
					h.drop(c)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// enqueue hands c to Run unless the hub has stopped.
func (h *Hub) enqueue(ch chan *Client, c *Client) bool {
	select {
	case ch <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.metrics.RealtimeClientsChanged(-1)
}

// Broadcast queues ev for every connected client. It never blocks the
// caller; when the queue is full the event is dropped and logged.
func (h *Hub) Broadcast(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		logging.Error("Failed to marshal realtime event", "error", err.Error())
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		logging.Warn("Realtime broadcast queue full, dropping event", "type", ev.Type, "id", ev.ID)
	}
}

// ClientCount returns the number of registered clients. It must only be
// called while Run is active.
func (h *Hub) ClientCount(ctx context.Context) int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
	case <-ctx.Done():
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-ctx.Done():
		return 0
	}
}
