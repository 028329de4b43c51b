package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a transient notification for the renderer. ExpiresAt tells the
// consumer when to auto-dismiss it; events are never stored.
type Event struct {
	ID        uuid.UUID   `json:"id"`
	Type      string      `json:"type"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ExpiresAt time.Time   `json:"expires_at"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub fans transient events out to whoever is streaming them. Delivery is
// best effort: slow subscribers drop events instead of blocking the core.
type Hub struct {
	mu          sync.RWMutex
	ttl         time.Duration
	subscribers map[chan Event]struct{}
}

// NewHub creates a hub whose events expire ttl after publication.
func NewHub(ttl time.Duration) *Hub {
	return &Hub{
		ttl:         ttl,
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a consumer and returns its channel and an unsubscribe
// function that also closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, exists := h.subscribers[ch]; exists {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Publish stamps the event and delivers it to all current subscribers.
func (h *Hub) Publish(event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.Timestamp = time.Now().UTC()
	event.ExpiresAt = event.Timestamp.Add(h.ttl)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
