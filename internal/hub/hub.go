package hub

import (
	"encoding/json"
	"sync"
)

const (
	EventMessageCreated = "message_created"

	// clientBuffer is how many events a subscriber may lag behind before events are dropped for it.
	clientBuffer = 16
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is the receiving end of a subscription.
// The SSE handler reads encoded events from it until it is closed.
type Client chan []byte

// Hub fans board events out to every connected feed subscriber.
type Hub struct {
	clients map[Client]struct{}
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[Client]struct{}),
	}
}

// Subscribe registers a new buffered client.
func (h *Hub) Subscribe() Client {
	client := make(Client, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

// Unsubscribe removes a client and closes its channel. Unknown clients are ignored.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// Close disconnects every client. Streams reading from them end once their buffers drain.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client)
	}
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to all subscribers and returns how many received it.
func (h *Hub) Broadcast(event Event) (int, error) {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return 0, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.clients {
		// Use a non-blocking send to prevent a slow client from blocking the hub.
		select {
		case client <- messageBytes:
			delivered++
		default:
		}
	}
	return delivered, nil
}
