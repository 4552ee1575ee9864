package notify

import (
	"sync"

	"gigboard/utils"
)

// EventHired is the event name pushed to a freelancer whose bid was accepted.
const EventHired = "hire-notification"

// Event is the payload delivered over a user's live connections.
type Event struct {
	Name    string `json:"event"`
	Message string `json:"message"`
	GigID   string `json:"gigId,omitempty"`
}

// Conn is a live client connection registered with the hub.
type Conn interface {
	Send(event Event) error
	Close() error
}

// Hub is an identity-keyed connection registry. Delivery is best-effort,
// at-most-once and fire-and-forget: Publish fans an event out to every
// connection registered for the user and silently drops it when none are.
// There is no queueing, persistence or redelivery.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[Conn]struct{}
}

// NewHub creates an empty hub. The hub is created at process startup and
// torn down with Close; it is injected where publishing is needed rather
// than held as package state.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[Conn]struct{})}
}

// Register associates a connection with a user identity. A user may hold
// any number of live connections at once.
func (h *Hub) Register(conn Conn, userID string) {
	if userID == "" || conn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
}

// Unregister removes the association, on disconnect or explicit close.
func (h *Hub) Unregister(conn Conn, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// Publish delivers the event to every connection registered for userID.
// Sends happen outside the registry lock; a connection that fails to accept
// the write is dropped from the registry. Delivery failure is logged and
// never surfaced to the caller.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.conns[userID]))
	for conn := range h.conns[userID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.Send(event); err != nil {
			utils.Warn("notify: dropping dead connection", map[string]any{
				"user_id": userID,
				"event":   event.Name,
				"error":   err.Error(),
			})
			h.Unregister(conn, userID)
			_ = conn.Close()
		}
	}
}

// Close tears the hub down, closing every registered connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, set := range h.conns {
		for conn := range set {
			_ = conn.Close()
		}
		delete(h.conns, userID)
	}
}

// ConnectionCount reports how many live connections a user has registered.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}
