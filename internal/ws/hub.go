package ws

import (
	"sync"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/session"
)

// Frame is the wire envelope for every websocket message, both directions.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub tracks connected clients by session id and delivers outbound game
// events to them. It is the transport sink the session layer writes to;
// sends to unknown sessions are dropped silently because a player may
// disconnect between the state transition and the delivery.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	manager *session.Manager
}

// NewHub returns a hub with no clients. Bind must be called before the
// first connection is accepted.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Bind attaches the session manager. The manager needs the hub as its
// sink at construction time, so the reverse edge is wired afterwards.
func (h *Hub) Bind(m *session.Manager) {
	h.manager = m
}

// Send implements session.Sink.
func (h *Hub) Send(sessionID, event string, data any) {
	h.mu.RLock()
	c := h.clients[sessionID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	c.enqueue(Frame{Type: event, Data: data})
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	prev := h.clients[c.sessionID]
	h.clients[c.sessionID] = c
	h.mu.Unlock()
	if prev != nil {
		// A reconnect with the same session id replaces the old socket.
		prev.close()
	}
	logging.Info("ws client connected", logging.Fields{"session_id": c.sessionID, "username": c.username})
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	current := h.clients[c.sessionID]
	if current == c {
		delete(h.clients, c.sessionID)
	}
	h.mu.Unlock()
	if current != c {
		// Already replaced by a reconnect; the live session stays up.
		return
	}
	if h.manager != nil {
		h.manager.Disconnect(c.sessionID)
	}
	logging.Info("ws client disconnected", logging.Fields{"session_id": c.sessionID})
}

// CloseAll disconnects every client (shutdown path).
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for id, c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, id)
	}
	h.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
}
