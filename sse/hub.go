package sse

import (
	"path/filepath"
	"sync"

	"github.com/skillsenselab/lyricsync/logger"
)

const clientBuffer = 256

// Client is one connected event stream.
type Client struct {
	id        string
	sessionID string
	events    chan []byte
}

// NewClient creates a client for the given session. The ID must be
// unique across the hub.
func NewClient(id, sessionID string) *Client {
	return &Client{
		id:        id,
		sessionID: sessionID,
		events:    make(chan []byte, clientBuffer),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() string { return c.id }

// SessionID returns the session this client is watching.
func (c *Client) SessionID() string { return c.sessionID }

// Events returns the channel the hub delivers events on.
func (c *Client) Events() <-chan []byte { return c.events }

// Send queues data for the client. Returns false when the client's
// buffer is full; the event is dropped rather than blocking the hub.
func (c *Client) Send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		logger.Warn("sse client buffer full, dropping event", map[string]interface{}{
			"client_id": c.id,
		})
		return false
	}
}

// Close closes the client's event channel.
func (c *Client) Close() {
	close(c.events)
}

// Broadcaster sends event data to clients matching a glob pattern.
// Handlers depend on this instead of the concrete Hub.
type Broadcaster interface {
	Broadcast(pattern string, data []byte)
}

// Hub manages connected clients and routes broadcast events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	stopped bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
}

type message struct {
	pattern string
	data    []byte
}

// NewHub creates a new hub. Call Run in a goroutine before using it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, clientBuffer),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				c.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg.pattern, msg.data)
		}
	}
}

// Stop shuts the hub down and disconnects all clients. Safe to call
// multiple times.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast queues data for all clients whose ID matches the glob
// pattern, e.g. "session:abc123:*".
func (h *Hub) Broadcast(pattern string, data []byte) {
	h.broadcast <- message{pattern: pattern, data: data}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) deliver(pattern string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		matched, err := filepath.Match(pattern, id)
		if err != nil {
			logger.Error("sse pattern match failed", map[string]interface{}{
				"pattern": pattern,
				"error":   err.Error(),
			})
			return
		}
		if matched {
			c.Send(data)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

var _ Broadcaster = (*Hub)(nil)
