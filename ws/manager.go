package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrNotConnected = errors.New("client not connected")
	ErrSlowClient   = errors.New("client send queue is full")
)

const (
	sendQueueSize = 32
	writeWait     = 10 * time.Second
)

// client owns one connection. Messages go through send and are written by a
// single goroutine, so a slow reader never blocks the caller.
type client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, sendQueueSize)}
}

// enqueue reports false when the client is closed or its queue is full.
func (c *client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump drains send until the client is closed, then closes the
// connection. After a failed write the rest of the queue is discarded.
func (c *client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = c.conn.Close()
			for range c.send {
			}
			return
		}
	}
}

// Manager keeps track of the screens connected for state pushes.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*client // clientID -> client
}

func NewManager() *Manager {
	return &Manager{clients: make(map[string]*client)}
}

// Register adds a connection and starts its writer, replacing any existing
// client with the same id.
func (m *Manager) Register(clientID string, conn *websocket.Conn) {
	c := newClient(conn)
	m.mu.Lock()
	old, ok := m.clients[clientID]
	m.clients[clientID] = c
	m.mu.Unlock()

	if ok && old.conn != conn {
		old.close()
	}
	go c.writePump()
}

// Unregister removes a client; its connection closes once queued messages
// are written.
func (m *Manager) Unregister(clientID string) {
	m.mu.Lock()
	c, ok := m.clients[clientID]
	delete(m.clients, clientID)
	m.mu.Unlock()
	if ok {
		c.close()
	}
}

// Send queues a text message for one client.
func (m *Manager) Send(clientID string, payload []byte) error {
	m.mu.RLock()
	c, ok := m.clients[clientID]
	m.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}
	if !c.enqueue(payload) {
		return ErrSlowClient
	}
	return nil
}

// Broadcast queues payload for every client without waiting on any of them.
// Clients whose queue is full are dropped and their ids returned.
func (m *Manager) Broadcast(payload []byte) []string {
	m.mu.RLock()
	targets := make(map[string]*client, len(m.clients))
	for id, c := range m.clients {
		targets[id] = c
	}
	m.mu.RUnlock()

	var dropped []string
	for id, c := range targets {
		if !c.enqueue(payload) {
			dropped = append(dropped, id)
			m.drop(id, c)
		}
	}
	return dropped
}

// drop unregisters id only if it still maps to c.
func (m *Manager) drop(id string, c *client) {
	m.mu.Lock()
	if m.clients[id] == c {
		delete(m.clients, id)
	}
	m.mu.Unlock()
	c.close()
}

func (m *Manager) IsConnected(clientID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[clientID]
	return ok
}

// List returns a copy of the connected client ids.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	return ids
}
