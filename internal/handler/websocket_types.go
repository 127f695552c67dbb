// internal/handler/websocket_types.go
package handler

import (
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a WebSocket event subscriber
type Client struct {
	ID          string
	Connection  *websocket.Conn
	Send        chan []byte
	UserAgent   string
	RemoteAddr  string
	ConnectedAt time.Time

	mutex         sync.RWMutex
	subscriptions map[string]bool
}

// Subscribe limits delivery to the given event type
func (c *Client) Subscribe(topic string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.subscriptions == nil {
		c.subscriptions = make(map[string]bool)
	}
	c.subscriptions[topic] = true
}

// Unsubscribe removes a topic filter
func (c *Client) Unsubscribe(topic string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.subscriptions, topic)
}

// Wants reports whether the client should receive eventType.
// A client without subscriptions receives everything.
func (c *Client) Wants(eventType string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if len(c.subscriptions) == 0 {
		return true
	}
	return c.subscriptions[eventType] || c.subscriptions[AllEvents]
}

// Topics returns the active subscriptions
func (c *Client) Topics() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	topics := make([]string, 0, len(c.subscriptions))
	for topic := range c.subscriptions {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics
}

// WebSocketMessage represents a WebSocket message
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// ConnectionManager manages WebSocket connections
type ConnectionManager struct {
	clients map[string]*Client
	mutex   sync.RWMutex
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*Client),
	}
}

// Register registers a new client
func (cm *ConnectionManager) Register(client *Client) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.clients[client.ID] = client
}

// Unregister removes a client and closes its send channel once
func (cm *ConnectionManager) Unregister(client *Client) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if _, ok := cm.clients[client.ID]; ok {
		delete(cm.clients, client.ID)
		close(client.Send)
	}
}

// CloseAll unregisters every client
func (cm *ConnectionManager) CloseAll() {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	for id, client := range cm.clients {
		delete(cm.clients, id)
		close(client.Send)
	}
}

// Broadcast queues message for every client interested in eventType and
// returns the IDs of clients whose send buffer was full.
func (cm *ConnectionManager) Broadcast(eventType string, message []byte) []string {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	var dropped []string
	for _, client := range cm.clients {
		if !client.Wants(eventType) {
			continue
		}
		select {
		case client.Send <- message:
		default:
			dropped = append(dropped, client.ID)
		}
	}
	return dropped
}

// SendTo queues message for a single registered client
func (cm *ConnectionManager) SendTo(client *Client, message []byte) bool {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if _, ok := cm.clients[client.ID]; !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}

// GetStats returns a snapshot of the connected clients
func (cm *ConnectionManager) GetStats() *ConnectionStats {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	stats := &ConnectionStats{
		TotalConnections: len(cm.clients),
		Clients:          make([]ClientInfo, 0, len(cm.clients)),
	}
	for _, client := range cm.clients {
		stats.Clients = append(stats.Clients, ClientInfo{
			ID:          client.ID,
			UserAgent:   client.UserAgent,
			RemoteAddr:  client.RemoteAddr,
			ConnectedAt: client.ConnectedAt,
			Topics:      client.Topics(),
		})
	}
	slices.SortFunc(stats.Clients, func(a, b ClientInfo) int {
		return a.ConnectedAt.Compare(b.ConnectedAt)
	})
	return stats
}

// ConnectionStats represents connection statistics
type ConnectionStats struct {
	TotalConnections int          `json:"total_connections"`
	Clients          []ClientInfo `json:"clients"`
}

// ClientInfo describes one connected event subscriber
type ClientInfo struct {
	ID          string    `json:"id"`
	UserAgent   string    `json:"user_agent"`
	RemoteAddr  string    `json:"remote_addr"`
	ConnectedAt time.Time `json:"connected_at"`
	Topics      []string  `json:"topics"`
}
