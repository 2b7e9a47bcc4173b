// Package live pushes analytics updates to the open pages of a session over
// WebSocket.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message types.
const (
	MsgAnalyticsSnapshot = "analytics.snapshot"
	MsgAnalyticsUpdate   = "analytics.update"
	MsgCommentAdded      = "comment.added"
)

// broadcastBuffer bounds the queue between publishers and the hub loop.
const broadcastBuffer = 256

// Message is the envelope of every frame sent to a browser.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub fans messages out to the connections of each session. Only Run mutates
// the client set.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.sessionID] == nil {
				h.clients[c.sessionID] = make(map[*Client]struct{})
			}
			h.clients[c.sessionID][c] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("live client connected", "session_id", c.sessionID)

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			frame, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("failed to marshal live message", "type", msg.Type, "error", err)
				continue
			}
			h.mu.RLock()
			var slow []*Client
			for c := range h.clients[msg.SessionID] {
				select {
				case c.send <- frame:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				h.logger.Warn("dropping slow live client", "session_id", c.sessionID)
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.sessionID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.sessionID)
	}
}

// Publish queues data for every connection of sessionID. It never blocks: when
// the queue is full or the hub has stopped the message is dropped.
func (h *Hub) Publish(sessionID, msgType string, data any) error {
	msg, err := newMessage(sessionID, msgType, data)
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return nil
	default:
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("live queue full, dropping message", "session_id", sessionID, "type", msgType)
	}
	return nil
}

// Connections returns the number of open connections of sessionID.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Sessions returns the number of sessions with at least one open connection.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func newMessage(sessionID, msgType string, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	return &Message{
		Type:      msgType,
		SessionID: sessionID,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeWS upgrades the request and attaches the connection to sessionID. The
// initial payload is delivered as the first frame.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial any) error {
	first, err := newMessage(sessionID, MsgAnalyticsSnapshot, initial)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(first)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	c := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}
	c.send <- frame

	select {
	case h.register <- c:
	case <-h.done:
		closeConn(conn, h.logger)
		return nil
	}

	go c.writePump()
	go c.readPump()
	return nil
}
