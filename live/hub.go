package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the envelope pushed to spectators. There is a single tournament
// in flight, so no room routing is needed: every client sees every update.
type Message struct {
	Type    string      `json:"type"` // e.g. "TOURNAMENT_UPDATED", "TOURNAMENT_CLEARED"
	Payload interface{} `json:"payload"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	closed   bool
	closedMu sync.Mutex
}

// Hub fans tournament snapshots out to connected spectators. Viewers are
// read-only; inbound frames are drained and ignored.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	mu       sync.RWMutex
	clients  map[*Client]bool
	lastSent []byte
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			replay := h.lastSent
			h.mu.Unlock()
			// Late joiners get the current snapshot immediately instead of
			// waiting for the next mutation.
			if replay != nil {
				client.trySend(replay)
			}

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()

		case payload := <-h.broadcast:
			h.mu.Lock()
			h.lastSent = payload
			for client := range h.clients {
				client.trySend(payload)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastSnapshot pushes a typed message to every connected spectator.
func (h *Hub) BroadcastSnapshot(msgType string, payload interface{}) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		log.Printf("live: failed to marshal %s message: %v", msgType, err)
		return
	}
	h.broadcast <- data
}

func (c *Client) trySend(payload []byte) {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- payload:
	default:
		// Slow consumer; it will catch up on the next snapshot.
	}
}

func (c *Client) close() {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// ReadPump drains inbound frames until the peer disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: unexpected close: %v", err)
			}
			return
		}
	}
}

// WritePump forwards queued snapshots and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
