// Package livesvc pushes revalidation notices to connected browsers over websockets.
package livesvc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/core"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// MessageRevalidate tells a client to refetch the listed views.
const MessageRevalidate = "revalidate"

type Message struct {
	Type  string    `json:"type"`
	Paths []string  `json:"paths"`
	At    time.Time `json:"at"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // connections are authenticated with a JWT
	},
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// Hub keeps the set of connected clients and broadcasts revalidations to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	logger     core.Logger
}

var _ core.Revalidator = (*Hub)(nil)

func NewHub(logger core.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// slow client
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Revalidate queues a revalidation notice. It never blocks: notices are dropped when the queue is full.
func (h *Hub) Revalidate(_ context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	data, err := json.Marshal(Message{Type: MessageRevalidate, Paths: paths, At: time.Now().UTC()})
	if err != nil {
		return errors.Wrap(err, "marshalling revalidation")
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("live: broadcast queue full, revalidation dropped", map[string]interface{}{"paths": paths})
	}
	return nil
}

// ServeWS upgrades the request and registers the connection of the user `userID`.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return errors.Wrap(err, "upgrading connection")
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize), userID: userID}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return errors.New("live hub stopped")
	}

	go c.writePump()
	go c.readPump()
	return nil
}

// readPump only handles control frames: clients do not send messages.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("live: unexpected close", err, map[string]interface{}{"user_id": c.userID})
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
