package leaderboard

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBufferSize = 256
)

// Client is one viewer connection inside a tournament room. A user may
// hold any number of connections; membership is per connection.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	UserName string

	IsClosed bool
	Mu       sync.Mutex
}

// NewClient prepares a client for a freshly upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, room, userName string) *Client {
	if userName == "" {
		userName = "Anonymous"
	}
	return &Client{
		Hub:      hub,
		Conn:     conn,
		Send:     make(chan []byte, sendBufferSize),
		Room:     room,
		UserName: userName,
	}
}

// Notify queues a message for this client only. A full or closed channel
// drops the message rather than blocking the caller.
func (c *Client) Notify(message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		c.Hub.logger.Error("marshal client message", slog.String("room", c.Room), slog.Any("error", err))
		return
	}
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// Hub owns the mapping from tournament room to its connected clients and
// fans messages out to them. One Run goroutine serializes membership
// changes; broadcasts take a read lock and never block on a slow client.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run processes membership changes until the process exits. Start it once,
// in its own goroutine, before accepting connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			count := len(h.rooms[client.Room])
			h.notifyRoomLocked(client.Room, client, Message{
				Type:    EventViewerJoined,
				Payload: ViewerEvent{UserName: client.UserName, ViewerCount: count},
				RoomID:  client.Room,
			})
			h.mu.Unlock()
			h.logger.Info("viewer joined",
				slog.String("room", client.Room),
				slog.String("user", client.UserName),
				slog.Int("viewers", count))

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.Room]; ok && room[client] {
				client.Mu.Lock()
				if !client.IsClosed {
					close(client.Send)
					client.IsClosed = true
				}
				client.Mu.Unlock()
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, client.Room)
				} else {
					h.notifyRoomLocked(client.Room, nil, Message{
						Type:    EventViewerLeft,
						Payload: ViewerEvent{UserName: client.UserName, ViewerCount: len(room)},
						RoomID:  client.Room,
					})
				}
				h.logger.Info("viewer left",
					slog.String("room", client.Room),
					slog.String("user", client.UserName),
					slog.Int("viewers", len(room)))
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom sends a message to every client in the room. Delivery is
// best effort: a client whose send buffer is full is skipped, so one slow
// or disconnected viewer never delays the others or the caller.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.notifyRoomLocked(roomID, nil, message)
}

// RoomCount returns the number of connections currently in a room.
func (h *Hub) RoomCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// notifyRoomLocked fans one message out to a room, skipping except if set.
// Callers must hold h.mu (read or write).
func (h *Hub) notifyRoomLocked(roomID string, except *Client, message Message) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("marshal broadcast message", slog.String("room", roomID), slog.Any("error", err))
		return
	}
	for client := range room {
		if client == except {
			continue
		}
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("dropping message for slow client", slog.String("room", roomID))
		}
		client.Mu.Unlock()
	}
}

// ReadPump drains the connection until it closes, then unregisters the
// client. Inbound payloads are ignored; the live channel is one-way.
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
				c.Hub.logger.Warn("unexpected close", slog.String("room", c.Room), slog.Any("error", err))
			}
			return
		}
	}
}

// WritePump moves queued messages onto the wire and keeps the connection
// alive with pings. It exits when the hub closes the send channel or a
// write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush anything else already queued into the same frame batch.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}
			if err := w.Close(); err != nil {
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
