// Package sessionws streams session-state snapshots to connected clients.
// Whenever the session controller publishes a change, every connection
// belonging to the signed-in user receives the new snapshot.
package sessionws

import (
	"context"
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/session"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan session.Snapshot
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

type refresher interface {
	Refresh(ctx context.Context)
}

type stateMessage struct {
	Type     string           `json:"type"`
	Snapshot session.Snapshot `json:"snapshot"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan session.Snapshot, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case snapshot := <-h.broadcast:
			h.deliver(snapshot)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish queues a snapshot for delivery. Safe to call from the session
// store's subscription callback.
func (h *Hub) Publish(snapshot session.Snapshot) {
	select {
	case h.broadcast <- snapshot:
	default:
		log.Println("session hub: broadcast buffer full, dropping snapshot")
	}
}

// deliver routes the snapshot to the owning user's connections. A signed-out
// snapshot carries no identity and goes to every connection, so stale
// sessions learn they ended.
func (h *Hub) deliver(snapshot session.Snapshot) {
	encoded, err := json.Marshal(stateMessage{Type: "session_state", Snapshot: snapshot})
	if err != nil {
		log.Printf("session hub encode snapshot: %v", err)
		return
	}

	if snapshot.Identity == nil {
		for userID := range h.clients {
			h.sendToUser(userID, encoded)
		}
		return
	}
	h.sendToUser(snapshot.Identity.UID, encoded)
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

// ReadPump consumes inbound messages. The only supported request is a
// refresh, which re-fetches the profile and republishes it.
func (c *Client) ReadPump(sessions refresher) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}
		if incoming.Type == "refresh" {
			sessions.Refresh(context.Background())
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
