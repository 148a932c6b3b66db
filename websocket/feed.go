// websocket/feed.go
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	company string
}

type feedHub struct {
	mutex   sync.Mutex
	clients map[string]map[*Client]bool
}

var hub = &feedHub{clients: make(map[string]map[*Client]bool)}

func (h *feedHub) add(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[c.company] == nil {
		h.clients[c.company] = make(map[*Client]bool)
	}
	h.clients[c.company][c] = true
}

func (h *feedHub) remove(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if clients, ok := h.clients[c.company]; ok {
		if clients[c] {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.clients, c.company)
		}
	}
}

// FeedEvent wraps one history event for the live dashboard feed.
type FeedEvent struct {
	Type      string      `json:"type"` // HISTORY_EVENT
	Company   string      `json:"company,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// BroadcastHistoryEvent sends the event to every client watching the company.
func BroadcastHistoryEvent(company string, event interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	clients, ok := hub.clients[company]
	if !ok {
		return
	}

	data, err := json.Marshal(FeedEvent{
		Type:      "HISTORY_EVENT",
		Company:   company,
		Data:      event,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal history feed event: %v", err)
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(clients, client)
		}
	}
}

// ServeHistoryFeed upgrades the connection and streams history events for
// one company.
func ServeHistoryFeed(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("History feed upgrade failed: %v", err)
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, 16), company: company}
	hub.add(client)
	log.Printf("History feed client connected for company %q", company)

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// The feed is one-way; drain and discard anything the client sends.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
