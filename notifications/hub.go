package notifications

import (
	"log"
	"net/http"
	"sync"

	"solenne/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one websocket subscriber. A user may have several open tabs.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type userMsg struct {
	UserID string
	Data   []byte
}

// Hub fans dispatched notifications out to each owner's connected clients.
type Hub struct {
	users      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan userMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		users:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan userMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.users {
				for c := range conns {
					close(c.Send)
				}
			}
			h.users = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.users[c.UserID] == nil {
				h.users[c.UserID] = make(map[*Client]bool)
			}
			h.users[c.UserID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			// A slow client may already have been dropped by deliver;
			// close only while still a member so Send is closed once.
			if conns := h.users[c.UserID]; conns[c] {
				delete(conns, c)
				close(c.Send)
				if len(conns) == 0 {
					delete(h.users, c.UserID)
				}
			}
			h.mu.Unlock()

		case m := <-h.deliver:
			h.mu.Lock()
			conns := h.users[m.UserID]
			for c := range conns {
				select {
				case c.Send <- m.Data:
				default:
					delete(conns, c)
					close(c.Send)
				}
			}
			if len(conns) == 0 {
				delete(h.users, m.UserID)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

// Deliver queues a payload for every open connection owned by the user.
func (h *Hub) Deliver(userID string, data []byte) {
	h.deliver <- userMsg{UserID: userID, Data: data}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// GET /api/notifications/stream
func StreamHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.Header.Get("Authorization")
		if token == "" {
			token = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 64),
			UserID: claims.UserID,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the client going away; the stream is one-way.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
