package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"echofeed/middleware"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Manager fans notifications out to connected clients. The store is the
// source of truth; this is only the "store notifies subscribed readers" leg
// of the data flow, so delivery is best effort.
type Manager struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			logrus.WithField("userId", client.userID).Debug("WebSocket client registered")

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			logrus.WithField("userId", client.userID).Debug("WebSocket client unregistered")

		case message := <-m.broadcast:
			m.mu.Lock()
			for client := range m.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(m.clients, client)
				}
			}
			m.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected client, e.g. a new post that
// open feeds should pick up.
func (m *Manager) Broadcast(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":    event,
		"payload": payload,
	})
	if err != nil {
		logrus.WithError(err).Error("Error marshaling WebSocket message")
		return
	}
	m.broadcast <- msg
}

// SendToUser delivers a payload to every open connection of one user.
// Connectionless users are skipped silently.
func (m *Manager) SendToUser(userID string, event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":    event,
		"payload": payload,
	})
	if err != nil {
		logrus.WithError(err).Error("Error marshaling WebSocket message")
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for client := range m.clients {
		if client.userID != userID {
			continue
		}
		select {
		case client.send <- msg:
		default:
		}
	}
}

func (m *Manager) ConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler upgrades the connection after validating the JWT carried in the
// token query parameter (browsers cannot set headers on websocket dials).
func Handler(manager *Manager, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}

		claims, err := middleware.ParseToken(token, jwtSecret)
		if err != nil {
			logrus.WithError(err).Debug("WebSocket connection rejected")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("WebSocket upgrade failed")
			return
		}

		client := &Client{
			conn:    conn,
			userID:  claims.UserID,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		manager.register <- client

		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"userId": client.userID,
				"time":   time.Now().Unix(),
			},
		})
		client.send <- welcome

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("WebSocket read error")
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			continue
		}

		// Clients only ever send keepalives; everything else flows server->client.
		if data["type"] == "ping" {
			c.sendPong()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendPong() {
	msg, err := json.Marshal(map[string]interface{}{
		"type": "pong",
		"payload": map[string]interface{}{
			"time": time.Now().Unix(),
		},
	})
	if err != nil {
		return
	}
	c.send <- msg
}
