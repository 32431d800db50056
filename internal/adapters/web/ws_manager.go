package web

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/prr/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
)

const writeWait = 5 * time.Second

// WSMessage is the envelope of every frame sent to clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// MessageSession carries a domain.SessionView.
const MessageSession = "session"

// WSManager mirrors the current session to connected clients.
type WSManager struct {
	Session  ports.SessionService
	Clients  map[*websocket.Conn]string
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

// NewWSManager accepts connections from the listed origins and from same-origin
// clients that send no Origin header.
func NewWSManager(session ports.SessionService, allowedOrigins []string) *WSManager {
	m := &WSManager{
		Session: session,
		Clients: make(map[*websocket.Conn]string),
	}
	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, origin) {
				return true
			}
			log.Printf("WebSocket: Rejected origin: %s", origin)
			return false
		},
	}
	return m
}

// HandleWebSocket upgrades the connection and sends the current session first.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	client := middleware.ClientHost(r)

	m.mu.Lock()
	m.Clients[conn] = client
	if m.Session != nil {
		m.write(conn, WSMessage{Type: MessageSession, Payload: m.Session.Current()})
	}
	m.mu.Unlock()

	log.Printf("WebSocket connected: client=%s", client)

	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.Clients, conn)
			m.mu.Unlock()
			log.Printf("WebSocket disconnected: client=%s", client)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// BroadcastSession sends a session view to all connected clients.
func (m *WSManager) BroadcastSession(view domain.SessionView) {
	m.broadcastMessage(WSMessage{Type: MessageSession, Payload: view})
}

// ClientCount is the number of open connections.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clients)
}

func (m *WSManager) broadcastMessage(msg WSMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.Clients {
		m.write(conn, msg)
	}
}

// write must be called with mu held.
func (m *WSManager) write(conn *websocket.Conn, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		conn.Close()
		delete(m.Clients, conn)
	}
}
