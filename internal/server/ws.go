package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler pushes app state snapshots and fingerspelling frames to
// connected WebSocket clients.
type StateHandler struct {
	app     *app.App
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStateHandler creates a new StateHandler over the app.
func NewStateHandler(a *app.App) *StateHandler {
	h := &StateHandler{
		app:     a,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcastState()
	if a.Speller() != nil {
		go h.broadcastSpelling()
	}
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

type stateMessage struct {
	Type      string    `json:"type"`
	State     app.State `json:"state"`
	Timestamp int64     `json:"timestamp"`
}

type spellingMessage struct {
	Type   string `json:"type"`
	Letter string `json:"letter"`
	Index  int    `json:"index"`
	Total  int    `json:"total"`
}

// broadcastState sends the app snapshot to all clients on a fixed beat.
func (h *StateHandler) broadcastState() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if !h.hasClients() {
			continue
		}

		msg, _ := json.Marshal(stateMessage{
			Type:      "state",
			State:     h.app.State(),
			Timestamp: time.Now().UnixMilli(),
		})
		h.send(msg)
	}
}

// broadcastSpelling forwards fingerspelling frames as they play.
func (h *StateHandler) broadcastSpelling() {
	for frame := range h.app.Speller().C() {
		msg, _ := json.Marshal(spellingMessage{
			Type:   "spelling",
			Letter: string(frame.Letter),
			Index:  frame.Index,
			Total:  frame.Total,
		})
		h.send(msg)
	}
}

func (h *StateHandler) hasClients() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients) > 0
}

func (h *StateHandler) send(msg []byte) {
	h.mu.RLock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
	h.mu.RUnlock()
}
