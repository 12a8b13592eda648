package websocket

import (
	"sync"

	"voice-journal-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks open live-chat sessions so they can be closed on shutdown.
type Hub struct {
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu       sync.RWMutex
	stopOnce sync.Once
	logger   logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Live chat session opened", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.SessionID]; ok {
				delete(h.clients, client.SessionID)
				close(client.closed)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Live chat session closed", map[string]interface{}{"session_id": client.SessionID})

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown stops Run and closes every open connection. Pumps exit on their
// own once their connection is gone.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(h.shutdown)
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.closed)
		client.Conn.Close()
		delete(h.clients, id)
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Conn.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
