package websocket

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Hub tracks the open game connections.
type Hub struct {
	Clients map[string]*Client
	mu      sync.Mutex
	logger  *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		Clients: make(map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Clients[c.ID] = c
	h.logger.Debug("Game client connected", "client", c.ID, "player", c.PlayerID)
}

func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.Clients, c.ID)
	h.logger.Debug("Game client disconnected", "client", c.ID, "player", c.PlayerID)
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Clients)
}

// CloseAll drops every connection, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.Clients {
		c.Conn.Close()
		delete(h.Clients, id)
	}
}
