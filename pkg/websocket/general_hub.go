package websocket

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// GeneralHub routes notifications to players by ID. A player holds at
// most one notification connection; a newer one replaces the older.
type GeneralHub struct {
	Clients map[string]*Client
	mu      sync.Mutex
	logger  *log.Logger
}

func NewGeneralHub(logger *log.Logger) *GeneralHub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GeneralHub{
		Clients: make(map[string]*Client),
		logger:  logger,
	}
}

func (h *GeneralHub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Clients[c.PlayerID] = c
	h.logger.Debug("General client connected", "player", c.PlayerID)
}

func (h *GeneralHub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Clients[c.PlayerID] == c {
		delete(h.Clients, c.PlayerID)
	}
	h.logger.Debug("General client disconnected", "player", c.PlayerID)
}

func (h *GeneralHub) SendToClient(playerID string, message []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, exists := h.Clients[playerID]
	if !exists {
		return false
	}
	return client.Enqueue(message)
}

func (h *GeneralHub) Connected(playerID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.Clients[playerID]
	return ok
}
