package ws

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	wsPkg "github.com/krishanu7/sinkorsail/pkg/websocket"
)

type GeneralHandler struct {
	Hub    *wsPkg.GeneralHub
	tokens TokenParser
	logger *log.Logger
}

func NewGeneralHandler(hub *wsPkg.GeneralHub, tokens TokenParser, logger *log.Logger) *GeneralHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GeneralHandler{
		Hub:    hub,
		tokens: tokens,
		logger: logger,
	}
}

func (h *GeneralHandler) ServeGeneralWS(w http.ResponseWriter, r *http.Request) {
	playerID, err := h.tokens.ParseToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := wsPkg.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("General WS upgrade failed", "err", err)
		return
	}

	client := wsPkg.NewClient(uuid.NewString(), playerID, conn)
	h.Hub.AddClient(client)

	go h.read(client)
	go h.write(client)
}

func (h *GeneralHandler) read(c *wsPkg.Client) {
	defer func() {
		h.Hub.RemoveClient(c)
		c.Close()
		c.Conn.Close()
	}()
	for {
		// Incoming messages are ignored; reading detects the close.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Error reading message", "player", c.PlayerID, "err", err)
			}
			return
		}
	}
}

func (h *GeneralHandler) write(c *wsPkg.Client) {
	defer c.Conn.Close()

	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Warn("Error writing message", "player", c.PlayerID, "err", err)
			return
		}
	}
}
