package websocket

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const sendBuffer = 16

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection of an authenticated player.
type Client struct {
	ID       string
	PlayerID string
	Conn     *websocket.Conn
	Send     chan []byte

	closeOnce sync.Once
}

func NewClient(id, playerID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       id,
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
	}
}

// Enqueue hands msg to the writer without blocking and reports whether
// there was room for it.
func (c *Client) Enqueue(msg []byte) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// Close stops the writer; it is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}
