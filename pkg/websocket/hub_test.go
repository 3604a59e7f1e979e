package websocket

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestGeneralHubRouting(t *testing.T) {
	hub := NewGeneralHub(nil)
	require.False(t, hub.SendToClient("p1", []byte("hi")))

	old := NewClient("c1", "p1", nil)
	hub.AddClient(old)
	newer := NewClient("c2", "p1", nil)
	hub.AddClient(newer)

	require.True(t, hub.SendToClient("p1", []byte("hi")))
	require.Equal(t, []byte("hi"), <-newer.Send)
	require.Empty(t, old.Send)

	// Removing the replaced connection keeps the newer one routed.
	hub.RemoveClient(old)
	require.True(t, hub.SendToClient("p1", []byte("again")))
	hub.RemoveClient(newer)
	require.False(t, hub.SendToClient("p1", []byte("gone")))
}

func TestClientEnqueueFull(t *testing.T) {
	c := NewClient("c1", "p1", nil)
	for range sendBuffer {
		require.True(t, c.Enqueue([]byte("x")))
	}
	require.False(t, c.Enqueue([]byte("x")))

	c.Close()
	c.Close()
}

func TestHubRegistry(t *testing.T) {
	hub := NewHub(nil)
	c := NewClient("c1", "p1", nil)
	hub.AddClient(c)
	require.Equal(t, 1, hub.Count())
	hub.RemoveClient(c)
	require.Zero(t, hub.Count())
}

func TestHubsLogThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	hub := NewHub(logger.With("component", "hub"))
	c := NewClient("c1", "p1", nil)
	hub.AddClient(c)
	hub.RemoveClient(c)

	general := NewGeneralHub(logger.With("component", "general_hub"))
	general.AddClient(c)
	general.RemoveClient(c)

	out := buf.String()
	require.Contains(t, out, "Game client connected")
	require.Contains(t, out, "Game client disconnected")
	require.Contains(t, out, "component=hub")
	require.Contains(t, out, "General client connected")
	require.Contains(t, out, "component=general_hub")
}
