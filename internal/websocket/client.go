package websocket

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBufferSize = 256
	writeTimeout   = 10 * time.Second
)

// Client is a single live WebSocket connection for one user. It implements
// presence.Conn so the directory can hand it to the delivery plane.
type Client struct {
	id     string
	userID string
	conn   *websocket.Conn
	mu     sync.RWMutex
	send   chan []byte
}

// ClientID identifies this connection, not the user.
func (c *Client) ClientID() string { return c.id }

// Send queues a payload for delivery without blocking. A full send buffer
// drops the payload; the recipient recovers via history fetch. The
// delivery plane may still hold this handle after teardown has begun, so
// sending to a closed client is a no-op, never a panic.
func (c *Client) Send(payload []byte) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// A nil channel means the client is disconnected.
	if c.send == nil {
		return
	}

	select {
	case c.send <- payload:
	default:
		slog.Warn("Client send channel full, dropping message", "client_id", c.id, "user_id", c.userID)
	}
}

// Close safely closes the client's send channel. It takes the write lock
// so no concurrent Send can race the close.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.send != nil {
		close(c.send)
		c.send = nil // Prevent further use.
	}
}

// writePump pumps messages from the send channel to the connection. It
// exits when the client is closed or a write fails.
func (c *Client) writePump() {
	c.mu.RLock()
	ch := c.send
	c.mu.RUnlock()
	if ch == nil {
		return
	}

	defer c.conn.Close(websocket.StatusNormalClosure, "server-side cleanup")

	for payload := range ch {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.conn.Write(ctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			slog.Error("WebSocket write error", "user_id", c.userID, "error", err)
			return
		}
	}
}
