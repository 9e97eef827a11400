// Package websocket is the live-channel plane: it upgrades HTTP requests,
// tracks each connection in the presence directory, and pushes delivery
// events to online recipients.
package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"linguachat/internal/middleware"
	"linguachat/internal/presence"
	"linguachat/internal/pubsub"
)

// pushEvent is the envelope sent over the live channel. Event is always
// "newMessage"; Message is the persisted message exactly as the send
// response renders it.
type pushEvent struct {
	Event   string          `json:"event"`
	Message json.RawMessage `json:"message"`
}

// Bridge connects the pub/sub delivery plane to live WebSocket clients.
type Bridge struct {
	directory *presence.Directory
	publisher pubsub.Publisher
	log       *slog.Logger
}

// NewBridge creates a bridge registering connections in the given
// directory.
func NewBridge(directory *presence.Directory, publisher pubsub.Publisher) *Bridge {
	return &Bridge{
		directory: directory,
		publisher: publisher,
		log:       slog.Default().With("service", "websocket"),
	}
}

// Start subscribes to delivery events. It returns once the subscription is
// active.
func (b *Bridge) Start(ctx context.Context, subscriber pubsub.Subscriber) error {
	return subscriber.Subscribe(ctx, pubsub.TopicMessageDelivered, b.handleDelivered)
}

// handleDelivered pushes a persisted message to the recipient's live
// handle, when one exists. An offline recipient is not an error: the
// message is already durable and will be fetched on reconnect.
func (b *Bridge) handleDelivered(ctx context.Context, msg pubsub.Message) error {
	conn, ok := b.directory.Lookup(msg.UserID)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(pushEvent{Event: "newMessage", Message: msg.Payload})
	if err != nil {
		b.log.Error("Failed to marshal push event", "user_id", msg.UserID, "error", err)
		return nil
	}

	conn.Send(payload)
	return nil
}

// Handler returns an echo handler that upgrades the request and serves the
// connection until the client goes away.
func (b *Bridge) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := middleware.UserID(c)
		if userID == "" {
			return c.String(http.StatusUnauthorized, "User not authenticated")
		}

		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // In production, check origin.
		})
		if err != nil {
			b.log.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}

		client := &Client{
			id:     uuid.NewString(),
			userID: userID,
			conn:   conn,
			send:   make(chan []byte, sendBufferSize),
		}

		b.directory.Register(userID, client)
		b.publishLifecycle(pubsub.TopicClientConnected, client)

		go client.writePump()
		go b.readPump(client)

		return nil
	}
}

// readPump drains inbound frames until the connection dies, then tears the
// client down. The live channel is push-only; inbound frames are ignored.
func (b *Bridge) readPump(client *Client) {
	defer func() {
		b.directory.Unregister(client.userID, client.id)
		client.Close()
		client.conn.Close(websocket.StatusNormalClosure, "client disconnected")
		b.publishLifecycle(pubsub.TopicClientDisconnected, client)
	}()

	for {
		_, _, err := client.conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				b.log.Info("WebSocket closed normally by client", "user_id", client.userID)
			} else if err != io.EOF {
				b.log.Debug("WebSocket read ended", "user_id", client.userID, "error", err)
			}
			return
		}
	}
}

func (b *Bridge) publishLifecycle(topic string, client *Client) {
	payload, _ := json.Marshal(map[string]string{
		"userID":   client.userID,
		"clientID": client.id,
	})
	event := pubsub.Message{Topic: topic, UserID: client.userID, Payload: payload}
	if err := b.publisher.Publish(context.Background(), event); err != nil {
		b.log.Error("Failed to publish lifecycle event", "topic", topic, "error", err)
	}
}
