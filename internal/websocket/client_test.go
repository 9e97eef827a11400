package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguachat/internal/presence"
	"linguachat/internal/pubsub"
)

func newClosedClient(id, userID string) *Client {
	client := &Client{id: id, userID: userID, send: make(chan []byte, 1)}
	client.Close()
	return client
}

func TestClient_SendAfterCloseIsNoop(t *testing.T) {
	client := newClosedClient("client1", "bernd")

	require.NotPanics(t, func() {
		client.Send([]byte("late delivery"))
	})
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	client := &Client{id: "client1", userID: "bernd", send: make(chan []byte, 1)}

	require.NotPanics(t, func() {
		client.Close()
		client.Close()
	})
}

func TestClient_SendQueuesWhileOpen(t *testing.T) {
	client := &Client{id: "client1", userID: "bernd", send: make(chan []byte, 1)}

	client.Send([]byte("hello"))

	select {
	case payload := <-client.send:
		assert.Equal(t, "hello", string(payload))
	default:
		t.Fatal("payload was not queued")
	}
}

// A delivery event can race the connection teardown: the bridge may look
// the handle up before the disconnect removes it from the directory. The
// push must be dropped, not panic.
func TestBridge_PushAfterClientTeardownIsDropped(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	directory := presence.NewDirectory()
	client := &Client{id: "client1", userID: "bernd", send: make(chan []byte, 1)}
	directory.Register("bernd", client)

	bridge := NewBridge(directory, bus)

	// Teardown has closed the client but the delivery plane still holds
	// the handle.
	client.Close()

	event := pubsub.Message{
		Topic:   pubsub.TopicMessageDelivered,
		UserID:  "bernd",
		Payload: []byte(`{"id":"m1"}`),
	}
	require.NotPanics(t, func() {
		assert.NoError(t, bridge.handleDelivered(context.Background(), event))
	})
}
