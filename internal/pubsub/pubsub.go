package pubsub

import "context"

// Topics carried on the bus. The relay publishes delivery events after a
// successful persist; the websocket bridge publishes client lifecycle
// events consumed by the presence directory's bookkeeping.
const (
	// TopicMessageDelivered carries a persisted message destined for a
	// recipient's live channel.
	TopicMessageDelivered = "messages.delivered"

	// TopicClientConnected and TopicClientDisconnected announce live
	// channel lifecycle changes.
	TopicClientConnected    = "system.client.connected"
	TopicClientDisconnected = "system.client.disconnected"
)

// Message is the structure passed between components on the bus.
// It is intentionally simple to act as a wrapper for raw data.
type Message struct {
	// Topic identifies the channel the message belongs to.
	Topic string
	// UserID identifies the user the message concerns (the recipient for
	// delivery events, the connection owner for lifecycle events).
	UserID string
	// Payload contains the raw message data, typically JSON.
	Payload []byte
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages
	// with the handler. It returns once the subscription is active; the
	// handler runs on a background goroutine until the context is canceled.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
