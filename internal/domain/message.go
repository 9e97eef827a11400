package domain

import (
	"context"
	"fmt"
	"time"
)

// Message is a single persisted chat message between two users. Text is
// always stored in the pivot language; clients translate for display at
// render time. Messages are immutable once persisted.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	MediaURL   string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageDraft is an unpersisted message. The store assigns the id and
// creation timestamp on insert.
type MessageDraft struct {
	SenderID   string
	ReceiverID string
	Text       string
	MediaURL   string
}

// NewMessageDraft validates the participant pair and payload and returns a
// draft ready for canonicalization and insertion.
func NewMessageDraft(senderID, receiverID, text, mediaURL string) (MessageDraft, error) {
	if senderID == "" || receiverID == "" {
		return MessageDraft{}, fmt.Errorf("%w: sender and receiver are required", ErrInvalidRequest)
	}
	if senderID == receiverID {
		return MessageDraft{}, fmt.Errorf("%w: sender and receiver must differ", ErrInvalidRequest)
	}
	if text == "" && mediaURL == "" {
		return MessageDraft{}, fmt.Errorf("%w: message has no text or media", ErrInvalidRequest)
	}
	return MessageDraft{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		MediaURL:   mediaURL,
	}, nil
}

// MessageStore is the narrow contract over the append-only message store.
// Implementations must be safe for concurrent use and must return messages
// in creation order: ascending timestamp, ties broken by id.
type MessageStore interface {
	// Insert persists a draft, assigning its id and creation timestamp.
	Insert(ctx context.Context, draft MessageDraft) (*Message, error)

	// Between returns every message exchanged between the pair, in either
	// direction, in creation order.
	Between(ctx context.Context, userA, userB string) ([]Message, error)

	// Involving returns every message where the user is sender or receiver,
	// in creation order.
	Involving(ctx context.Context, userID string) ([]Message, error)
}
