package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"linguachat/internal/domain"
)

// SurrealMessageStore implements domain.MessageStore on SurrealDB. The
// message table is append-only: rows are created once and never mutated.
type SurrealMessageStore struct {
	db *surrealdb.DB
}

// NewSurrealMessageStore creates a message store backed by the given
// connection.
func NewSurrealMessageStore(db *surrealdb.DB) *SurrealMessageStore {
	return &SurrealMessageStore{db: db}
}

var _ domain.MessageStore = (*SurrealMessageStore)(nil)

// Insert persists a draft, assigning its id and creation timestamp. The
// timestamp is stored as a native datetime so ORDER BY compares
// chronologically, not as text.
func (s *SurrealMessageStore) Insert(ctx context.Context, draft domain.MessageDraft) (*domain.Message, error) {
	msg := domain.Message{
		ID:         uuid.NewString(),
		SenderID:   draft.SenderID,
		ReceiverID: draft.ReceiverID,
		Text:       draft.Text,
		MediaURL:   draft.MediaURL,
		CreatedAt:  time.Now().UTC(),
	}

	query := `
		CREATE type::thing("message", $id) CONTENT {
			senderId: $sender_id,
			receiverId: $receiver_id,
			text: $text,
			image: $image,
			createdAt: $created_at
		}
	`
	params := map[string]any{
		"id":          msg.ID,
		"sender_id":   msg.SenderID,
		"receiver_id": msg.ReceiverID,
		"text":        msg.Text,
		"image":       msg.MediaURL,
		"created_at":  surrealmodels.CustomDateTime{Time: msg.CreatedAt},
	}

	if _, err := surrealdb.Query[any](ctx, s.db, query, params); err != nil {
		return nil, fmt.Errorf("%w: insert message: %v", domain.ErrPersistence, err)
	}
	return &msg, nil
}

// record is the stored row shape. The id is selected as a plain string via
// record::id() so callers never see the table prefix.
type record struct {
	ID         string                       `json:"id"`
	SenderID   string                       `json:"senderId"`
	ReceiverID string                       `json:"receiverId"`
	Text       string                       `json:"text"`
	MediaURL   string                       `json:"image"`
	CreatedAt  surrealmodels.CustomDateTime `json:"createdAt"`
}

const selectFields = `record::id(id) AS id, senderId, receiverId, text, image, createdAt`

// Between returns every message exchanged between the pair, in either
// direction, in creation order.
func (s *SurrealMessageStore) Between(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	query := `
		SELECT ` + selectFields + ` FROM message
		WHERE (senderId = $a AND receiverId = $b)
		   OR (senderId = $b AND receiverId = $a)
		ORDER BY createdAt ASC, id ASC
	`
	params := map[string]any{"a": userA, "b": userB}

	return s.selectMessages(ctx, query, params)
}

// Involving returns every message where the user is sender or receiver, in
// creation order.
func (s *SurrealMessageStore) Involving(ctx context.Context, userID string) ([]domain.Message, error) {
	query := `
		SELECT ` + selectFields + ` FROM message
		WHERE senderId = $user OR receiverId = $user
		ORDER BY createdAt ASC, id ASC
	`
	params := map[string]any{"user": userID}

	return s.selectMessages(ctx, query, params)
}

func (s *SurrealMessageStore) selectMessages(ctx context.Context, query string, params map[string]any) ([]domain.Message, error) {
	rows, err := Query[record](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("%w: select messages: %v", domain.ErrPersistence, err)
	}

	messages := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, domain.Message{
			ID:         row.ID,
			SenderID:   row.SenderID,
			ReceiverID: row.ReceiverID,
			Text:       row.Text,
			MediaURL:   row.MediaURL,
			CreatedAt:  row.CreatedAt.Time,
		})
	}
	return messages, nil
}
