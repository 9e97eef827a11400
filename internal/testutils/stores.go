// Package testutils provides in-memory fakes for the narrow store
// contracts, shared by the relay, analytics, and handler tests.
package testutils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"linguachat/internal/domain"
)

// MemoryMessageStore is an in-memory domain.MessageStore. Insertion order
// is preserved; timestamps are strictly increasing so creation order and
// timestamp order always agree.
type MemoryMessageStore struct {
	mu       sync.Mutex
	messages []domain.Message
	clock    time.Time

	// FailInsert and FailRead force persistence errors, for testing the
	// store-outage paths.
	FailInsert bool
	FailRead   bool
}

// NewMemoryMessageStore creates an empty store.
func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

var _ domain.MessageStore = (*MemoryMessageStore)(nil)

// Insert assigns an id and timestamp and appends the message.
func (s *MemoryMessageStore) Insert(ctx context.Context, draft domain.MessageDraft) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailInsert {
		return nil, fmt.Errorf("%w: store down", domain.ErrPersistence)
	}

	s.clock = s.clock.Add(time.Second)
	msg := domain.Message{
		ID:         uuid.NewString(),
		SenderID:   draft.SenderID,
		ReceiverID: draft.ReceiverID,
		Text:       draft.Text,
		MediaURL:   draft.MediaURL,
		CreatedAt:  s.clock,
	}
	s.messages = append(s.messages, msg)
	return &msg, nil
}

// Between returns all messages exchanged between the pair in insertion order.
func (s *MemoryMessageStore) Between(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	return s.filter(func(m domain.Message) bool {
		return (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA)
	})
}

// Involving returns all messages sent or received by the user in insertion order.
func (s *MemoryMessageStore) Involving(ctx context.Context, userID string) ([]domain.Message, error) {
	return s.filter(func(m domain.Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	})
}

func (s *MemoryMessageStore) filter(keep func(domain.Message) bool) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailRead {
		return nil, fmt.Errorf("%w: store down", domain.ErrPersistence)
	}

	var out []domain.Message
	for _, m := range s.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// All returns every stored message in insertion order.
func (s *MemoryMessageStore) All() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// MemoryUserDirectory is an in-memory domain.UserDirectory.
type MemoryUserDirectory struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserDirectory creates a directory holding the given users.
func NewMemoryUserDirectory(users ...domain.User) *MemoryUserDirectory {
	d := &MemoryUserDirectory{users: make(map[string]domain.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

var _ domain.UserDirectory = (*MemoryUserDirectory)(nil)

// FindByID returns the user or domain.ErrNotFound.
func (d *MemoryUserDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, id)
	}
	return &u, nil
}

// FailingTranslator always reports the provider as unreachable.
type FailingTranslator struct {
	Err error
}

// Translate implements translate.Translator by failing.
func (f *FailingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "", errors.New("translator failure")
}
