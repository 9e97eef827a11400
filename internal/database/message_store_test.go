package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguachat/internal/domain"
)

func TestSurrealMessageStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSurrealMessageStore(db)

	t.Run("Insert and Between roundtrip", func(t *testing.T) {
		msg, err := store.Insert(ctx, domain.MessageDraft{
			SenderID:   "alice",
			ReceiverID: "bernd",
			Text:       "Hello",
			MediaURL:   "uploads/pic.png",
		})
		require.NoError(t, err)
		require.NotEmpty(t, msg.ID)
		assert.False(t, msg.CreatedAt.IsZero())

		got, err := store.Between(ctx, "alice", "bernd")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, msg.ID, got[0].ID)
		assert.Equal(t, "alice", got[0].SenderID)
		assert.Equal(t, "bernd", got[0].ReceiverID)
		assert.Equal(t, "Hello", got[0].Text)
		assert.Equal(t, "uploads/pic.png", got[0].MediaURL)
		assert.WithinDuration(t, msg.CreatedAt, got[0].CreatedAt, time.Millisecond)
	})

	t.Run("Between preserves creation order for sub-second inserts", func(t *testing.T) {
		// Rapid inserts land in the same second with differing fractional
		// parts. Chronological order must survive the roundtrip even when
		// one timestamp has fewer fractional digits than another.
		texts := []string{"first", "second", "third", "fourth", "fifth"}
		for _, text := range texts {
			_, err := store.Insert(ctx, domain.MessageDraft{
				SenderID:   "carla",
				ReceiverID: "dave",
				Text:       text,
			})
			require.NoError(t, err)
		}

		got, err := store.Between(ctx, "carla", "dave")
		require.NoError(t, err)
		require.Len(t, got, len(texts))
		for i, text := range texts {
			assert.Equal(t, text, got[i].Text)
		}
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt.Before(got[i-1].CreatedAt),
				"timestamps must be non-decreasing in creation order")
		}
	})

	t.Run("Involving spans both directions and excludes other pairs", func(t *testing.T) {
		_, err := store.Insert(ctx, domain.MessageDraft{SenderID: "erik", ReceiverID: "fay", Text: "to fay"})
		require.NoError(t, err)
		_, err = store.Insert(ctx, domain.MessageDraft{SenderID: "fay", ReceiverID: "erik", Text: "to erik"})
		require.NoError(t, err)
		_, err = store.Insert(ctx, domain.MessageDraft{SenderID: "fay", ReceiverID: "gina", Text: "elsewhere"})
		require.NoError(t, err)

		got, err := store.Involving(ctx, "erik")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "to fay", got[0].Text)
		assert.Equal(t, "to erik", got[1].Text)
	})
}
