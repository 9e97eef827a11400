// Package relay implements the translation-normalizing message relay: it
// canonicalizes outgoing text into the pivot language, persists it, and
// hands delivery off to the live-channel plane.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"linguachat/internal/domain"
	"linguachat/internal/pubsub"
	"linguachat/internal/translate"
)

// SendRequest is one outgoing message submitted on behalf of a sender.
type SendRequest struct {
	SenderID   string
	ReceiverID string
	Text       string
	MediaURL   string
}

// Relay orchestrates canonicalization, persistence, and delivery dispatch
// for outgoing messages. It holds no mutable state of its own; concurrent
// sends are independent.
type Relay struct {
	users      domain.UserDirectory
	store      domain.MessageStore
	translator translate.Translator
	publisher  pubsub.Publisher
	log        *slog.Logger
}

// New creates a relay with its collaborators.
func New(users domain.UserDirectory, store domain.MessageStore, translator translate.Translator, publisher pubsub.Publisher) *Relay {
	return &Relay{
		users:      users,
		store:      store,
		translator: translator,
		publisher:  publisher,
		log:        slog.Default().With("service", "relay"),
	}
}

// Send validates the request, normalizes the text into the pivot language,
// persists the message, and dispatches a delivery event for the recipient's
// live channel. Translation failures degrade to the original text and never
// fail the send; only validation and persistence errors are returned.
func (r *Relay) Send(ctx context.Context, req SendRequest) (*domain.Message, error) {
	draft, err := domain.NewMessageDraft(req.SenderID, req.ReceiverID, req.Text, req.MediaURL)
	if err != nil {
		sendsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}

	sender, err := r.users.FindByID(ctx, req.SenderID)
	if err != nil {
		sendsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	if _, err := r.users.FindByID(ctx, req.ReceiverID); err != nil {
		sendsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, fmt.Errorf("resolve receiver: %w", err)
	}

	draft.Text = r.canonicalize(ctx, sender, draft.Text)

	// The write finishes even if the caller gives up mid-flight: a
	// translated-but-unstored message would otherwise be lost in an
	// ambiguous state.
	msg, err := r.store.Insert(context.WithoutCancel(ctx), draft)
	if err != nil {
		sendsTotal.WithLabelValues(outcomeFailed).Inc()
		return nil, fmt.Errorf("persist message: %w", err)
	}
	sendsTotal.WithLabelValues(outcomeSent).Inc()

	// Phase 2: delivery is dispatched, not awaited. Its failure is logged
	// and dropped; the recipient recovers via history fetch on reconnect.
	go r.dispatchDelivery(msg)

	return msg, nil
}

// canonicalize translates text into the pivot language when the sender
// writes in another supported language. On any gateway failure the
// original text is kept unchanged.
func (r *Relay) canonicalize(ctx context.Context, sender *domain.User, text string) string {
	source := domain.ResolveLanguage(sender.PreferredLanguage)
	if domain.IsPivot(source) || text == "" {
		return text
	}

	translated, err := r.translator.Translate(ctx, text, domain.LanguageCode(source), domain.LanguageCode(domain.Pivot))
	if err != nil {
		translationFallbacks.Inc()
		if errors.Is(err, translate.ErrUnavailable) {
			r.log.Warn("Translation provider unavailable, storing original text",
				"sender_id", sender.ID,
				"source_lang", domain.LanguageCode(source),
				"error", err)
		} else {
			r.log.Warn("Translation failed, storing original text",
				"sender_id", sender.ID,
				"source_lang", domain.LanguageCode(source),
				"error", err)
		}
		return text
	}
	return translated
}

func (r *Relay) dispatchDelivery(msg *domain.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("Failed to marshal message for delivery", "message_id", msg.ID, "error", err)
		return
	}

	event := pubsub.Message{
		Topic:   pubsub.TopicMessageDelivered,
		UserID:  msg.ReceiverID,
		Payload: payload,
	}
	if err := r.publisher.Publish(context.Background(), event); err != nil {
		r.log.Error("Failed to publish delivery event",
			"message_id", msg.ID,
			"receiver_id", msg.ReceiverID,
			"error", err)
	}
}

// FetchHistory returns every message exchanged between the pair in creation
// order. Text comes back in the pivot language; render-time translation is
// the caller's concern.
func (r *Relay) FetchHistory(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	if userA == "" || userB == "" {
		return nil, fmt.Errorf("%w: both participants are required", domain.ErrInvalidRequest)
	}
	messages, err := r.store.Between(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return messages, nil
}
