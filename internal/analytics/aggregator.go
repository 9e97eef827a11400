// Package analytics derives per-user conversation statistics from the
// message store. Every computation is a fresh, read-only pass; nothing is
// cached between calls.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/samber/lo"

	"linguachat/internal/domain"
)

// PartnerStat is one conversation partner and how many messages the pair
// has exchanged in either direction.
type PartnerStat struct {
	UserID       string `json:"userId"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	MessageCount int    `json:"messageCount"`
}

// Stats is the aggregate view of one user's conversations.
type Stats struct {
	TotalMessages int           `json:"totalMessages"`
	TotalChats    int           `json:"totalChats"`
	MostChatted   []PartnerStat `json:"mostChattedFriends"`
}

// Aggregator computes conversation statistics on demand.
type Aggregator struct {
	store domain.MessageStore
	users domain.UserDirectory
	log   *slog.Logger
}

// New creates an aggregator reading from the given store and directory.
func New(store domain.MessageStore, users domain.UserDirectory) *Aggregator {
	return &Aggregator{
		store: store,
		users: users,
		log:   slog.Default().With("service", "analytics"),
	}
}

// ComputeStats derives the user's totals and partner ranking from the
// store's current contents. Partners with equal message counts are ordered
// by partner id ascending, so the ranking is stable and reproducible.
func (a *Aggregator) ComputeStats(ctx context.Context, userID string) (*Stats, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	messages, err := a.store.Involving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	counts := make(map[string]int)
	for _, msg := range messages {
		other := msg.SenderID
		if other == userID {
			other = msg.ReceiverID
		}
		counts[other]++
	}

	partners := lo.MapToSlice(counts, func(partnerID string, count int) PartnerStat {
		stat := PartnerStat{UserID: partnerID, MessageCount: count}
		// Display attributes are resolved once per partner; a vanished
		// account degrades to an id-only entry rather than failing the
		// whole computation.
		user, err := a.users.FindByID(ctx, partnerID)
		switch {
		case err == nil:
			stat.FullName = user.FullName
			stat.Email = user.Email
		case errors.Is(err, domain.ErrNotFound):
			a.log.Debug("Partner no longer resolvable", "partner_id", partnerID)
		default:
			a.log.Warn("Partner lookup failed", "partner_id", partnerID, "error", err)
		}
		return stat
	})

	slices.SortFunc(partners, func(x, y PartnerStat) int {
		if x.MessageCount != y.MessageCount {
			return y.MessageCount - x.MessageCount
		}
		return strings.Compare(x.UserID, y.UserID)
	})

	return &Stats{
		TotalMessages: len(messages),
		TotalChats:    len(counts),
		MostChatted:   partners,
	}, nil
}
