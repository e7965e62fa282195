// Package reaction turns stored reaction rows into per-emoji summaries.
package reaction

import (
	"time"

	"chat-reactions-be/internal/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Detail struct {
	UserId    uuid.UUID
	CreatedAt time.Time
}

type Summary struct {
	Emoji       string
	Count       int
	UserIds     []uuid.UUID
	ReactedByMe bool
	Details     []Detail
}

// Aggregate groups reactions by emoji. Groups keep the order in which each
// emoji first appears in reactions, and user ids keep first-seen order
// inside a group. The result is never nil.
func Aggregate(reactions []*entity.Reaction, currentUser uuid.UUID) []Summary {
	order := make([]string, 0)
	groups := make(map[string]*Summary)

	for _, r := range reactions {
		if r == nil {
			continue
		}
		g, ok := groups[r.Emoji]
		if !ok {
			g = &Summary{Emoji: r.Emoji, UserIds: []uuid.UUID{}, Details: []Detail{}}
			groups[r.Emoji] = g
			order = append(order, r.Emoji)
		}
		if lo.Contains(g.UserIds, r.UserId) {
			continue
		}
		g.UserIds = append(g.UserIds, r.UserId)
		g.Details = append(g.Details, Detail{UserId: r.UserId, CreatedAt: r.CreatedAt})
	}

	return lo.Map(order, func(emoji string, _ int) Summary {
		g := groups[emoji]
		g.Count = len(g.UserIds)
		g.ReactedByMe = lo.Contains(g.UserIds, currentUser)
		return *g
	})
}

// AggregateByMessage aggregates a batch of reactions per message. Every id
// in messageIds gets an entry, empty when the message has no reactions.
func AggregateByMessage(reactions []*entity.Reaction, messageIds []uuid.UUID, currentUser uuid.UUID) map[uuid.UUID][]Summary {
	byMessage := lo.GroupBy(lo.Compact(reactions), func(r *entity.Reaction) uuid.UUID {
		return r.MessageId
	})

	result := make(map[uuid.UUID][]Summary, len(messageIds))
	for _, id := range messageIds {
		result[id] = Aggregate(byMessage[id], currentUser)
	}
	return result
}
