// Package notifier fans chat events out to every member of a room.
package notifier

import (
	"context"
	"time"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/pkg/logger"
	"chat-reactions-be/pkg/bus"
	"chat-reactions-be/pkg/events"
	"chat-reactions-be/pkg/metrics"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const module = "NOTIFIER"

type Options struct {
	Concurrency int
	Timeout     time.Duration
}

// Notifier publishes one event per room member. Delivery is best effort:
// failures are logged and counted, never returned, and nothing is retried.
type Notifier struct {
	publisher bus.Publisher
	logger    logger.ILogger
	metrics   *metrics.Metrics
	opts      Options
}

func New(publisher bus.Publisher, log logger.ILogger, m *metrics.Metrics, opts Options) *Notifier {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Notifier{publisher: publisher, logger: log, metrics: m, opts: opts}
}

func (n *Notifier) ReactionCreated(ctx context.Context, room *entity.Room, reaction *entity.Reaction) {
	createdAt := reaction.CreatedAt
	payload := events.ReactionPayload{
		Emoji:     reaction.Emoji,
		UserId:    reaction.UserId,
		CreatedAt: &createdAt,
		RoomId:    room.Id,
		MessageId: reaction.MessageId,
	}
	n.fanOut(ctx, room, events.ReactionCreatedName, func(member uuid.UUID) (events.Event, error) {
		return events.NewReactionCreated(payload, room.TenantId, member)
	})
}

func (n *Notifier) ReactionDeleted(ctx context.Context, room *entity.Room, messageId, userId uuid.UUID, emoji string) {
	payload := events.ReactionPayload{
		Emoji:     emoji,
		UserId:    userId,
		RoomId:    room.Id,
		MessageId: messageId,
	}
	n.fanOut(ctx, room, events.ReactionDeletedName, func(member uuid.UUID) (events.Event, error) {
		return events.NewReactionDeleted(payload, room.TenantId, member)
	})
}

func (n *Notifier) ReplyCreated(ctx context.Context, room *entity.Room, link *entity.ReplyLink, replyCount int64) {
	payload := events.ReplyPayload{
		RoomId:         room.Id,
		ChildMessageId: link.ChildMessageId,
		ReplyCount:     replyCount,
		CreatedAt:      link.CreatedAt,
	}
	if link.ParentMessageId != nil {
		payload.ParentMessageId = *link.ParentMessageId
	}
	// The preview travels even when the parent had no text.
	payload.ParentPreview = &events.PreviewPayload{
		AuthorId:    link.ParentAuthorId,
		AuthorAlias: link.ParentAuthorAlias,
		CreatedAt:   link.ParentCreatedAt,
	}
	if link.ParentContentPreview != nil && *link.ParentContentPreview != "" {
		content := *link.ParentContentPreview
		payload.ParentPreview.Content = &content
	}
	n.fanOut(ctx, room, events.ReplyCreatedName, func(member uuid.UUID) (events.Event, error) {
		return events.NewReplyCreated(payload, room.TenantId, member)
	})
}

// fanOut publishes concurrently to the members materialised from room and
// waits for every publish to finish or time out. The request context's
// cancellation is dropped: the mutation is already committed.
func (n *Notifier) fanOut(ctx context.Context, room *entity.Room, name string, build func(member uuid.UUID) (events.Event, error)) {
	members := lo.Uniq(lo.Map(room.Users, func(u entity.RoomUser, _ int) uuid.UUID {
		return u.Id
	}))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.opts.Timeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(n.opts.Concurrency)

	for _, member := range members {
		member := member
		g.Go(func() error {
			event, err := build(member)
			if err != nil {
				n.logger.Error(module, "Failed to build event", map[string]interface{}{
					"event":     name,
					"room_uuid": room.Id.String(),
					"user_uuid": member.String(),
					"error":     err,
				})
				return nil
			}

			err = n.publisher.Publish(ctx, event)
			n.record(name, err)
			if err != nil {
				n.logger.Warn(module, "Failed to publish event", map[string]interface{}{
					"event":       name,
					"routing_key": event.RoutingKey(),
					"user_uuid":   member.String(),
					"error":       err.Error(),
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	n.logger.Debug(module, "Event fan-out finished", map[string]interface{}{
		"event":     name,
		"room_uuid": room.Id.String(),
		"members":   len(members),
	})
}

func (n *Notifier) record(name string, err error) {
	if n.metrics == nil {
		return
	}
	if err != nil {
		n.metrics.EventsFailed.WithLabelValues(name).Inc()
		return
	}
	n.metrics.EventsPublished.WithLabelValues(name).Inc()
}
