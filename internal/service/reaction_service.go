package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"chat-reactions-be/internal/dto"
	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/unitofwork"
	"chat-reactions-be/pkg/chat/notifier"
	"chat-reactions-be/pkg/chat/reaction"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type IReactionService interface {
	GetReactions(ctx context.Context, tenantId, userId, roomId, messageId uuid.UUID) (*dto.MessageReactionsResponse, error)
	GetRoomReactions(ctx context.Context, tenantId, userId, roomId uuid.UUID) (*dto.RoomReactionsResponse, error)
	AddReaction(ctx context.Context, tenantId, userId, roomId, messageId uuid.UUID, emoji string) (*dto.ReactionResponse, error)
	RemoveReaction(ctx context.Context, tenantId, userId, roomId, messageId uuid.UUID, emoji string) error
}

type reactionService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   *notifier.Notifier
}

func NewReactionService(uowFactory unitofwork.RepositoryFactory, n *notifier.Notifier) IReactionService {
	return &reactionService{
		uowFactory: uowFactory,
		notifier:   n,
	}
}

func (s *reactionService) GetReactions(ctx context.Context, tenantId, userId, roomId, messageId uuid.UUID) (res *dto.MessageReactionsResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReactionService.GetReactions", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
		attribute.String("message_uuid", messageId.String()),
	))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := getRoom(ctx, uow, tenantId, roomId)
	if err != nil {
		return nil, err
	}
	if _, err = findMessage(room, messageId); err != nil {
		return nil, err
	}

	reactions, err := uow.ReactionRepository().FindByMessage(ctx, messageId)
	if err != nil {
		return nil, err
	}

	return &dto.MessageReactionsResponse{
		MessageId: messageId,
		Reactions: toSummaryResponses(reaction.Aggregate(reactions, userId)),
	}, nil
}

// GetRoomReactions returns an entry for every message in the room, empty
// for messages nobody reacted to.
func (s *reactionService) GetRoomReactions(ctx context.Context, tenantId, userId, roomId uuid.UUID) (res *dto.RoomReactionsResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReactionService.GetRoomReactions", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
	))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := getRoom(ctx, uow, tenantId, roomId)
	if err != nil {
		return nil, err
	}

	messageIds := lo.Map(room.Messages, func(m entity.Message, _ int) uuid.UUID { return m.Id })
	reactions := []*entity.Reaction{}
	if len(messageIds) > 0 {
		reactions, err = uow.ReactionRepository().FindByRoom(ctx, roomId)
		if err != nil {
			return nil, err
		}
	}

	byMessage := reaction.AggregateByMessage(reactions, messageIds, userId)
	result := make(map[string][]dto.ReactionSummaryResponse, len(byMessage))
	for id, summaries := range byMessage {
		result[id.String()] = toSummaryResponses(summaries)
	}

	return &dto.RoomReactionsResponse{RoomId: roomId, Reactions: result}, nil
}

func (s *reactionService) AddReaction(ctx context.Context, tenantId, userId, roomId, messageId uuid.UUID, emoji string) (res *dto.ReactionResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReactionService.AddReaction", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
		attribute.String("message_uuid", messageId.String()),
	))
	defer func() { endSpan(span, err) }()

	if err = validateEmoji(emoji); err != nil {
		return nil, err
	}

	var (
		room    *entity.Room
		created *entity.Reaction
	)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = uow.Run(ctx, func(tx unitofwork.UnitOfWork) error {
		r, err := getRoom(ctx, tx, tenantId, roomId)
		if err != nil {
			return err
		}
		if err := requireMember(r, userId); err != nil {
			return err
		}
		if _, err := findMessage(r, messageId); err != nil {
			return err
		}

		existing, err := tx.ReactionRepository().Get(ctx, messageId, userId, emoji)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ReactionAlreadyExists(messageId, userId, emoji)
		}

		created, err = tx.ReactionRepository().Create(ctx, messageId, userId, emoji)
		if errors.Is(err, contract.ErrDuplicateKey) {
			// lost a race with a concurrent identical request
			return apperror.ReactionAlreadyExists(messageId, userId, emoji)
		}
		if err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ReactionCreated(ctx, room, created)

	return &dto.ReactionResponse{
		MessageId: created.MessageId,
		UserId:    created.UserId,
		Emoji:     created.Emoji,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (s *reactionService) RemoveReaction(ctx context.Context, tenantId, userId, roomId, messageId uuid.UUID, emoji string) (err error) {
	ctx, span := tracer.Start(ctx, "ReactionService.RemoveReaction", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
		attribute.String("message_uuid", messageId.String()),
	))
	defer func() { endSpan(span, err) }()

	var room *entity.Room
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = uow.Run(ctx, func(tx unitofwork.UnitOfWork) error {
		r, err := getRoom(ctx, tx, tenantId, roomId)
		if err != nil {
			return err
		}
		if err := requireMember(r, userId); err != nil {
			return err
		}
		if _, err := findMessage(r, messageId); err != nil {
			return err
		}

		existing, err := tx.ReactionRepository().Get(ctx, messageId, userId, emoji)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.ReactionNotFound(messageId, userId, emoji)
		}

		if err := tx.ReactionRepository().Delete(ctx, messageId, userId, emoji); err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.ReactionDeleted(ctx, room, messageId, userId, emoji)
	return nil
}

func validateEmoji(emoji string) error {
	if emoji == "" || utf8.RuneCountInString(emoji) > entity.EmojiMaxLength {
		return apperror.InvalidData("emoji must be between 1 and 10 characters", map[string]interface{}{
			"emoji": emoji,
		})
	}
	return nil
}

func toSummaryResponses(summaries []reaction.Summary) []dto.ReactionSummaryResponse {
	return lo.Map(summaries, func(s reaction.Summary, _ int) dto.ReactionSummaryResponse {
		return dto.ReactionSummaryResponse{
			Emoji:       s.Emoji,
			Count:       s.Count,
			UserIds:     s.UserIds,
			ReactedByMe: s.ReactedByMe,
			Details: lo.Map(s.Details, func(d reaction.Detail, _ int) dto.ReactionDetailResponse {
				return dto.ReactionDetailResponse{UserId: d.UserId, CreatedAt: d.CreatedAt}
			}),
		}
	})
}
