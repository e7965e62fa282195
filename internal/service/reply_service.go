package service

import (
	"context"
	"errors"

	"chat-reactions-be/internal/dto"
	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/unitofwork"
	"chat-reactions-be/pkg/chat/notifier"
	"chat-reactions-be/pkg/chat/reply"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type IReplyService interface {
	GetReplyInfo(ctx context.Context, tenantId, roomId, messageId uuid.UUID) (*dto.ReplyInfoResponse, error)
	GetRepliesToMessage(ctx context.Context, tenantId, roomId, messageId uuid.UUID) (*dto.MessageRepliesResponse, error)
	GetRoomReplyMetadata(ctx context.Context, tenantId, roomId uuid.UUID) (*dto.RoomReplyMetadataResponse, error)
	CreateReplyRelationship(ctx context.Context, tenantId, userId, roomId, childId, parentId uuid.UUID) (*dto.ReplyInfoResponse, error)
	RemoveReplyRelationship(ctx context.Context, tenantId, userId, roomId, childId uuid.UUID) error
}

type replyService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *reply.Resolver
	notifier   *notifier.Notifier
}

func NewReplyService(uowFactory unitofwork.RepositoryFactory, resolver *reply.Resolver, n *notifier.Notifier) IReplyService {
	return &replyService{
		uowFactory: uowFactory,
		resolver:   resolver,
		notifier:   n,
	}
}

// GetReplyInfo fails with NotAReply when the message exists but has no
// parent link.
func (s *replyService) GetReplyInfo(ctx context.Context, tenantId, roomId, messageId uuid.UUID) (res *dto.ReplyInfoResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReplyService.GetReplyInfo", trace.WithAttributes(
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

	info, err := s.resolver.ResolveInfo(ctx, uow, messageId)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperror.NotAReply(messageId)
	}
	return toReplyInfoResponse(info), nil
}

func (s *replyService) GetRepliesToMessage(ctx context.Context, tenantId, roomId, messageId uuid.UUID) (res *dto.MessageRepliesResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReplyService.GetRepliesToMessage", trace.WithAttributes(
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

	children, err := s.resolver.ResolveChildren(ctx, uow, messageId)
	if err != nil {
		return nil, err
	}

	return &dto.MessageRepliesResponse{
		ParentMessageId: children.ParentMessageId,
		ReplyCount:      children.ReplyCount,
		Replies: lo.Map(children.Replies, func(c reply.Child, _ int) dto.ReplyListItemResponse {
			return dto.ReplyListItemResponse{MessageId: c.MessageId, CreatedAt: c.CreatedAt}
		}),
	}, nil
}

// GetRoomReplyMetadata lists only the messages of the room that are replies.
func (s *replyService) GetRoomReplyMetadata(ctx context.Context, tenantId, roomId uuid.UUID) (res *dto.RoomReplyMetadataResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReplyService.GetRoomReplyMetadata", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
	))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err = getRoom(ctx, uow, tenantId, roomId); err != nil {
		return nil, err
	}

	metadata, err := s.resolver.ResolveRoomMetadata(ctx, uow, roomId)
	if err != nil {
		return nil, err
	}

	replies := make(map[string]*dto.ReplyInfoResponse, len(metadata))
	for childId, info := range metadata {
		replies[childId.String()] = toReplyInfoResponse(info)
	}
	return &dto.RoomReplyMetadataResponse{RoomId: roomId, Replies: replies}, nil
}

func (s *replyService) CreateReplyRelationship(ctx context.Context, tenantId, userId, roomId, childId, parentId uuid.UUID) (res *dto.ReplyInfoResponse, err error) {
	ctx, span := tracer.Start(ctx, "ReplyService.CreateReplyRelationship", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
		attribute.String("child_message_uuid", childId.String()),
		attribute.String("parent_message_uuid", parentId.String()),
	))
	defer func() { endSpan(span, err) }()

	var (
		room       *entity.Room
		link       *entity.ReplyLink
		replyCount int64
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
		child, err := findMessage(r, childId)
		if err != nil {
			return err
		}
		parent, err := findMessage(r, parentId)
		if err != nil {
			return err
		}
		if childId == parentId {
			return apperror.InvalidData("a message cannot reply to itself", map[string]interface{}{
				"message_uuid": childId.String(),
			})
		}

		existing, err := tx.ReplyRepository().GetByChild(ctx, childId)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ReplyAlreadyExists(childId)
		}

		link, err = s.resolver.Link(ctx, tx, r.Id, child, parent)
		if errors.Is(err, contract.ErrDuplicateKey) {
			return apperror.ReplyAlreadyExists(childId)
		}
		if err != nil {
			return err
		}

		replyCount, err = s.resolver.CountChildren(ctx, tx, parentId)
		if err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ReplyCreated(ctx, room, link, replyCount)

	return toReplyInfoResponse(reply.ToInfo(link)), nil
}

// RemoveReplyRelationship unlinks a reply from its parent. No event is
// published.
func (s *replyService) RemoveReplyRelationship(ctx context.Context, tenantId, userId, roomId, childId uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "ReplyService.RemoveReplyRelationship", trace.WithAttributes(
		attribute.String("room_uuid", roomId.String()),
		attribute.String("child_message_uuid", childId.String()),
	))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.Run(ctx, func(tx unitofwork.UnitOfWork) error {
		r, err := getRoom(ctx, tx, tenantId, roomId)
		if err != nil {
			return err
		}
		if err := requireMember(r, userId); err != nil {
			return err
		}
		if _, err := findMessage(r, childId); err != nil {
			return err
		}

		existing, err := tx.ReplyRepository().GetByChild(ctx, childId)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NotAReply(childId)
		}
		return tx.ReplyRepository().Delete(ctx, childId)
	})
}

func toReplyInfoResponse(info *reply.Info) *dto.ReplyInfoResponse {
	res := &dto.ReplyInfoResponse{
		ChildMessageId:  info.ChildMessageId,
		ParentMessageId: info.ParentMessageId,
		RoomId:          info.RoomId,
	}
	if p := info.ParentPreview; p != nil {
		res.ParentPreview = &dto.ParentPreviewResponse{
			Content:     p.Content,
			AuthorId:    p.AuthorId,
			AuthorAlias: p.AuthorAlias,
			CreatedAt:   p.CreatedAt,
		}
	}
	return res
}
