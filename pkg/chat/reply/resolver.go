// Package reply resolves reply links into the shapes the API and events use.
package reply

import (
	"context"
	"fmt"
	"time"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Preview is the parent snapshot stored with a reply link.
type Preview struct {
	Content     string
	AuthorId    *uuid.UUID
	AuthorAlias *string
	CreatedAt   *time.Time
}

type Info struct {
	ChildMessageId  uuid.UUID
	ParentMessageId *uuid.UUID
	RoomId          uuid.UUID
	ParentPreview   *Preview // nil when no preview content was captured
	CreatedAt       time.Time
}

type Child struct {
	MessageId uuid.UUID
	CreatedAt time.Time
}

type Children struct {
	ParentMessageId uuid.UUID
	ReplyCount      int
	Replies         []Child
}

type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInfo returns nil when child is not a reply.
func (r *Resolver) ResolveInfo(ctx context.Context, uow unitofwork.UnitOfWork, childId uuid.UUID) (*Info, error) {
	link, err := uow.ReplyRepository().GetByChild(ctx, childId)
	if err != nil {
		return nil, fmt.Errorf("get reply link: %w", err)
	}
	if link == nil {
		return nil, nil
	}
	return ToInfo(link), nil
}

func (r *Resolver) ResolveChildren(ctx context.Context, uow unitofwork.UnitOfWork, parentId uuid.UUID) (*Children, error) {
	links, err := uow.ReplyRepository().FindByParent(ctx, parentId)
	if err != nil {
		return nil, fmt.Errorf("find replies: %w", err)
	}
	return &Children{
		ParentMessageId: parentId,
		ReplyCount:      len(links),
		Replies: lo.Map(links, func(l *entity.ReplyLink, _ int) Child {
			return Child{MessageId: l.ChildMessageId, CreatedAt: l.CreatedAt}
		}),
	}, nil
}

// ResolveRoomMetadata maps each reply in the room, by child id, to its info.
func (r *Resolver) ResolveRoomMetadata(ctx context.Context, uow unitofwork.UnitOfWork, roomId uuid.UUID) (map[uuid.UUID]*Info, error) {
	links, err := uow.ReplyRepository().FindByRoom(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("find room replies: %w", err)
	}
	return lo.SliceToMap(links, func(l *entity.ReplyLink) (uuid.UUID, *Info) {
		return l.ChildMessageId, ToInfo(l)
	}), nil
}

// Link persists child as a reply to parent, snapshotting the parent's
// current content, author and timestamp. The snapshot is never refreshed.
func (r *Resolver) Link(ctx context.Context, uow unitofwork.UnitOfWork, roomId uuid.UUID, child, parent *entity.Message) (*entity.ReplyLink, error) {
	parentId := parent.Id
	authorId := parent.UserId
	parentCreatedAt := parent.CreatedAt

	link := &entity.ReplyLink{
		ChildMessageId:    child.Id,
		ParentMessageId:   &parentId,
		RoomId:            roomId,
		ParentAuthorId:    &authorId,
		ParentAuthorAlias: parent.Alias,
		ParentCreatedAt:   &parentCreatedAt,
		CreatedAt:         time.Now().UTC(),
	}
	if parent.Content != nil && *parent.Content != "" {
		preview := entity.TruncatePreview(*parent.Content)
		link.ParentContentPreview = &preview
	}

	if err := uow.ReplyRepository().Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Resolver) CountChildren(ctx context.Context, uow unitofwork.UnitOfWork, parentId uuid.UUID) (int64, error) {
	count, err := uow.ReplyRepository().CountByParent(ctx, parentId)
	if err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}

func ToInfo(link *entity.ReplyLink) *Info {
	info := &Info{
		ChildMessageId:  link.ChildMessageId,
		ParentMessageId: link.ParentMessageId,
		RoomId:          link.RoomId,
		CreatedAt:       link.CreatedAt,
	}
	if link.ParentContentPreview != nil && *link.ParentContentPreview != "" {
		info.ParentPreview = &Preview{
			Content:     *link.ParentContentPreview,
			AuthorId:    link.ParentAuthorId,
			AuthorAlias: link.ParentAuthorAlias,
			CreatedAt:   link.ParentCreatedAt,
		}
	}
	return info
}
