package contract

import (
	"context"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReplyRepository interface {
	GetByChild(ctx context.Context, childId uuid.UUID) (*entity.ReplyLink, error)
	FindByParent(ctx context.Context, parentId uuid.UUID) ([]*entity.ReplyLink, error)
	CountByParent(ctx context.Context, parentId uuid.UUID) (int64, error)
	FindByRoom(ctx context.Context, roomId uuid.UUID) ([]*entity.ReplyLink, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReplyLink, error)
	Create(ctx context.Context, link *entity.ReplyLink) error
	Delete(ctx context.Context, childId uuid.UUID) error
	DeleteOrphans(ctx context.Context) (int64, error)
	DetachMissingParents(ctx context.Context) (int64, error)
}
