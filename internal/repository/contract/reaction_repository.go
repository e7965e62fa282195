package contract

import (
	"context"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReactionRepository interface {
	Get(ctx context.Context, messageId, userId uuid.UUID, emoji string) (*entity.Reaction, error)
	FindByMessage(ctx context.Context, messageId uuid.UUID) ([]*entity.Reaction, error)
	FindByRoom(ctx context.Context, roomId uuid.UUID) ([]*entity.Reaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error)
	Create(ctx context.Context, messageId, userId uuid.UUID, emoji string) (*entity.Reaction, error)
	Delete(ctx context.Context, messageId, userId uuid.UUID, emoji string) error
	DeleteOrphans(ctx context.Context) (int64, error)
}
