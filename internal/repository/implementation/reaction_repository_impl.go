package implementation

import (
	"context"
	"errors"
	"time"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/mapper"
	"chat-reactions-be/internal/model"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const reactionCreatedAtColumn = "chatd_room_message_reaction.created_at"

type ReactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReactionMapper
}

func NewReactionRepository(db *gorm.DB) contract.ReactionRepository {
	return &ReactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewReactionMapper(),
	}
}

func (r *ReactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReactionRepositoryImpl) Get(ctx context.Context, messageId, userId uuid.UUID, emoji string) (*entity.Reaction, error) {
	var m model.RoomMessageReaction
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByReactionKey{MessageID: messageId, UserID: userId, Emoji: emoji},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReactionRepositoryImpl) FindByMessage(ctx context.Context, messageId uuid.UUID) ([]*entity.Reaction, error) {
	return r.FindAll(ctx,
		specification.ByMessageID{MessageID: messageId},
		specification.OrderBy{Field: reactionCreatedAtColumn},
	)
}

// FindByRoom filters through the join on the room's messages, so the query
// binds one parameter however many messages the room holds.
func (r *ReactionRepositoryImpl) FindByRoom(ctx context.Context, roomId uuid.UUID) ([]*entity.Reaction, error) {
	return r.FindAll(ctx,
		specification.ReactionsInRoom{RoomID: roomId},
		specification.OrderBy{Field: reactionCreatedAtColumn},
	)
}

func (r *ReactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error) {
	var models []*model.RoomMessageReaction
	query := r.db.WithContext(ctx).
		Model(&model.RoomMessageReaction{}).
		Select("chatd_room_message_reaction.*")
	query = r.applySpecifications(query, specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReactionRepositoryImpl) Create(ctx context.Context, messageId, userId uuid.UUID, emoji string) (*entity.Reaction, error) {
	m := &model.RoomMessageReaction{
		MessageId: messageId,
		UserId:    userId,
		Emoji:     emoji,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translateCreateError(err)
	}
	return r.mapper.ToEntity(m), nil
}

func (r *ReactionRepositoryImpl) Delete(ctx context.Context, messageId, userId uuid.UUID, emoji string) error {
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByReactionKey{MessageID: messageId, UserID: userId, Emoji: emoji},
	)
	return query.Delete(&model.RoomMessageReaction{}).Error
}

func (r *ReactionRepositoryImpl) DeleteOrphans(ctx context.Context) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ReactionsWithoutMessage{})
	result := query.Delete(&model.RoomMessageReaction{})
	return result.RowsAffected, result.Error
}
