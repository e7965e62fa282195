package implementation

import (
	"context"
	"errors"
	"time"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/mapper"
	"chat-reactions-be/internal/model"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/scope"
	"chat-reactions-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReplyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReplyMapper
}

func NewReplyRepository(db *gorm.DB) contract.ReplyRepository {
	return &ReplyRepositoryImpl{
		db:     db,
		mapper: mapper.NewReplyMapper(),
	}
}

func (r *ReplyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReplyRepositoryImpl) GetByChild(ctx context.Context, childId uuid.UUID) (*entity.ReplyLink, error) {
	var m model.RoomMessageReply
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByChildMessageID{ChildMessageID: childId})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReplyRepositoryImpl) FindByParent(ctx context.Context, parentId uuid.UUID) ([]*entity.ReplyLink, error) {
	return r.FindAll(ctx, specification.ByParentMessageID{ParentMessageID: parentId})
}

func (r *ReplyRepositoryImpl) CountByParent(ctx context.Context, parentId uuid.UUID) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RoomMessageReply{}),
		specification.ByParentMessageID{ParentMessageID: parentId},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReplyRepositoryImpl) FindByRoom(ctx context.Context, roomId uuid.UUID) ([]*entity.ReplyLink, error) {
	return r.FindAll(ctx, specification.ByRoomID{RoomID: roomId})
}

// FindAll orders by created_at ASC.
func (r *ReplyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReplyLink, error) {
	var models []*model.RoomMessageReply
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByCreatedAsc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReplyRepositoryImpl) Create(ctx context.Context, link *entity.ReplyLink) error {
	m := r.mapper.ToModel(link)
	if m.ParentContentPreview != nil {
		preview := entity.TruncatePreview(*m.ParentContentPreview)
		m.ParentContentPreview = &preview
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateCreateError(err)
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReplyRepositoryImpl) Delete(ctx context.Context, childId uuid.UUID) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByChildMessageID{ChildMessageID: childId})
	return query.Delete(&model.RoomMessageReply{}).Error
}

func (r *ReplyRepositoryImpl) DeleteOrphans(ctx context.Context) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.RepliesWithoutChild{})
	result := query.Delete(&model.RoomMessageReply{})
	return result.RowsAffected, result.Error
}

// DetachMissingParents nulls parent_message_uuid where the parent message is
// gone. The preview snapshot is kept.
func (r *ReplyRepositoryImpl) DetachMissingParents(ctx context.Context) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RoomMessageReply{}),
		specification.RepliesWithMissingParent{},
	)
	result := query.Update("parent_message_uuid", nil)
	return result.RowsAffected, result.Error
}
