package implementation

import (
	"context"
	"errors"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/mapper"
	"chat-reactions-be/internal/model"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/scope"
	"chat-reactions-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomMapper
}

func NewRoomRepository(db *gorm.DB) contract.RoomRepository {
	return &RoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomMapper(),
	}
}

func (r *RoomRepositoryImpl) Get(ctx context.Context, tenantIds []uuid.UUID, roomId uuid.UUID) (*entity.Room, error) {
	var m model.ChatdRoom
	query := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Messages", scope.OrderByCreatedAsc)
	for _, spec := range []specification.Specification{
		specification.RoomByUUID{RoomID: roomId},
		specification.ByTenantIDs{TenantIDs: tenantIds},
	} {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
