package model

import (
	"time"

	"github.com/google/uuid"
)

// Tables owned by the chat daemon. They are only migrated by tests.

type ChatdRoom struct {
	Id       uuid.UUID          `gorm:"column:uuid;type:uuid;primaryKey"`
	Name     string             `gorm:"type:text"`
	TenantId uuid.UUID          `gorm:"column:tenant_uuid;type:uuid;not null"`
	Users    []ChatdRoomUser    `gorm:"foreignKey:RoomId;references:Id"`
	Messages []ChatdRoomMessage `gorm:"foreignKey:RoomId;references:Id"`
}

func (ChatdRoom) TableName() string {
	return "chatd_room"
}

type ChatdRoomUser struct {
	RoomId   uuid.UUID `gorm:"column:room_uuid;type:uuid;primaryKey"`
	Id       uuid.UUID `gorm:"column:uuid;type:uuid;primaryKey"`
	TenantId uuid.UUID `gorm:"column:tenant_uuid;type:uuid;primaryKey"`
	WazoId   uuid.UUID `gorm:"column:wazo_uuid;type:uuid;primaryKey"`
}

func (ChatdRoomUser) TableName() string {
	return "chatd_room_user"
}

type ChatdRoomMessage struct {
	Id        uuid.UUID `gorm:"column:uuid;type:uuid;primaryKey"`
	RoomId    uuid.UUID `gorm:"column:room_uuid;type:uuid;not null"`
	Content   *string   `gorm:"type:text"`
	Alias     *string   `gorm:"type:varchar(256)"`
	UserId    uuid.UUID `gorm:"column:user_uuid;type:uuid;not null"`
	TenantId  uuid.UUID `gorm:"column:tenant_uuid;type:uuid;not null"`
	WazoId    uuid.UUID `gorm:"column:wazo_uuid;type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ChatdRoomMessage) TableName() string {
	return "chatd_room_message"
}
