package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomMessageReaction struct {
	MessageId uuid.UUID `gorm:"column:message_uuid;type:uuid;primaryKey;index:idx_chatd_reaction_message_uuid"`
	UserId    uuid.UUID `gorm:"column:user_uuid;type:uuid;primaryKey;index:idx_chatd_reaction_user_uuid"`
	Emoji     string    `gorm:"type:varchar(10);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

func (RoomMessageReaction) TableName() string {
	return "chatd_room_message_reaction"
}
