package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomMessageReply struct {
	ChildMessageId       uuid.UUID  `gorm:"column:child_message_uuid;type:uuid;primaryKey;index:idx_chatd_reply_child_message_uuid"`
	ParentMessageId      *uuid.UUID `gorm:"column:parent_message_uuid;type:uuid;index:idx_chatd_reply_parent_message_uuid"`
	RoomId               uuid.UUID  `gorm:"column:room_uuid;type:uuid;not null;index:idx_chatd_reply_room_uuid"`
	ParentContentPreview *string    `gorm:"type:varchar(200)"`
	ParentAuthorId       *uuid.UUID `gorm:"column:parent_author_uuid;type:uuid"`
	ParentAuthorAlias    *string    `gorm:"type:varchar(256)"`
	ParentCreatedAt      *time.Time
	CreatedAt            time.Time `gorm:"not null"`
}

func (RoomMessageReply) TableName() string {
	return "chatd_room_message_reply"
}
