package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	reactionTable = "chatd_room_message_reaction"
	messageTable  = "chatd_room_message"
)

type ByMessageID struct {
	MessageID uuid.UUID
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(reactionTable+".message_uuid = ?", s.MessageID)
}

// ByReactionKey matches the full (message, user, emoji) identity.
type ByReactionKey struct {
	MessageID uuid.UUID
	UserID    uuid.UUID
	Emoji     string
}

func (s ByReactionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(reactionTable+".message_uuid = ? AND "+reactionTable+".user_uuid = ? AND "+reactionTable+".emoji = ?",
		s.MessageID, s.UserID, s.Emoji)
}

// ReactionsInRoom restricts reactions to messages that belong to the room.
type ReactionsInRoom struct {
	RoomID uuid.UUID
}

func (s ReactionsInRoom) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN "+messageTable+" ON "+messageTable+".uuid = "+reactionTable+".message_uuid").
		Where(messageTable+".room_uuid = ?", s.RoomID)
}

// ReactionsWithoutMessage selects reactions whose message no longer exists.
type ReactionsWithoutMessage struct{}

func (s ReactionsWithoutMessage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_uuid NOT IN (?)", db.Session(&gorm.Session{NewDB: true}).Table(messageTable).Select("uuid"))
}
