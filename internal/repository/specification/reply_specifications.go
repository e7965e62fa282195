package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChildMessageID struct {
	ChildMessageID uuid.UUID
}

func (s ByChildMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("child_message_uuid = ?", s.ChildMessageID)
}

type ByParentMessageID struct {
	ParentMessageID uuid.UUID
}

func (s ByParentMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_message_uuid = ?", s.ParentMessageID)
}

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_uuid = ?", s.RoomID)
}

// RepliesWithoutChild selects links whose child message no longer exists.
type RepliesWithoutChild struct{}

func (s RepliesWithoutChild) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("child_message_uuid NOT IN (?)", db.Session(&gorm.Session{NewDB: true}).Table(messageTable).Select("uuid"))
}

// RepliesWithMissingParent selects links still pointing at a deleted parent.
type RepliesWithMissingParent struct{}

func (s RepliesWithMissingParent) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where("parent_message_uuid IS NOT NULL").
		Where("parent_message_uuid NOT IN (?)", db.Session(&gorm.Session{NewDB: true}).Table(messageTable).Select("uuid"))
}
