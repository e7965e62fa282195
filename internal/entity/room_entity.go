package entity

import (
	"time"

	"github.com/google/uuid"
)

// Room, RoomUser and Message mirror the chat daemon's own tables. They are
// read here, never written.
type Room struct {
	Id       uuid.UUID
	TenantId uuid.UUID
	Name     string
	Users    []RoomUser
	Messages []Message
}

type RoomUser struct {
	Id       uuid.UUID
	TenantId uuid.UUID
	WazoId   uuid.UUID
}

type Message struct {
	Id        uuid.UUID
	RoomId    uuid.UUID
	Content   *string
	Alias     *string
	UserId    uuid.UUID
	TenantId  uuid.UUID
	WazoId    uuid.UUID
	CreatedAt time.Time
}

func (r *Room) HasUser(userId uuid.UUID) bool {
	for _, u := range r.Users {
		if u.Id == userId {
			return true
		}
	}
	return false
}

// FindMessage scans the room's messages for id.
func (r *Room) FindMessage(id uuid.UUID) (*Message, bool) {
	for i := range r.Messages {
		if r.Messages[i].Id == id {
			return &r.Messages[i], true
		}
	}
	return nil, false
}
