package mapper

import (
	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/model"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.ChatdRoom) *entity.Room {
	if r == nil {
		return nil
	}

	users := make([]entity.RoomUser, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, entity.RoomUser{Id: u.Id, TenantId: u.TenantId, WazoId: u.WazoId})
	}

	messages := make([]entity.Message, 0, len(r.Messages))
	for i := range r.Messages {
		messages = append(messages, *m.MessageToEntity(&r.Messages[i]))
	}

	return &entity.Room{
		Id:       r.Id,
		TenantId: r.TenantId,
		Name:     r.Name,
		Users:    users,
		Messages: messages,
	}
}

func (m *RoomMapper) MessageToEntity(msg *model.ChatdRoomMessage) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		RoomId:    msg.RoomId,
		Content:   msg.Content,
		Alias:     msg.Alias,
		UserId:    msg.UserId,
		TenantId:  msg.TenantId,
		WazoId:    msg.WazoId,
		CreatedAt: msg.CreatedAt,
	}
}
