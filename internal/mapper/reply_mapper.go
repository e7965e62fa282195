package mapper

import (
	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/model"
)

type ReplyMapper struct{}

func NewReplyMapper() *ReplyMapper {
	return &ReplyMapper{}
}

func (m *ReplyMapper) ToEntity(r *model.RoomMessageReply) *entity.ReplyLink {
	if r == nil {
		return nil
	}
	return &entity.ReplyLink{
		ChildMessageId:       r.ChildMessageId,
		ParentMessageId:      r.ParentMessageId,
		RoomId:               r.RoomId,
		ParentContentPreview: r.ParentContentPreview,
		ParentAuthorId:       r.ParentAuthorId,
		ParentAuthorAlias:    r.ParentAuthorAlias,
		ParentCreatedAt:      r.ParentCreatedAt,
		CreatedAt:            r.CreatedAt,
	}
}

func (m *ReplyMapper) ToModel(r *entity.ReplyLink) *model.RoomMessageReply {
	if r == nil {
		return nil
	}
	return &model.RoomMessageReply{
		ChildMessageId:       r.ChildMessageId,
		ParentMessageId:      r.ParentMessageId,
		RoomId:               r.RoomId,
		ParentContentPreview: r.ParentContentPreview,
		ParentAuthorId:       r.ParentAuthorId,
		ParentAuthorAlias:    r.ParentAuthorAlias,
		ParentCreatedAt:      r.ParentCreatedAt,
		CreatedAt:            r.CreatedAt,
	}
}

func (m *ReplyMapper) ToEntities(models []*model.RoomMessageReply) []*entity.ReplyLink {
	entities := make([]*entity.ReplyLink, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}
