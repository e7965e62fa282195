package mapper

import (
	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/model"
)

type ReactionMapper struct{}

func NewReactionMapper() *ReactionMapper {
	return &ReactionMapper{}
}

func (m *ReactionMapper) ToEntity(r *model.RoomMessageReaction) *entity.Reaction {
	if r == nil {
		return nil
	}
	return &entity.Reaction{
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ReactionMapper) ToModel(r *entity.Reaction) *model.RoomMessageReaction {
	if r == nil {
		return nil
	}
	return &model.RoomMessageReaction{
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}

func (m *ReactionMapper) ToEntities(models []*model.RoomMessageReaction) []*entity.Reaction {
	entities := make([]*entity.Reaction, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}
