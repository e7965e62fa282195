package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=10"`
}

type ReactionResponse struct {
	MessageId uuid.UUID `json:"message_uuid"`
	UserId    uuid.UUID `json:"user_uuid"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

type ReactionDetailResponse struct {
	UserId    uuid.UUID `json:"user_uuid"`
	CreatedAt time.Time `json:"created_at"`
}

type ReactionSummaryResponse struct {
	Emoji       string                   `json:"emoji"`
	Count       int                      `json:"count"`
	UserIds     []uuid.UUID              `json:"user_uuids"`
	ReactedByMe bool                     `json:"reacted_by_me"`
	Details     []ReactionDetailResponse `json:"details"`
}

type MessageReactionsResponse struct {
	MessageId uuid.UUID                 `json:"message_uuid"`
	Reactions []ReactionSummaryResponse `json:"reactions"`
}

// RoomReactionsResponse keys reactions by message uuid string.
type RoomReactionsResponse struct {
	RoomId    uuid.UUID                            `json:"room_uuid"`
	Reactions map[string][]ReactionSummaryResponse `json:"reactions"`
}
