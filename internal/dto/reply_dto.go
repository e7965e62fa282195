package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReplyRequest struct {
	ParentMessageId string `json:"parent_message_uuid" validate:"required,uuid"`
}

type ParentPreviewResponse struct {
	Content     string     `json:"content"`
	AuthorId    *uuid.UUID `json:"author_uuid"`
	AuthorAlias *string    `json:"author_alias"`
	CreatedAt   *time.Time `json:"created_at"`
}

type ReplyInfoResponse struct {
	ChildMessageId  uuid.UUID              `json:"child_message_uuid"`
	ParentMessageId *uuid.UUID             `json:"parent_message_uuid"`
	RoomId          uuid.UUID              `json:"room_uuid"`
	ParentPreview   *ParentPreviewResponse `json:"parent_preview"`
}

type ReplyListItemResponse struct {
	MessageId uuid.UUID `json:"message_uuid"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageRepliesResponse struct {
	ParentMessageId uuid.UUID               `json:"parent_message_uuid"`
	ReplyCount      int                     `json:"reply_count"`
	Replies         []ReplyListItemResponse `json:"replies"`
}

// RoomReplyMetadataResponse keys reply info by child message uuid string.
type RoomReplyMetadataResponse struct {
	RoomId  uuid.UUID                     `json:"room_uuid"`
	Replies map[string]*ReplyInfoResponse `json:"replies"`
}
