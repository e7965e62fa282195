package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ReactionCreatedName = "chatd_user_room_message_reaction_created"
	ReactionDeletedName = "chatd_user_room_message_reaction_deleted"
	ReplyCreatedName    = "chatd_user_room_message_reply_created"
)

// ReactionPayload is the body of reaction created/deleted events.
type ReactionPayload struct {
	Emoji     string     `json:"emoji"`
	UserId    uuid.UUID  `json:"user_uuid"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	RoomId    uuid.UUID  `json:"room_uuid"`
	MessageId uuid.UUID  `json:"message_uuid"`
}

type PreviewPayload struct {
	Content     *string    `json:"content"`
	AuthorId    *uuid.UUID `json:"author_uuid"`
	AuthorAlias *string    `json:"author_alias"`
	CreatedAt   *time.Time `json:"created_at"`
}

// ReplyPayload is the body of reply created events.
type ReplyPayload struct {
	RoomId          uuid.UUID       `json:"room_uuid"`
	ChildMessageId  uuid.UUID       `json:"child_message_uuid"`
	ParentMessageId uuid.UUID       `json:"parent_message_uuid"`
	ParentPreview   *PreviewPayload `json:"parent_preview"`
	ReplyCount      int64           `json:"reply_count"`
	CreatedAt       time.Time       `json:"created_at"`
}

// userRoomMessageEvent holds what every chat event shares: the recipient,
// its tenant, and the room/message the routing key points at.
type userRoomMessageEvent struct {
	name       string
	suffix     string
	tenantId   uuid.UUID
	userId     uuid.UUID
	roomId     uuid.UUID
	messageId  uuid.UUID
	occurredAt time.Time
}

func newUserRoomMessageEvent(name, suffix string, tenantId, userId, roomId, messageId uuid.UUID) (userRoomMessageEvent, error) {
	for field, id := range map[string]uuid.UUID{
		"tenant_uuid":  tenantId,
		"user_uuid":    userId,
		"room_uuid":    roomId,
		"message_uuid": messageId,
	} {
		if id == uuid.Nil {
			return userRoomMessageEvent{}, fmt.Errorf("%s: %w: %s", name, ErrMissingField, field)
		}
	}
	return userRoomMessageEvent{
		name:       name,
		suffix:     suffix,
		tenantId:   tenantId,
		userId:     userId,
		roomId:     roomId,
		messageId:  messageId,
		occurredAt: time.Now().UTC(),
	}, nil
}

func (e userRoomMessageEvent) Name() string {
	return e.name
}

func (e userRoomMessageEvent) RoutingKey() string {
	return fmt.Sprintf("chatd.users.%s.rooms.%s.messages.%s.%s", e.userId, e.roomId, e.messageId, e.suffix)
}

func (e userRoomMessageEvent) Headers() map[string]string {
	return map[string]string{
		"name":         e.name,
		"tenant_uuid":  e.tenantId.String(),
		"user_uuid":    e.userId.String(),
		"room_uuid":    e.roomId.String(),
		"message_uuid": e.messageId.String(),
		"required_acl": "events." + e.RoutingKey(),
	}
}

func (e userRoomMessageEvent) Timestamp() time.Time {
	return e.occurredAt
}

func (e userRoomMessageEvent) UserId() uuid.UUID {
	return e.userId
}

type ReactionCreated struct {
	userRoomMessageEvent
	Payload ReactionPayload
}

func NewReactionCreated(payload ReactionPayload, tenantId, userId uuid.UUID) (*ReactionCreated, error) {
	if payload.Emoji == "" {
		return nil, fmt.Errorf("%s: %w: emoji", ReactionCreatedName, ErrMissingField)
	}
	base, err := newUserRoomMessageEvent(ReactionCreatedName, "reactions.created", tenantId, userId, payload.RoomId, payload.MessageId)
	if err != nil {
		return nil, err
	}
	return &ReactionCreated{userRoomMessageEvent: base, Payload: payload}, nil
}

func (e *ReactionCreated) Data() interface{} {
	return e.Payload
}

type ReactionDeleted struct {
	userRoomMessageEvent
	Payload ReactionPayload
}

func NewReactionDeleted(payload ReactionPayload, tenantId, userId uuid.UUID) (*ReactionDeleted, error) {
	if payload.Emoji == "" {
		return nil, fmt.Errorf("%s: %w: emoji", ReactionDeletedName, ErrMissingField)
	}
	base, err := newUserRoomMessageEvent(ReactionDeletedName, "reactions.deleted", tenantId, userId, payload.RoomId, payload.MessageId)
	if err != nil {
		return nil, err
	}
	return &ReactionDeleted{userRoomMessageEvent: base, Payload: payload}, nil
}

func (e *ReactionDeleted) Data() interface{} {
	return e.Payload
}

// ReplyCreated is routed under the parent message.
type ReplyCreated struct {
	userRoomMessageEvent
	Payload ReplyPayload
}

func NewReplyCreated(payload ReplyPayload, tenantId, userId uuid.UUID) (*ReplyCreated, error) {
	if payload.ChildMessageId == uuid.Nil {
		return nil, fmt.Errorf("%s: %w: child_message_uuid", ReplyCreatedName, ErrMissingField)
	}
	base, err := newUserRoomMessageEvent(ReplyCreatedName, "replies.created", tenantId, userId, payload.RoomId, payload.ParentMessageId)
	if err != nil {
		return nil, err
	}
	return &ReplyCreated{userRoomMessageEvent: base, Payload: payload}, nil
}

func (e *ReplyCreated) Data() interface{} {
	return e.Payload
}
