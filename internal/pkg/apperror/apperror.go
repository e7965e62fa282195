package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

type Code string

const (
	CodeRoomNotFound          Code = "room-not-found"
	CodeMessageNotFound       Code = "message-not-found"
	CodeReactionAlreadyExists Code = "reaction-already-exists"
	CodeReactionNotFound      Code = "reaction-not-found"
	CodeReplyAlreadyExists    Code = "reply-already-exists"
	CodeNotAReply             Code = "not-a-reply"
	CodeInvalidData           Code = "invalid-data"
	CodeUnauthorized          Code = "unauthorized"
	CodeInternal              Code = "internal-error"
)

// AppError is a domain failure with enough detail to be rendered to clients.
type AppError struct {
	Code     Code
	Message  string
	Details  map[string]interface{}
	HTTPCode int
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so sentinels such as
// ErrRoomNotFound work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code Code, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode, Err: err}
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// As extracts the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

var (
	ErrRoomNotFound          = New(CodeRoomNotFound, "Room not found", http.StatusNotFound)
	ErrMessageNotFound       = New(CodeMessageNotFound, "Message not found", http.StatusNotFound)
	ErrReactionAlreadyExists = New(CodeReactionAlreadyExists, "Reaction already exists", http.StatusConflict)
	ErrReactionNotFound      = New(CodeReactionNotFound, "Reaction not found", http.StatusNotFound)
	ErrReplyAlreadyExists    = New(CodeReplyAlreadyExists, "Reply already exists", http.StatusConflict)
	ErrNotAReply             = New(CodeNotAReply, "This message is not a reply", http.StatusNotFound)
	ErrInvalidData           = New(CodeInvalidData, "Invalid data", http.StatusBadRequest)
	ErrUnauthorized          = New(CodeUnauthorized, "Unauthorized", http.StatusUnauthorized)
)

func RoomNotFound(roomId uuid.UUID) *AppError {
	return New(CodeRoomNotFound, fmt.Sprintf("Room not found: %s", roomId), http.StatusNotFound).
		WithDetails(map[string]interface{}{"room_uuid": roomId.String()})
}

func MessageNotFound(messageId uuid.UUID) *AppError {
	return New(CodeMessageNotFound, fmt.Sprintf("Message not found: %s", messageId), http.StatusNotFound).
		WithDetails(map[string]interface{}{"message_uuid": messageId.String()})
}

func ReactionAlreadyExists(messageId, userId uuid.UUID, emoji string) *AppError {
	msg := fmt.Sprintf("Reaction already exists: user %s already reacted with %s to message %s", userId, emoji, messageId)
	return New(CodeReactionAlreadyExists, msg, http.StatusConflict).
		WithDetails(reactionDetails(messageId, userId, emoji))
}

func ReactionNotFound(messageId, userId uuid.UUID, emoji string) *AppError {
	msg := fmt.Sprintf("Reaction not found: user %s has not reacted with %s to message %s", userId, emoji, messageId)
	return New(CodeReactionNotFound, msg, http.StatusNotFound).
		WithDetails(reactionDetails(messageId, userId, emoji))
}

func ReplyAlreadyExists(childId uuid.UUID) *AppError {
	msg := fmt.Sprintf("Reply already exists: message %s is already a reply", childId)
	return New(CodeReplyAlreadyExists, msg, http.StatusConflict).
		WithDetails(map[string]interface{}{"child_message_uuid": childId.String()})
}

func NotAReply(messageId uuid.UUID) *AppError {
	return New(CodeNotAReply, "This message is not a reply", http.StatusNotFound).
		WithDetails(map[string]interface{}{"message_uuid": messageId.String()})
}

func InvalidData(message string, details map[string]interface{}) *AppError {
	return New(CodeInvalidData, message, http.StatusBadRequest).WithDetails(details)
}

func reactionDetails(messageId, userId uuid.UUID, emoji string) map[string]interface{} {
	return map[string]interface{}{
		"message_uuid": messageId.String(),
		"user_uuid":    userId.String(),
		"emoji":        emoji,
	}
}
