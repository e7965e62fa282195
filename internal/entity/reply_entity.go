package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const PreviewMaxLength = 200

// ReplyLink ties a child message to the message it answers. The parent
// fields are a snapshot taken when the link was created.
type ReplyLink struct {
	ChildMessageId       uuid.UUID
	ParentMessageId      *uuid.UUID // nil once the parent message is gone
	RoomId               uuid.UUID
	ParentContentPreview *string
	ParentAuthorId       *uuid.UUID
	ParentAuthorAlias    *string
	ParentCreatedAt      *time.Time
	CreatedAt            time.Time
}

// TruncatePreview keeps the first PreviewMaxLength characters of content.
func TruncatePreview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewMaxLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:PreviewMaxLength])
}
