package entity

import (
	"time"

	"github.com/google/uuid"
)

const EmojiMaxLength = 10

// Reaction is one user's emoji on one message. The (MessageId, UserId, Emoji)
// triple is unique.
type Reaction struct {
	MessageId uuid.UUID
	UserId    uuid.UUID
	Emoji     string
	CreatedAt time.Time
}
