package contract

import (
	"context"

	"chat-reactions-be/internal/entity"

	"github.com/google/uuid"
)

// RoomRepository reads rooms from the chat daemon's tables.
type RoomRepository interface {
	// Get returns the room with its members and messages, or nil when it is
	// absent or outside the given tenants.
	Get(ctx context.Context, tenantIds []uuid.UUID, roomId uuid.UUID) (*entity.Room, error)
}
