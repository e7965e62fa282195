package service

import (
	"context"
	"fmt"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("chat-reactions-be/internal/service")

// getRoom resolves the room through the chat daemon's tables. A room owned by
// another tenant is reported as absent.
func getRoom(ctx context.Context, uow unitofwork.UnitOfWork, tenantId, roomId uuid.UUID) (*entity.Room, error) {
	room, err := uow.RoomRepository().Get(ctx, []uuid.UUID{tenantId}, roomId)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, apperror.RoomNotFound(roomId)
	}
	return room, nil
}

// requireMember reports non-members as RoomNotFound so membership cannot be
// probed.
func requireMember(room *entity.Room, userId uuid.UUID) error {
	if !room.HasUser(userId) {
		return apperror.RoomNotFound(room.Id)
	}
	return nil
}

func findMessage(room *entity.Room, messageId uuid.UUID) (*entity.Message, error) {
	msg, ok := room.FindMessage(messageId)
	if !ok {
		return nil, apperror.MessageNotFound(messageId)
	}
	return msg, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
