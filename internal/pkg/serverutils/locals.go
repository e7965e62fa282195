package serverutils

import (
	"chat-reactions-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Caller returns the tenant and user set by JwtMiddleware.
func Caller(ctx *fiber.Ctx) (tenantId, userId uuid.UUID, err error) {
	tenantId, okTenant := ctx.Locals(LocalTenantID).(uuid.UUID)
	userId, okUser := ctx.Locals(LocalUserID).(uuid.UUID)
	if !okTenant || !okUser {
		return uuid.Nil, uuid.Nil, apperror.ErrUnauthorized
	}
	return tenantId, userId, nil
}

// UUIDParam parses a path parameter, answering invalid-data when malformed.
func UUIDParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := ctx.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.InvalidData("Invalid "+name, map[string]interface{}{name: raw})
	}
	return id, nil
}
