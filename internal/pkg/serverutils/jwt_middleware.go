package serverutils

import (
	"fmt"
	"strings"

	"chat-reactions-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID   = "user_id"
	LocalTenantID = "tenant_id"
)

// JwtMiddleware authenticates the bearer token and stores the caller's user
// and tenant uuids in the request locals.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			return unauthorized("Missing token")
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return unauthorized("Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized("Invalid claims")
		}

		userId, err := uuidClaim(claims, LocalUserID)
		if err != nil {
			return unauthorized("Invalid claims")
		}
		tenantId, err := uuidClaim(claims, LocalTenantID)
		if err != nil {
			return unauthorized("Invalid claims")
		}

		ctx.Locals(LocalUserID, userId)
		ctx.Locals(LocalTenantID, tenantId)
		return ctx.Next()
	}
}

func uuidClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("claim %s missing", key)
	}
	return uuid.Parse(raw)
}

func unauthorized(message string) error {
	return apperror.New(apperror.CodeUnauthorized, message, fiber.StatusUnauthorized)
}
