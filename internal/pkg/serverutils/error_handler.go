package serverutils

import (
	"errors"

	"chat-reactions-be/internal/dto"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders any error returned further down the chain
// as dto.ErrorResponse.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return renderError(ctx, log, err)
	}
}

func renderError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	if appErr, ok := apperror.As(err); ok {
		if appErr.HTTPCode >= fiber.StatusInternalServerError {
			logServerError(ctx, log, err)
		}
		return ctx.Status(appErr.HTTPCode).JSON(dto.ErrorResponse{
			ErrorId: string(appErr.Code),
			Message: appErr.Message,
			Details: detailsOrEmpty(appErr.Details),
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := apperror.CodeInvalidData
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			code = "not-found"
		case fiber.StatusMethodNotAllowed:
			code = "method-not-allowed"
		}
		return ctx.Status(fiberErr.Code).JSON(dto.ErrorResponse{
			ErrorId: string(code),
			Message: fiberErr.Message,
			Details: map[string]interface{}{},
		})
	}

	logServerError(ctx, log, err)
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		ErrorId: string(apperror.CodeInternal),
		Message: "Internal server error",
		Details: map[string]interface{}{},
	})
}

func logServerError(ctx *fiber.Ctx, log logger.ILogger, err error) {
	if log == nil {
		return
	}
	log.Error("HTTP", "Request failed", map[string]interface{}{
		"method": ctx.Method(),
		"path":   ctx.Path(),
		"error":  err,
	})
}

func detailsOrEmpty(details map[string]interface{}) map[string]interface{} {
	if details == nil {
		return map[string]interface{}{}
	}
	return details
}
