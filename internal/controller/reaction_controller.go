package controller

import (
	"net/url"

	"chat-reactions-be/internal/dto"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/pkg/serverutils"
	"chat-reactions-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReactionController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	ListRoom(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
}

type reactionController struct {
	service service.IReactionService
}

func NewReactionController(service service.IReactionService) IReactionController {
	return &reactionController{service: service}
}

func (c *reactionController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/users/me/rooms")
	h.Get("/:room/reactions", auth, c.ListRoom)
	h.Get("/:room/messages/:message/reactions", auth, c.List)
	h.Post("/:room/messages/:message/reactions", auth, c.Add)
	h.Delete("/:room/messages/:message/reactions/:emoji", auth, c.Remove)
}

func (c *reactionController) List(ctx *fiber.Ctx) error {
	tenantId, userId, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, err := serverutils.UUIDParam(ctx, "room")
	if err != nil {
		return err
	}
	messageId, err := serverutils.UUIDParam(ctx, "message")
	if err != nil {
		return err
	}

	res, err := c.service.GetReactions(ctx.UserContext(), tenantId, userId, roomId, messageId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *reactionController) ListRoom(ctx *fiber.Ctx) error {
	tenantId, userId, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, err := serverutils.UUIDParam(ctx, "room")
	if err != nil {
		return err
	}

	res, err := c.service.GetRoomReactions(ctx.UserContext(), tenantId, userId, roomId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *reactionController) Add(ctx *fiber.Ctx) error {
	tenantId, userId, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, err := serverutils.UUIDParam(ctx, "room")
	if err != nil {
		return err
	}
	messageId, err := serverutils.UUIDParam(ctx, "message")
	if err != nil {
		return err
	}

	var req dto.AddReactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidData("Invalid request body", nil)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddReaction(ctx.UserContext(), tenantId, userId, roomId, messageId, req.Emoji)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *reactionController) Remove(ctx *fiber.Ctx) error {
	tenantId, userId, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, err := serverutils.UUIDParam(ctx, "room")
	if err != nil {
		return err
	}
	messageId, err := serverutils.UUIDParam(ctx, "message")
	if err != nil {
		return err
	}
	emoji, err := url.PathUnescape(ctx.Params("emoji"))
	if err != nil {
		return apperror.InvalidData("Invalid emoji", map[string]interface{}{"emoji": ctx.Params("emoji")})
	}

	if err := c.service.RemoveReaction(ctx.UserContext(), tenantId, userId, roomId, messageId, emoji); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
