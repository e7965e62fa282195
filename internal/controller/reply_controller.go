package controller

import (
	"chat-reactions-be/internal/dto"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/pkg/serverutils"
	"chat-reactions-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReplyController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Children(ctx *fiber.Ctx) error
	ListRoom(ctx *fiber.Ctx) error
}

type replyController struct {
	service service.IReplyService
}

func NewReplyController(service service.IReplyService) IReplyController {
	return &replyController{service: service}
}

func (c *replyController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/users/me/rooms")
	h.Get("/:room/replies", auth, c.ListRoom)
	h.Get("/:room/messages/:message/reply", auth, c.Show)
	h.Post("/:room/messages/:message/reply", auth, c.Create)
	h.Delete("/:room/messages/:message/reply", auth, c.Delete)
	h.Get("/:room/messages/:message/replies", auth, c.Children)
}

func (c *replyController) Show(ctx *fiber.Ctx) error {
	tenantId, _, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, messageId, err := roomAndMessage(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetReplyInfo(ctx.UserContext(), tenantId, roomId, messageId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *replyController) Create(ctx *fiber.Ctx) error {
	tenantId, userId, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, childId, err := roomAndMessage(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidData("Invalid request body", nil)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	parentId := uuid.MustParse(req.ParentMessageId)

	res, err := c.service.CreateReplyRelationship(ctx.UserContext(), tenantId, userId, roomId, childId, parentId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *replyController) Delete(ctx *fiber.Ctx) error {
	tenantId, userId, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, childId, err := roomAndMessage(ctx)
	if err != nil {
		return err
	}

	if err := c.service.RemoveReplyRelationship(ctx.UserContext(), tenantId, userId, roomId, childId); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *replyController) Children(ctx *fiber.Ctx) error {
	tenantId, _, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, messageId, err := roomAndMessage(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetRepliesToMessage(ctx.UserContext(), tenantId, roomId, messageId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *replyController) ListRoom(ctx *fiber.Ctx) error {
	tenantId, _, err := serverutils.Caller(ctx)
	if err != nil {
		return err
	}
	roomId, err := serverutils.UUIDParam(ctx, "room")
	if err != nil {
		return err
	}

	res, err := c.service.GetRoomReplyMetadata(ctx.UserContext(), tenantId, roomId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func roomAndMessage(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	roomId, err := serverutils.UUIDParam(ctx, "room")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	messageId, err := serverutils.UUIDParam(ctx, "message")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return roomId, messageId, nil
}
