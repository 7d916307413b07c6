package controller

import (
	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/serverutils"
	"ai-querychat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

func (c *messageController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/messages", auth)
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Delete("", c.Clear)
}

func (c *messageController) Save(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SaveMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("MessageController.Save", "Invalid request body")
	}

	res, err := c.service.Save(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Message saved successfully", res))
}

// List returns a bare array, oldest first.
func (c *messageController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *messageController) Clear(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Clear(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Messages cleared", res))
}
