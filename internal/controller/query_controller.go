package controller

import (
	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/serverutils"
	"ai-querychat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Generate(ctx *fiber.Ctx) error
}

type queryController struct {
	service service.IQueryService
}

func NewQueryController(service service.IQueryService) IQueryController {
	return &queryController{service: service}
}

func (c *queryController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/generate-query", auth, c.Generate)
}

func (c *queryController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("QueryController.Generate", "Invalid request body")
	}

	res, err := c.service.Generate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
