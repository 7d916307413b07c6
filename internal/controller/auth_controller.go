// FILE: internal/controller/auth_controller.go
package controller

import (
	"strings"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/serverutils"
	"ai-querychat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/login", c.Login)
	h.Get("/verify", c.Verify)
	h.Post("/logout", serverutils.JwtMiddleware(c.service), c.Logout)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("AuthController.Signup", "Invalid request body")
	}
	// validated in the form the service stores it
	req.Email = strings.TrimSpace(req.Email)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Signup(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("User registered successfully", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("AuthController.Login", "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// Verify always answers 200 and reports validity in the body.
func (c *authController) Verify(ctx *fiber.Ctx) error {
	userId, err := c.service.Verify(ctx.UserContext(), serverutils.BearerToken(ctx))
	if err != nil {
		return ctx.JSON(dto.VerifyResponse{Valid: false})
	}
	return ctx.JSON(dto.VerifyResponse{Valid: true, UserId: userId.String()})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	token, _ := ctx.Locals(serverutils.LocalToken).(string)
	if err := c.service.Logout(ctx.UserContext(), token); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}
