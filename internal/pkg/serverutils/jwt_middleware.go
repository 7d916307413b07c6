// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"context"
	"strings"

	"ai-querychat-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalToken  = "token"
)

// TokenVerifier is satisfied by the auth service.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

func JwtMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return apperror.Auth("JwtMiddleware", "Missing token", nil)
		}

		userId, err := verifier.Verify(ctx.UserContext(), tokenStr)
		if err != nil {
			return err
		}

		ctx.Locals(LocalUserID, userId)
		ctx.Locals(LocalToken, tokenStr)
		return ctx.Next()
	}
}

// UserID reads the id stored by JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperror.Auth("UserID", "Unauthorized", nil)
	}
	return userId, nil
}
