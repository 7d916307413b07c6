package serverutils

import (
	"errors"

	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is installed as fiber's Config.ErrorHandler. Handlers return
// errors and this writes the uniform error body.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			appErr = apperror.Server(ctx.Route().Path, err)
		}

		status := appErr.Kind.Status()
		details := map[string]interface{}{
			"kind":   appErr.Kind.String(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error(appErr.Op, appErr.Message, details)
		} else {
			log.Warn(appErr.Op, appErr.Message, details)
		}

		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}
}
