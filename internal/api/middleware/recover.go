package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/manshur0590/TraceMe/internal/domain"
)

func Recover(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("path", c.Path()),
					slog.String("method", c.Method()),
					slog.Any("request_id", c.Locals(RequestIDKey)),
				)

				_ = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
					Detail: domain.ErrInternal.Message,
					Code:   domain.ErrInternal.Code,
				})
			}
		}()
		return c.Next()
	}
}
