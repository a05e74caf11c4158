package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/manshur0590/TraceMe/internal/domain"
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Detail: fiberErr.Message,
				Code:   "HTTP_ERROR",
			})
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 {
				logger.Error("request failed",
					slog.String("code", appErr.Code),
					slog.String("detail", appErr.Message),
					slog.Any("error", appErr.Err),
					slog.String("path", c.Path()),
					slog.Any("request_id", c.Locals(RequestIDKey)),
				)
			}

			return c.Status(appErr.StatusCode).JSON(ErrorResponse{
				Detail: appErr.Message,
				Code:   appErr.Code,
			})
		}

		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
			slog.Any("request_id", c.Locals(RequestIDKey)),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Detail: domain.ErrInternal.Message,
			Code:   domain.ErrInternal.Code,
		})
	}
}
