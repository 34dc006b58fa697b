package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

// ErrorHandler maps domain errors onto HTTP statuses: bad thresholds or
// window overrides are the client's fault, a missing data directory or an
// empty record set is a 404, everything else is a 500 and gets logged.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		switch {
		case errors.Is(err, domain.ErrInvalidConfig):
			code = fiber.StatusBadRequest
		case errors.Is(err, domain.ErrDataDirNotFound), errors.Is(err, domain.ErrNoRecords):
			code = fiber.StatusNotFound
		default:
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
		}

		if code == fiber.StatusInternalServerError {
			log.Error("internal server error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
