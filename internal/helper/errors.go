package helper

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/JhonesBR/go-bank/internal/failure"
)

// StatusFor maps an error kind to the HTTP status returned to clients.
func StatusFor(err error) int {
	switch failure.KindOf(err) {
	case failure.KindInvalidArgument:
		return fiber.StatusUnprocessableEntity
	case failure.KindEntityNotFound:
		return fiber.StatusNotFound
	case failure.KindInsufficientBalance:
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders handler errors as {"error": ..., "kind": ...}.
// Service failures are logged and their details kept out of the response.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		status := StatusFor(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			message = "internal service failure"
		}

		return c.Status(status).JSON(fiber.Map{
			"error": message,
			"kind":  failure.KindOf(err).String(),
		})
	}
}
