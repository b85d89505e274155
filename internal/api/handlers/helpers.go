package handlers

import (
	"errors"

	"subtrack/internal/service"
	"subtrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Messages returned for the AI operations. Upstream bodies are never echoed.
const (
	msgUnauthorized     = "Unauthorized"
	msgRateLimited      = "Rate limit exceeded. Please try again in a moment."
	msgCreditsExhausted = "AI credits exhausted. Please add credits to continue."
)

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msgUnauthorized,
	})
}

// writeError maps a service error to its status code. Anything unrecognized is
// logged and reported as a 500 with fallback as the message.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	status := fiber.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status, message = fiber.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, service.ErrUpstreamRateLimited):
		status, message = fiber.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, service.ErrUpstreamQuotaExhausted):
		status, message = fiber.StatusPaymentRequired, msgCreditsExhausted
	case errors.Is(err, service.ErrValidation):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, message = fiber.StatusNotFound, "Not found"
	default:
		logger.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
