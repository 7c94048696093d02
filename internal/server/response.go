package server

import (
	"jotter/internal/apperr"
	"jotter/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// envelope is the fixed response shape. Data is dropped entirely when nil
// rather than serialized as null.
type envelope struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	InternalCode string      `json:"internalCode"`
	Data         interface{} `json:"data,omitempty"`
}

func respondSuccess(c *fiber.Ctx, status int, internalCode, message string, data interface{}) error {
	return c.Status(status).JSON(envelope{
		Success:      true,
		Message:      message,
		InternalCode: internalCode,
		Data:         data,
	})
}

func respondError(c *fiber.Ctx, err error) error {
	appErr := apperr.From(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		metrics.TrackError("internal")
	}
	return c.Status(appErr.Status).JSON(envelope{
		Success:      false,
		Message:      appErr.Message,
		InternalCode: appErr.Code,
	})
}
