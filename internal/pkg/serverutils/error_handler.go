package serverutils

import (
	"errors"

	"voice-journal-be/internal/service"
	"voice-journal-be/pkg/vectorindex"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to an HTTP status.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrEmptyQuery), errors.Is(err, service.ErrEmptyTranscription):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNoteNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, vectorindex.ErrDimensionMismatch):
		// Embedder and index disagree; this is a deployment fault.
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error in the standard response envelope.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)
	return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return ErrorHandler(ctx, err)
		}
		return nil
	}
}
