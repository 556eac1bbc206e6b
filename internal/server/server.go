// Package server exposes the platform over /api/v1.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/lesson"
	"github.com/genkan-app/genkan/internal/match"
	"github.com/genkan-app/genkan/internal/ratelimit"
	"github.com/genkan-app/genkan/internal/room"
	"github.com/genkan-app/genkan/internal/social"
	"github.com/genkan-app/genkan/internal/story"
)

// Deps carries every collaborator the HTTP surface needs.
type Deps struct {
	Auther    *auth.Auther
	Lifecycle *auth.Lifecycle
	Users     auth.Users

	Stories *story.Service
	Lessons *lesson.Service
	Rooms   *room.Service
	Social  *social.Service
	Match   *match.Service

	// Limiter guards the credential routes. Nil disables limiting,
	// which tests rely on.
	Limiter *ratelimit.Limiter

	Logger auth.Logger
}

// New builds the fiber app with every route registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "genkan",
		ErrorHandler: errorHandler(deps.Logger),
	})

	registerRoutes(app, deps)

	return app
}

// errorHandler renders rich errors as JSON, keeping their HTTP code
// and text code intact. Anything else is wrapped as an internal error
// so no raw failure detail leaks to clients.
func errorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"status":  fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status == 0 {
			status = statusFromCategory(richErr.Category)
		}

		if logger != nil && status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"error", richErr.Message,
				"category", richErr.Category,
				"path", c.OriginalURL(),
			)
		}

		return c.Status(status).JSON(fiber.Map{
			"status":    status,
			"message":   richErr.Message,
			"text_code": richErr.TextCode,
		})
	}
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
