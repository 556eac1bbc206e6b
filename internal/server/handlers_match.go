package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genkan-app/genkan/internal/auth"
)

type matchHandlers struct {
	deps Deps
}

func (h *matchHandlers) discover(c *fiber.Ctx) error {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}

	seeker, err := h.deps.Users.GetByID(c.UserContext(), identity.ID())
	if err != nil {
		return err
	}

	records, err := h.deps.Match.Discover(c.UserContext(), seeker)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "success", "data": records})
}
