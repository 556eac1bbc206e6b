package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/room"
)

type roomHandlers struct {
	deps Deps
}

func (h *roomHandlers) list(c *fiber.Ctx) error {
	records, err := h.deps.Rooms.List(c.UserContext(), c.Query("language"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *roomHandlers) create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	input := room.CreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrValidation
	}
	input.CreatorID = userID

	record, err := h.deps.Rooms.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": record})
}

func (h *roomHandlers) get(c *fiber.Ctx) error {
	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	record, err := h.deps.Rooms.Get(c.UserContext(), roomID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *roomHandlers) join(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	member, err := h.deps.Rooms.Join(c.UserContext(), roomID, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": member})
}

func (h *roomHandlers) leave(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Rooms.Leave(c.UserContext(), roomID, userID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type slowModePayload struct {
	Seconds int `json:"seconds"`
}

func (h *roomHandlers) setSlowMode(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := slowModePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}

	record, err := h.deps.Rooms.SetSlowMode(c.UserContext(), roomID, userID, payload.Seconds)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

// claimPostSlot runs the slow-mode gate for one outgoing message.
// Message fan-out itself is out of scope here; the endpoint answers
// whether the member may post right now.
func (h *roomHandlers) claimPostSlot(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	roomID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Rooms.ClaimPostSlot(c.UserContext(), roomID, userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}
