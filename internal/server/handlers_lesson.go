package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/lesson"
)

type lessonHandlers struct {
	deps Deps
}

func (h *lessonHandlers) catalog(c *fiber.Ctx) error {
	records, err := h.deps.Lessons.Catalog(c.UserContext(), c.Query("language"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *lessonHandlers) create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	input := lesson.CreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrValidation
	}
	input.AuthorID = userID

	record, err := h.deps.Lessons.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": record})
}

func (h *lessonHandlers) authored(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	records, err := h.deps.Lessons.Authored(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *lessonHandlers) get(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	record, err := h.deps.Lessons.Get(c.UserContext(), userID, lessonID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *lessonHandlers) update(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	input := lesson.UpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrValidation
	}

	record, err := h.deps.Lessons.Update(c.UserContext(), userID, lessonID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

type lessonStatusPayload struct {
	Status lesson.LessonStatus `json:"status"`
}

func (h *lessonHandlers) setStatus(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := lessonStatusPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}

	record, err := h.deps.Lessons.SetStatus(c.UserContext(), userID, lessonID, payload.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *lessonHandlers) delete(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	lessonID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Lessons.Delete(c.UserContext(), userID, lessonID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
