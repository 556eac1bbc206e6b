package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/story"
)

type storyHandlers struct {
	deps Deps
}

func (h *storyHandlers) feed(c *fiber.Ctx) error {
	records, err := h.deps.Stories.Feed(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *storyHandlers) create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	input := story.CreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrValidation
	}
	input.UserID = userID

	record, err := h.deps.Stories.Create(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": record})
}

func (h *storyHandlers) drafts(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	records, err := h.deps.Stories.Drafts(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *storyHandlers) byUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	records, err := h.deps.Stories.ByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *storyHandlers) get(c *fiber.Ctx) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	record, err := h.deps.Stories.Get(c.UserContext(), storyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *storyHandlers) delete(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Stories.Delete(c.UserContext(), userID, storyID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *storyHandlers) moderate(c *fiber.Ctx) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Stories.DeleteAsModerator(c.UserContext(), storyID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *storyHandlers) publish(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	record, err := h.deps.Stories.Publish(c.UserContext(), userID, storyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *storyHandlers) toggleLike(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.deps.Stories.ToggleLike(c.UserContext(), userID, storyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "liked": liked})
}

type reportPayload struct {
	Reason string `json:"reason"`
}

func (h *storyHandlers) report(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := reportPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}

	if err := h.deps.Stories.Report(c.UserContext(), userID, storyID, payload.Reason); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}

type commentPayload struct {
	Content string `json:"content"`
}

func (h *storyHandlers) comment(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := commentPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}

	record, err := h.deps.Stories.Comment(c.UserContext(), userID, storyID, payload.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": record})
}

func (h *storyHandlers) editComment(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payload := commentPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}

	record, err := h.deps.Stories.EditComment(c.UserContext(), userID, commentID, payload.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *storyHandlers) deleteComment(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Stories.DeleteComment(c.UserContext(), userID, commentID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
