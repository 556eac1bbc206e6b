package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/genkan-app/genkan/internal/auth"
)

type socialHandlers struct {
	deps Deps
}

func (h *socialHandlers) friends(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ids, err := h.deps.Social.FriendIDs(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": ids})
}

func (h *socialHandlers) pending(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	records, err := h.deps.Social.Pending(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

type friendRequestPayload struct {
	RecipientID string `json:"recipient_id"`
}

func (p friendRequestPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.RecipientID, validation.Required, is.UUIDv4),
	)
}

func (h *socialHandlers) sendRequest(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	payload := friendRequestPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}
	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	recipientID, err := uuid.Parse(payload.RecipientID)
	if err != nil {
		return auth.ErrValidation
	}

	record, err := h.deps.Social.SendRequest(c.UserContext(), userID, recipientID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": record})
}

func (h *socialHandlers) accept(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	record, err := h.deps.Social.Accept(c.UserContext(), userID, requestID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *socialHandlers) decline(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	record, err := h.deps.Social.Decline(c.UserContext(), userID, requestID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

func (h *socialHandlers) block(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	blockedID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Social.Block(c.UserContext(), userID, blockedID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *socialHandlers) unblock(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	blockedID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Social.Unblock(c.UserContext(), userID, blockedID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *socialHandlers) inbox(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryBool("unread")
	records, err := h.deps.Social.Inbox(c.UserContext(), userID, unreadOnly)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

func (h *socialHandlers) markRead(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Social.MarkRead(c.UserContext(), userID, notificationID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *socialHandlers) markAllRead(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.deps.Social.MarkAllRead(c.UserContext(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success"})
}
