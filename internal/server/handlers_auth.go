package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/genkan-app/genkan/internal/auth"
)

type authHandlers struct {
	deps Deps
}

type signupPayload struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Password        string              `json:"password"`
	PasswordConfirm string              `json:"password_confirm"`
	MatchSettings   *auth.MatchSettings `json:"match_settings"`
}

func (p signupPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&p.PasswordConfirm, validation.Required),
	)
}

func (h *authHandlers) signup(c *fiber.Ctx) error {
	payload := signupPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}
	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	user, err := h.deps.Lifecycle.Signup(c.UserContext(), auth.SignupInput{
		Name:            payload.Name,
		Email:           payload.Email,
		Password:        payload.Password,
		PasswordConfirm: payload.PasswordConfirm,
		MatchSettings:   payload.MatchSettings,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   user,
	})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

func (h *authHandlers) login(c *fiber.Ctx) error {
	payload := loginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}
	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	token, err := h.deps.Lifecycle.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, time.Now().Add(24*time.Hour))

	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

func (h *authHandlers) logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"status": "success"})
}

type forgotPasswordPayload struct {
	Email string `json:"email"`
}

func (p forgotPasswordPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

func (h *authHandlers) forgotPassword(c *fiber.Ctx) error {
	payload := forgotPasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}
	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	if err := h.deps.Lifecycle.ForgotPassword(c.UserContext(), payload.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "token sent to email",
	})
}

type resetPasswordPayload struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (h *authHandlers) resetPassword(c *fiber.Ctx) error {
	payload := resetPasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}

	token, err := h.deps.Lifecycle.ResetPassword(
		c.UserContext(),
		c.Params("token"),
		payload.Password,
		payload.PasswordConfirm,
	)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, time.Now().Add(24*time.Hour))

	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

func (h *authHandlers) verifyAccount(c *fiber.Ctx) error {
	user, err := h.deps.Lifecycle.VerifyAccount(c.UserContext(), c.Params("token"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   user,
	})
}

func (h *authHandlers) resendVerification(c *fiber.Ctx) error {
	payload := forgotPasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}
	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	if err := h.deps.Lifecycle.ResendVerification(c.UserContext(), payload.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "verification email sent",
	})
}

func (h *authHandlers) currentUser(c *fiber.Ctx) error {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.deps.Users.GetByID(c.UserContext(), identity.ID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   user,
	})
}

type updatePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (p updatePasswordPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CurrentPassword, validation.Required),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&p.PasswordConfirm, validation.Required),
	)
}

func (h *authHandlers) updatePassword(c *fiber.Ctx) error {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}

	payload := updatePasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return auth.ErrValidation
	}
	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	userID, err := uuid.Parse(identity.ID())
	if err != nil {
		return auth.ErrUnauthenticated
	}

	token, err := h.deps.Lifecycle.UpdatePassword(
		c.UserContext(),
		userID,
		payload.CurrentPassword,
		payload.Password,
		payload.PasswordConfirm,
	)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, time.Now().Add(24*time.Hour))

	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

func (h *authHandlers) updateMatchSettings(c *fiber.Ctx) error {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}

	settings := &auth.MatchSettings{}
	if err := c.BodyParser(settings); err != nil {
		return auth.ErrValidation
	}

	user, err := h.deps.Users.GetByID(c.UserContext(), identity.ID())
	if err != nil {
		return err
	}

	user.MatchSettings = settings
	updated, err := h.deps.Users.Update(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   updated,
	})
}

func (h *authHandlers) deactivate(c *fiber.Ctx) error {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(identity.ID())
	if err != nil {
		return auth.ErrUnauthenticated
	}

	if err := h.deps.Lifecycle.Deactivate(c.UserContext(), userID); err != nil {
		return err
	}

	auth.ClearSessionCookie(c)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *authHandlers) ban(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Lifecycle.Ban(c.UserContext(), userID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "success"})
}

func (h *authHandlers) reinstate(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deps.Lifecycle.Reinstate(c.UserContext(), userID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "success"})
}
