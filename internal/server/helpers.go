package server

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/genkan-app/genkan/internal/auth"
)

// invalidPayload converts an ozzo validation error into a rich 400.
func invalidPayload(err error) error {
	return goerrors.New(err.Error(), goerrors.CategoryValidation).
		WithTextCode(auth.TextCodeValidation).
		WithCode(goerrors.CodeBadRequest)
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, goerrors.New("invalid id", goerrors.CategoryBadInput).
			WithTextCode(auth.TextCodeValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	return id, nil
}

// callerID returns the authenticated member's id as a uuid.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(identity.ID())
	if err != nil {
		return uuid.Nil, auth.ErrUnauthenticated
	}

	return id, nil
}
