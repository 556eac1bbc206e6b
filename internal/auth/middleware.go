package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	// ContextKey is where the resolved identity lives in fiber locals
	ContextKey = "auth_identity"
	// SessionKey is where the resolved session lives in fiber locals
	SessionKey = "auth_session"
	// SessionCookie is the fallback cookie for browser clients
	SessionCookie = "genkan_session"

	authScheme = "Bearer"
)

// Protected resolves the request's bearer credential to an identity or
// fails closed with 401. The token comes from the Authorization header
// or, for browser clients, the session cookie.
func Protected(auther *Auther) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c)
		if raw == "" {
			return ErrUnauthenticated
		}

		identity, session, err := auther.ResolveSession(c.UserContext(), raw)
		if err != nil {
			return err
		}

		c.Locals(ContextKey, identity)
		c.Locals(SessionKey, session)

		return c.Next()
	}
}

// RequireStatus gates a route on account status, e.g. verified-only
// surfaces. Run it after Protected.
func RequireStatus(statuses ...UserStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := IdentityFromContext(c)
		if err != nil {
			return err
		}

		for _, status := range statuses {
			if identity.Status() == status {
				return c.Next()
			}
		}

		return ErrForbidden
	}
}

// RestrictTo gates a route on role membership. Run it after Protected.
func RestrictTo(roles ...UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := IdentityFromContext(c)
		if err != nil {
			return err
		}

		if !RoleIsAllowed(identity.Role(), roles...) {
			return ErrForbidden
		}

		return c.Next()
	}
}

// IdentityFromContext returns the identity stored by Protected.
func IdentityFromContext(c *fiber.Ctx) (Identity, error) {
	identity, ok := c.Locals(ContextKey).(Identity)
	if !ok || identity == nil {
		return nil, ErrUnauthenticated
	}
	return identity, nil
}

// SessionFromContext returns the session stored by Protected.
func SessionFromContext(c *fiber.Ctx) (Session, error) {
	session, ok := c.Locals(SessionKey).(Session)
	if !ok || session == nil {
		return nil, ErrUnauthenticated
	}
	return session, nil
}

// SetSessionCookie stores the bearer token for browser clients.
func SetSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie invalidates the browser credential. Clearing an
// already-cleared cookie is not an error, so logout is idempotent.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], authScheme) {
			return strings.TrimSpace(parts[1])
		}
	}

	return c.Cookies(SessionCookie)
}
