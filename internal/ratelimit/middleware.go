package ratelimit

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Middleware limits requests per client IP and route. Redis failures
// fail open: an unavailable limiter must not take logins down with it.
func Middleware(limiter *Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", c.IP(), c.Route().Path)

		allowed, wait, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			return c.Next()
		}

		if !allowed {
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(wait.Seconds())+1))
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, slow down")
		}

		return c.Next()
	}
}
