package middleware

import "github.com/gofiber/fiber/v2"

// Noop is a passthrough middleware, useful as a placeholder when a
// middleware slot needs to stay wired but disabled.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
