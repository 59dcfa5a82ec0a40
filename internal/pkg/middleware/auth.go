package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/internal/pkg/usercontext"
)

// RequireAuthMiddleware rejects requests whose context is still anonymous.
// It must run after UserContextMiddleware or APIKeyAuthMiddleware.
func RequireAuthMiddleware(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Authentication required",
		})
	}
	return c.Next()
}
