package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pythh/hotmatch/app/models"
	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/database"
	"github.com/pythh/hotmatch/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the user context for every request. Requests
// without credentials proceed as anonymous free-tier callers; a valid API key
// upgrades the context. Invalid keys are rejected here rather than silently
// downgraded, so an expired session routes the caller to re-authentication
// instead of quietly serving free-tier data.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Anonymous client identity for the free-usage gate. The header is
	// client-chosen and spoofable; it backs a soft product gate only.
	clientID := strings.TrimSpace(c.Get("X-Client-Id"))
	if clientID == "" {
		clientID = c.IP()
	}
	c.Locals(usercontext.KeyClientID, clientID)

	apiKey := extractAPIKeyFromHeader(c)
	if apiKey == "" {
		setAnonymousContext(c)
		return c.Next()
	}

	db := database.GetDB()
	if db == nil {
		setAnonymousContext(c)
		return c.Next()
	}

	hash := models.HashAPIKey(apiKey)
	repo := repository.GetGlobalFactory().GetUserRepository()
	user, settings, err := repo.GetByAPIKeyHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "API key is invalid or revoked, please sign in again",
			})
		}
		setAnonymousContext(c)
		return c.Next()
	}

	if user.Status != models.STATUS_ACTIVE {
		setAnonymousContext(c)
		return c.Next()
	}

	if settings.Plan == "" {
		settings.Plan = "free"
	}
	setAuthenticatedContext(c, user, settings)

	return c.Next()
}

func setAnonymousContext(c *fiber.Ctx) {
	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		IsLoggedIn:  false,
		IsAdmin:     false,
		FeedShuffle: true,
	})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
}

// GetClientID returns the anonymous client identity set by
// UserContextMiddleware.
func GetClientID(c *fiber.Ctx) string {
	if v := c.Locals(usercontext.KeyClientID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return c.IP()
}
