package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/internal/pkg/plans"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	IsLoggedIn  bool   `json:"is_logged_in"`
	IsAdmin     bool   `json:"is_admin"`
	Plan        string `json:"plan"`
	FeedShuffle bool   `json:"feed_shuffle"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false, IsAdmin: false, FeedShuffle: true}
}

// Tier resolves the effective plan tier for the context. Anonymous callers
// and unrecognized plan values resolve to free.
func (ctx UserContext) Tier() plans.Tier {
	if !ctx.IsLoggedIn {
		return plans.TierFree
	}
	return plans.ResolveTier(ctx.Plan)
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsAdmin checks if the current user is an admin
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// Tier returns the effective tier for the current request
func Tier(c *fiber.Ctx) plans.Tier {
	return GetUserContext(c).Tier()
}
