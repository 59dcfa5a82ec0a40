package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/internal/pkg/env"
	"github.com/pythh/hotmatch/internal/pkg/usercontext"
)

func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}

// publicOrigin returns the origin used when building fully-qualified share
// URLs. Behind a proxy the request origin is unreliable, so a configured
// public URL wins.
func publicOrigin(c *fiber.Ctx) string {
	if origin := env.GetEnv("APP_PUBLIC_URL", ""); origin != "" {
		return origin
	}
	return c.BaseURL()
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
