package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	apiv1 "github.com/pythh/hotmatch/internal/api/v1"
	"github.com/pythh/hotmatch/internal/pkg/env"
	"github.com/pythh/hotmatch/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		// Shared storage so the limit holds across instances.
		Storage: redisstorage.New(redisstorage.Config{
			Host:     env.GetEnv("CACHE_HOST", "localhost"),
			Port:     env.GetEnvAsInt("CACHE_PORT", 6379),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
			Database: 1,
		}),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")

	// Account and share-link management require an API key; the pairing feed
	// and search stay open so anonymous callers get the free projection.
	v1.Use("/account", middleware.APIKeyAuthMiddleware(), middleware.RequireAuthMiddleware)
	v1.Use("/share-links", middleware.APIKeyAuthMiddleware(), middleware.RequireAuthMiddleware)

	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
