package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/app/controllers"
	"github.com/pythh/hotmatch/internal/pkg/cache"
	"github.com/pythh/hotmatch/internal/pkg/constants"
	"github.com/pythh/hotmatch/internal/pkg/middleware"
	"github.com/pythh/hotmatch/internal/pkg/usagegate"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// The anonymous search gate counts per client in Redis so the allowance
	// survives restarts and is shared across instances.
	controllers.InitializePairingController(
		usagegate.New(usagegate.NewRedisStore(cache.GetClient())),
	)

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/ping", controllers.HandlePing)

	// Landing ticker
	app.Get("/stats", controllers.HandleLandingStats)

	// Public share pages
	app.Get(constants.ShareRoute+"/:token", controllers.HandleShareView)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
