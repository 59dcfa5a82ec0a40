package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// ServerInterface lists every operation of the public v1 API. The route set
// mirrors public/docs/v1/openapi.yml.
type ServerInterface interface {
	// GET /ping
	GetPing(c *fiber.Ctx) error
	// GET /pairings
	GetPairings(c *fiber.Ctx) error
	// GET /pairings/search
	SearchPairings(c *fiber.Ctx) error
	// GET /account
	GetAccount(c *fiber.Ctx) error
	// POST /share-links
	CreateShareLink(c *fiber.Ctx) error
	// GET /share-links
	ListShareLinks(c *fiber.Ctx) error
	// GET /share-links/current
	GetCurrentShareLink(c *fiber.Ctx) error
	// DELETE /share-links/{token}
	RevokeShareLink(c *fiber.Ctx, token string) error
}

// RegisterHandlers attaches all v1 operations to the given router group.
// Authentication is layered on by the caller; this only maps paths.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)
	router.Get("/pairings", si.GetPairings)
	router.Get("/pairings/search", si.SearchPairings)
	router.Get("/account", si.GetAccount)
	router.Post("/share-links", si.CreateShareLink)
	router.Get("/share-links", si.ListShareLinks)
	router.Get("/share-links/current", si.GetCurrentShareLink)
	router.Delete("/share-links/:token", func(c *fiber.Ctx) error {
		return si.RevokeShareLink(c, c.Params("token"))
	})
}
