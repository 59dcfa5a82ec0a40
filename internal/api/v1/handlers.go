package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/pythh/hotmatch/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetPairings serves the tier-gated live pairing feed. Anonymous callers are
// allowed; they receive the free projection.
func (s *APIServer) GetPairings(c *fiber.Ctx) error {
	return controllers.HandleGetLivePairings(c)
}

// SearchPairings runs a gated pairing search. Anonymous callers spend free
// allowance tracked per client.
func (s *APIServer) SearchPairings(c *fiber.Ctx) error {
	return controllers.HandleSearchPairings(c)
}

// GetAccount returns the authenticated caller's account and plan limits.
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) GetAccount(c *fiber.Ctx) error {
	return controllers.HandleGetAccount(c)
}

// CreateShareLink creates a share link over a frozen payload snapshot.
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) CreateShareLink(c *fiber.Ctx) error {
	return controllers.HandleCreateShareLink(c)
}

// ListShareLinks returns the caller's share links, newest first.
func (s *APIServer) ListShareLinks(c *fiber.Ctx) error {
	return controllers.HandleListMyShareLinks(c)
}

// GetCurrentShareLink returns the newest live link for one share type.
func (s *APIServer) GetCurrentShareLink(c *fiber.Ctx) error {
	return controllers.HandleGetCurrentShareLink(c)
}

// RevokeShareLink stamps a link revoked. Idempotent for the owner.
func (s *APIServer) RevokeShareLink(c *fiber.Ctx, token string) error {
	// Controller reads the token from route params; wrapper already set it.
	return controllers.HandleRevokeShareLink(c)
}

// Pong is the /ping response body.
type Pong struct {
	Ping string `json:"ping"`
}
