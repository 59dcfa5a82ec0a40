package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/middleware"
	"github.com/pythh/hotmatch/internal/pkg/plans"
	"github.com/pythh/hotmatch/internal/pkg/seeded"
	"github.com/pythh/hotmatch/internal/pkg/usagegate"
	"github.com/pythh/hotmatch/internal/pkg/usercontext"
	"github.com/pythh/hotmatch/internal/pkg/visibility"
)

// The feed always fetches a fixed candidate window; tier slicing happens on
// top of it so the database query shape stays the same for every caller.
const feedCandidateLimit = 100

// Minimum query length for pairing search; shorter input returns an empty
// result set without touching the database.
const minSearchQueryLength = 2

var pairingGate *usagegate.Gate

// InitializePairingController wires the anonymous usage gate.
func InitializePairingController(gate *usagegate.Gate) {
	pairingGate = gate
}

// HandleGetLivePairings serves the tier-gated live pairing feed. The tier
// comes from the request context; anonymous callers get the free projection.
func HandleGetLivePairings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	tier := userCtx.Tier()

	repo := repository.GetGlobalFactory().GetPairingRepository()
	rows, err := repo.GetRecent(feedCandidateLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load pairings"})
	}

	// Cosmetic rotation of the candidate window, stable per client per day.
	// Purely presentational: masking and the row cap apply afterwards.
	if userCtx.FeedShuffle {
		src := seeded.New(middleware.GetClientID(c) + time.Now().UTC().Format("2006-01-02"))
		src.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	}

	cfg := plans.Config(tier)
	return c.JSON(fiber.Map{
		"tier":        tier,
		"row_limit":   cfg.VisibleRowLimit,
		"upgrade_cta": cfg.UpgradeCTA,
		"pairings":    visibility.ProjectAll(rows, tier),
	})
}

// HandleSearchPairings is the gated free-text search. Anonymous callers spend
// one unit of their free allowance per search; the gate check happens before
// any database work.
func HandleSearchPairings(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < minSearchQueryLength {
		return c.JSON(fiber.Map{"pairings": []any{}})
	}

	userCtx := usercontext.GetUserContext(c)
	tier := userCtx.Tier()

	if !userCtx.IsLoggedIn && pairingGate != nil {
		clientID := middleware.GetClientID(c)
		if err := pairingGate.Consume(c.Context(), clientID); err != nil {
			if errors.Is(err, usagegate.ErrLimitReached) {
				// Expected terminal state, not an error: the caller gets the
				// upgrade affordance.
				return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
					"error":       "limit_reached",
					"message":     "Free search limit reached",
					"upgrade_url": usagegate.UpgradeURL,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Usage check failed"})
		}
	}

	repo := repository.GetGlobalFactory().GetPairingRepository()
	rows, err := repo.SearchByStartupName(query, feedCandidateLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Search failed"})
	}

	return c.JSON(fiber.Map{
		"tier":     tier,
		"pairings": visibility.ProjectAll(rows, tier),
	})
}
