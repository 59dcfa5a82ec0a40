package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/plans"
	"github.com/pythh/hotmatch/internal/pkg/usercontext"
	"github.com/pythh/hotmatch/internal/pkg/visibility"
)

// HandleGetAccount returns the caller's account, plan, and what the plan
// unlocks. Clients drive their projection and upgrade UI from this.
func HandleGetAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	factory := repository.GetGlobalFactory()
	user, err := factory.GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load account"})
	}

	shareLinks, err := factory.GetShareLinkRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load share links"})
	}

	tier := userCtx.Tier()
	cfg := plans.Config(tier)

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"startup_name": user.StartupName,
		"startup_url":  user.StartupURL,
		"plan": fiber.Map{
			"tier":      tier,
			"row_limit": cfg.VisibleRowLimit,
			"locked_fields": visibility.LockedFields{
				InvestorName: !cfg.ShowInvestorName,
				Reason:       !cfg.ShowReason,
				Confidence:   !cfg.ShowConfidence,
			},
			"upgrade_cta": cfg.UpgradeCTA,
		},
		"share_link_count": len(shareLinks),
	})
}
