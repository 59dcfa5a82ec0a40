package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/pythh/hotmatch/app/models"
	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/metrics/counter"
	"github.com/pythh/hotmatch/internal/pkg/sharetoken"
	"github.com/pythh/hotmatch/internal/pkg/viewmodel"
)

// HandleShareView resolves a public /s/:token URL. Revoked, expired, and
// unknown tokens all render the same unavailable page so the token state is
// not distinguishable from outside.
func HandleShareView(c *fiber.Ctx) error {
	token := c.Params("token")
	if !sharetoken.IsWellFormed(token) {
		return renderShareUnavailable(c, fiber.StatusNotFound)
	}

	repo := repository.GetGlobalFactory().GetShareLinkRepository()
	link, err := repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return renderShareUnavailable(c, fiber.StatusNotFound)
		}
		log.Errorf("[Share] Failed to load token %s: %v", token, err)
		return renderShareUnavailable(c, fiber.StatusInternalServerError)
	}

	if !link.IsActive(time.Now()) {
		return renderShareUnavailable(c, fiber.StatusGone)
	}

	// Restricted links resolve only for signed-in viewers. The page presents
	// the same as an expired link so the restriction itself stays private.
	if link.Visibility == models.VisibilityRestricted && !isLoggedIn(c) {
		return renderShareUnavailable(c, fiber.StatusNotFound)
	}

	payload, err := link.DecodePayload()
	if err != nil {
		log.Errorf("[Share] Corrupt payload for link %d: %v", link.ID, err)
		return renderShareUnavailable(c, fiber.StatusInternalServerError)
	}

	// View counting is best effort; a Redis hiccup must not break the page.
	if err := counter.AddShareView(link.ID); err != nil {
		log.Warnf("[Share] View count increment failed for link %d: %v", link.ID, err)
	}

	vm := viewmodel.SharePage{
		Title:      payload.Summary(),
		Summary:    payload.Summary(),
		ShareType:  link.ShareType,
		Payload:    payload,
		CanComment: link.CanComment,
		ViewCount:  link.ViewCount,
		CreatedAt:  link.CreatedAt.UTC().Format("2006-01-02"),
	}
	if link.ExpiresAt != nil {
		vm.ExpiresAt = link.ExpiresAt.UTC().Format("2006-01-02")
	}

	return c.Render("share", vm)
}

func renderShareUnavailable(c *fiber.Ctx, status int) error {
	return c.Status(status).Render("share_expired", viewmodel.ShareUnavailable{
		Title:   "Link unavailable",
		Message: "This share link is no longer available. It may have expired or been revoked by its owner.",
	})
}
