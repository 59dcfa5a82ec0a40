package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pythh/hotmatch/app/models"
	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/usercontext"
)

// CreateShareLinkRequest is the POST /api/v1/share-links body.
type CreateShareLinkRequest struct {
	ShareType     string          `json:"share_type" validate:"required,oneof=dashboard pipeline scorecard"`
	Payload       json.RawMessage `json:"payload" validate:"required"`
	StartupID     string          `json:"startup_id" validate:"omitempty,max=64"`
	Visibility    string          `json:"visibility" validate:"omitempty,oneof=unlisted restricted"`
	CanComment    bool            `json:"can_comment"`
	ExpiresInDays *int            `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

var shareLinkValidator = validator.New()

// HandleCreateShareLink creates a new share link over a frozen payload
// snapshot. Links never expire unless the caller asks for an expiry; older
// live links for the same share type are left untouched, the newest simply
// becomes the current one.
func HandleCreateShareLink(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req CreateShareLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Malformed request body"})
	}
	if err := shareLinkValidator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	payload, err := models.ParseSharePayload(req.ShareType, req.Payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	raw, err := payload.Raw()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to snapshot payload"})
	}

	link := &models.ShareLink{
		UserID:     userCtx.UserID,
		ShareType:  req.ShareType,
		Payload:    raw,
		Visibility: req.Visibility,
		CanComment: req.CanComment,
	}
	if req.ExpiresInDays != nil {
		expires := time.Now().AddDate(0, 0, *req.ExpiresInDays)
		link.ExpiresAt = &expires
	}

	repo := repository.GetGlobalFactory().GetShareLinkRepository()
	if err := repo.Create(link); err != nil {
		log.Printf("share link creation failed for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create share link"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         link.ID,
		"token":      link.Token,
		"url":        link.PublicURL(publicOrigin(c)),
		"created_at": link.CreatedAt.UTC().Format(time.RFC3339),
		"expires_at": formatTimePtr(link.ExpiresAt),
	})
}

// HandleListMyShareLinks returns the caller's links, newest first. The full
// history is returned; revoked and expired entries carry their timestamps so
// clients can filter defensively.
func HandleListMyShareLinks(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetShareLinkRepository()
	links, err := repo.GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to list share links"})
	}

	origin := publicOrigin(c)
	out := make([]fiber.Map, 0, len(links))
	for i := range links {
		link := &links[i]
		summary := ""
		if payload, err := link.DecodePayload(); err == nil {
			summary = payload.Summary()
		}
		out = append(out, fiber.Map{
			"id":         link.ID,
			"token":      link.Token,
			"url":        link.PublicURL(origin),
			"share_type": link.ShareType,
			"summary":    summary,
			"view_count": link.ViewCount,
			"created_at": link.CreatedAt.UTC().Format(time.RFC3339),
			"expires_at": formatTimePtr(link.ExpiresAt),
			"revoked_at": formatTimePtr(link.RevokedAt),
		})
	}

	return c.JSON(out)
}

// HandleGetCurrentShareLink returns the newest live link of one share type,
// or 404 when every stored link is revoked or expired. Server-authoritative
// companion to the client-side filtering of the full list.
func HandleGetCurrentShareLink(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	shareType := c.Query("share_type")
	if !models.IsValidShareType(shareType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Unknown share type"})
	}

	repo := repository.GetGlobalFactory().GetShareLinkRepository()
	link, err := repo.GetCurrent(userCtx.UserID, shareType, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load share link"})
	}
	if link == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "No live share link for this share type"})
	}

	return c.JSON(fiber.Map{
		"id":         link.ID,
		"token":      link.Token,
		"url":        link.PublicURL(publicOrigin(c)),
		"share_type": link.ShareType,
		"view_count": link.ViewCount,
		"created_at": link.CreatedAt.UTC().Format(time.RFC3339),
		"expires_at": formatTimePtr(link.ExpiresAt),
	})
}

// HandleRevokeShareLink stamps a link revoked. Only the owner may revoke;
// revoking an already-revoked link succeeds without changing the original
// timestamp.
func HandleRevokeShareLink(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	token := c.Params("token")
	repo := repository.GetGlobalFactory().GetShareLinkRepository()
	link, err := repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Share link not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load share link"})
	}

	if link.UserID != userCtx.UserID && !userCtx.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Not your share link"})
	}

	if err := repo.Revoke(link); err != nil {
		log.Printf("share link revoke failed for token %s: %v", token, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to revoke share link"})
	}

	return c.JSON(fiber.Map{"ok": true})
}
