package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pythh/hotmatch/internal/pkg/statistics"
)

// HandleLandingStats serves the public ticker on the landing page.
func HandleLandingStats(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()

	return c.JSON(fiber.Map{
		"pairings_today": stats.TodayPairings,
		"pairings_total": stats.TotalPairings,
		"share_views":    stats.ShareViews,
	})
}

// HandlePing is the liveness probe.
func HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
