package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"contactdb/internal/db"
	"contactdb/internal/models"
)

// AdminHandler serves the dashboard summary.
type AdminHandler struct {
	db *db.DB
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(database *db.DB) *AdminHandler {
	return &AdminHandler{db: database}
}

// Stats returns entity totals, the most recent activity and export entries,
// and actor/action breakdowns over the last seven days.
func (h *AdminHandler) Stats(c fiber.Ctx) error {
	ctx := c.Context()

	totals, err := h.db.Totals(ctx)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute totals")
	}

	recentActivities, err := h.db.RecentActivities(ctx, 10)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recent activities")
	}

	recentExports, err := h.db.RecentSnapshots(ctx, 10)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recent exports")
	}

	since := time.Now().AddDate(0, 0, -7)
	topActors, err := h.db.TopActors(ctx, since, 5)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute top actors")
	}

	breakdown, err := h.db.ActionBreakdown(ctx, since)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute action breakdown")
	}

	if recentActivities == nil {
		recentActivities = []models.Activity{}
	}
	if recentExports == nil {
		recentExports = []models.SnapshotMeta{}
	}
	if topActors == nil {
		topActors = []models.ActorCount{}
	}
	if breakdown == nil {
		breakdown = []models.ActionCount{}
	}

	return c.JSON(models.AdminStatsResponse{
		Totals:           totals,
		RecentActivities: recentActivities,
		RecentExports:    recentExports,
		TopActors:        topActors,
		ActionBreakdown:  breakdown,
	})
}
