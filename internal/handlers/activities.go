package handlers

import (
	"github.com/gofiber/fiber/v3"

	"contactdb/internal/db"
	"contactdb/internal/models"
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	db *db.DB
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(database *db.DB) *ActivityHandler {
	return &ActivityHandler{db: database}
}

// List returns one page of audit events, newest first. The q parameter
// matches action, route and method; actor filters by exact actor name.
func (h *ActivityHandler) List(c fiber.Ctx) error {
	search := c.Query("q")
	actor := c.Query("actor")
	page := pageQuery(c, 25)

	items, total, err := h.db.ListActivities(c.Context(), search, actor, page.Offset(), page.Limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list activities")
	}

	if items == nil {
		items = []models.Activity{}
	}
	return c.JSON(models.ActivityListResponse{
		Items: items,
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}
