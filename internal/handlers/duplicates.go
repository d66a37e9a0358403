package handlers

import (
	"github.com/gofiber/fiber/v3"

	"contactdb/internal/db"
	"contactdb/internal/models"
	"contactdb/internal/validation"
)

// DuplicateHandler serves the duplicate report: paginated groups of records
// sharing a key value, and the member records of one group.
type DuplicateHandler struct {
	db   *db.DB
	keys *validation.Keys
}

// NewDuplicateHandler creates a new duplicate-report handler.
func NewDuplicateHandler(database *db.DB, keys *validation.Keys) *DuplicateHandler {
	return &DuplicateHandler{db: database, keys: keys}
}

// Groups returns one page of duplicate groups for the requested key.
// Unrecognized keys fall back to the default rather than erroring.
func (h *DuplicateHandler) Groups(c fiber.Ctx) error {
	spec := h.keys.Parse(c.Query("key", validation.DefaultKey))
	page := pageQuery(c, 20)

	groups, err := h.db.ListDuplicateGroups(c.Context(), spec, page.Offset(), page.Limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list duplicate groups")
	}

	total, err := h.db.CountDuplicateGroups(c.Context(), spec)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count duplicate groups")
	}

	if groups == nil {
		groups = []models.DuplicateGroup{}
	}
	return c.JSON(models.DuplicateGroupsResponse{
		Key:   spec.Key,
		Items: groups,
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

// Items returns one page of the member records of one duplicate group. The
// total is computed independently of the grouping call, since the store may
// have changed in between.
func (h *DuplicateHandler) Items(c fiber.Ctx) error {
	spec := h.keys.Parse(c.Query("key", validation.DefaultKey))
	value := c.Query("value")
	page := pageQuery(c, 100)

	contacts, total, err := h.db.ListGroupMembers(c.Context(), spec, value, page.Offset(), page.Limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list group members")
	}

	if contacts == nil {
		contacts = []models.Contact{}
	}
	return c.JSON(models.DuplicateItemsResponse{
		Key:   spec.Key,
		Value: value,
		Items: contacts,
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}
