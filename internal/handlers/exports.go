package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"contactdb/internal/db"
	"contactdb/internal/models"
)

// ExportHandler serves export snapshots: immutable captures of what was
// exported, replayable in their original order.
type ExportHandler struct {
	db *db.DB
}

// NewExportHandler creates a new export snapshot handler.
func NewExportHandler(database *db.DB) *ExportHandler {
	return &ExportHandler{db: database}
}

// List returns one page of snapshot metadata, newest first, optionally
// filtered by actor name.
func (h *ExportHandler) List(c fiber.Ctx) error {
	actor := c.Query("actor")
	page := pageQuery(c, 20)

	items, total, err := h.db.ListSnapshots(c.Context(), actor, page.Offset(), page.Limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list snapshots")
	}

	if items == nil {
		items = []models.SnapshotMeta{}
	}
	return c.JSON(models.SnapshotListResponse{
		Items: items,
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

// Get returns one full snapshot, identifier list included.
func (h *ExportHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid snapshot id")
	}

	snap, err := h.db.GetSnapshot(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSnapshotNotFound) {
			return jsonError(c, fiber.StatusNotFound, "snapshot not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch snapshot")
	}

	return c.JSON(snap)
}

// Items replays one page of a snapshot's records in their originally
// captured order. Records deleted since the export are absent from items
// while total still reports the capture size.
func (h *ExportHandler) Items(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid snapshot id")
	}
	page := pageQuery(c, 100)

	snap, err := h.db.GetSnapshot(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSnapshotNotFound) {
			return jsonError(c, fiber.StatusNotFound, "snapshot not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch snapshot")
	}

	items, err := h.db.GetSnapshotItems(c.Context(), snap, page.Offset(), page.Limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch snapshot items")
	}

	if items == nil {
		items = []models.Contact{}
	}
	return c.JSON(models.SnapshotItemsResponse{
		SnapshotID: snap.ID,
		Fields:     snap.Fields,
		Total:      snap.Total,
		Page:       page.Page,
		Items:      items,
	})
}
