package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"contactdb/internal/db"
	"contactdb/internal/middleware"
	"contactdb/internal/models"
)

// ReportHandler serves upload reports.
type ReportHandler struct {
	db *db.DB
}

// NewReportHandler creates a new upload-report handler.
func NewReportHandler(database *db.DB) *ReportHandler {
	return &ReportHandler{db: database}
}

// Get returns an upload report. Only the uploader or an admin/auditor may
// view it.
func (h *ReportHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid report id")
	}

	report, err := h.db.GetUploadReport(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrReportNotFound) {
			return jsonError(c, fiber.StatusNotFound, "report not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch report")
	}

	actor, _ := middleware.ActorFromCtx(c)
	isAuditor := actor.Role == models.RoleAdmin || actor.Role == models.RoleAuditor
	if !isAuditor && report.ActorID != actor.ID {
		return jsonError(c, fiber.StatusForbidden, "forbidden")
	}

	return c.JSON(report)
}
