package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"contactdb/internal/db"
	"contactdb/internal/export"
	"contactdb/internal/middleware"
	"contactdb/internal/models"
	"contactdb/internal/validation"
)

// ContactHandler serves contact browsing, import, and export.
type ContactHandler struct {
	db            *db.DB
	defaultFields []string
}

// NewContactHandler creates a new contact handler. defaultFields is the
// export field set used when the caller selects none; nil keeps every field.
func NewContactHandler(database *db.DB, defaultFields []string) *ContactHandler {
	return &ContactHandler{db: database, defaultFields: defaultFields}
}

// List returns one page of contacts, newest first, optionally filtered by a
// search term over name, email and company.
func (h *ContactHandler) List(c fiber.Ctx) error {
	search := c.Query("q")
	page := pageQuery(c, 25)

	contacts, total, err := h.db.ListContacts(c.Context(), search, page.Offset(), page.Limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list contacts")
	}

	if contacts == nil {
		contacts = []models.Contact{}
	}
	return c.JSON(models.ContactListResponse{
		Items: contacts,
		Total: total,
		Page:  page.Page,
		Pages: page.Pages(total),
	})
}

// Get returns a single contact by id.
func (h *ContactHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid contact id")
	}

	contact, err := h.db.GetContactByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrContactNotFound) {
			return jsonError(c, fiber.StatusNotFound, "contact not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch contact")
	}

	return c.JSON(contact)
}

// Import upserts a batch of canonical contact records by email and persists
// an upload report. Spreadsheet parsing happens upstream; this endpoint
// accepts already-normalized records.
func (h *ContactHandler) Import(c fiber.Ctx) error {
	var body struct {
		Filename string           `json:"filename"`
		Records  []models.Contact `json:"records"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.Records) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "records are required")
	}

	actor, _ := middleware.ActorFromCtx(c)
	report := models.UploadReport{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Filename:  body.Filename,
	}

	emailSeen := make(map[string]int)
	existingSeen := make(map[string]bool)

	for i := range body.Records {
		rec := body.Records[i]
		rec.Email = validation.NormalizeEmail(rec.Email)

		if rec.Email != "" {
			emailSeen[rec.Email]++
			// Only the first occurrence can tell whether the record
			// predates this upload.
			if emailSeen[rec.Email] == 1 {
				exists, err := h.db.ContactEmailExists(c.Context(), rec.Email)
				if err != nil {
					return jsonError(c, fiber.StatusInternalServerError, "import failed")
				}
				if exists {
					existingSeen[rec.Email] = true
				}
			}
		}

		inserted, err := h.db.UpsertContact(c.Context(), &rec)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "import failed")
		}
		report.Processed++
		if inserted {
			report.Inserted++
		} else {
			report.Updated++
		}
	}

	for email, count := range emailSeen {
		if count > 1 {
			report.DupInFile = append(report.DupInFile, models.EmailCount{Email: email, Count: count})
		}
	}
	for email := range existingSeen {
		report.DupExisting = append(report.DupExisting, email)
	}

	if err := h.db.CreateUploadReport(c.Context(), &report); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save upload report")
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// Export writes the filtered contact set as a downloadable file and
// freezes an export snapshot of exactly what was produced.
func (h *ContactHandler) Export(c fiber.Ctx) error {
	format := c.Query("format", models.FormatCSV)
	if !models.ValidFormat(format) {
		return jsonError(c, fiber.StatusBadRequest, "unsupported export format")
	}

	var requested []string
	if raw := c.Query("fields"); raw != "" {
		requested = strings.Split(raw, ",")
	}
	fields := validation.ExportFields(requested, h.defaultFields)

	search := c.Query("q")
	contacts, err := h.db.SearchContacts(c.Context(), search)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch contacts")
	}

	var buf bytes.Buffer
	switch format {
	case models.FormatCSV:
		err = export.WriteCSV(&buf, fields, contacts)
	case models.FormatXLSX:
		err = export.WriteXLSX(&buf, fields, contacts)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to write export")
	}

	actor, _ := middleware.ActorFromCtx(c)
	filterDesc := "all contacts"
	if search != "" {
		filterDesc = fmt.Sprintf("q=%q", search)
	}
	if _, err := h.db.CreateSnapshot(c.Context(), actor, format, fields, filterDesc, contacts); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to record export snapshot")
	}

	c.Set(fiber.HeaderContentType, export.ContentType(format))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(format)+`"`)
	return c.Send(buf.Bytes())
}
