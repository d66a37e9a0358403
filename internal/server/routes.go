package server

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contactdb/internal/config"
	"contactdb/internal/db"
	"contactdb/internal/handlers"
	"contactdb/internal/middleware"
	"contactdb/internal/models"
	"contactdb/internal/validation"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, fileCfg *config.YAMLConfig) error {
	// Initialize middleware
	auth, err := middleware.NewAuthMiddleware(ctx, s.Cfg)
	if err != nil {
		return err
	}

	keys := validation.NewKeys(fileCfg.GroupingKeys())

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(database, fileCfg.ExportFields())
	duplicateHandler := handlers.NewDuplicateHandler(database, keys)
	exportHandler := handlers.NewExportHandler(database)
	activityHandler := handlers.NewActivityHandler(database)
	reportHandler := handlers.NewReportHandler(database)
	adminHandler := handlers.NewAdminHandler(database)
	healthHandler := handlers.NewHealthHandler(database)

	// Public routes
	s.App.Get("/", func(c fiber.Ctx) error {
		return c.SendString("contactdb API is running")
	})
	s.App.Get("/health", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.App.Group("/api")

	// Contact routes - any authenticated caller. Handlers run in
	// registration order, so the activity recorder goes before the
	// terminal handler.
	contacts := api.Group("/contacts")
	contacts.Use(auth.RequireAuth)
	contacts.Get("/", middleware.Activity(database, "LIST_CONTACTS"), contactHandler.List)
	contacts.Get("/export", middleware.Activity(database, "EXPORT_CONTACTS"), contactHandler.Export)
	contacts.Post("/import", middleware.Activity(database, "IMPORT_CONTACTS"), contactHandler.Import)
	contacts.Get("/:id", middleware.Activity(database, "GET_CONTACT"), contactHandler.Get)

	// Upload reports - uploader or admin/auditor, checked in the handler
	api.Get("/upload-reports/:id", auth.RequireAuth, reportHandler.Get)

	// Audit surfaces - admin/auditor role plus the per-request audit code
	duplicates := api.Group("/duplicates")
	duplicates.Use(auth.RequireAuth, auth.RequireRole(models.RoleAdmin, models.RoleAuditor), auth.RequireAuditCode)
	duplicates.Get("/groups", middleware.Activity(database, "LIST_DUPLICATE_GROUPS"), duplicateHandler.Groups)
	duplicates.Get("/items", middleware.Activity(database, "LIST_DUPLICATE_ITEMS"), duplicateHandler.Items)

	exports := api.Group("/exports")
	exports.Use(auth.RequireAuth, auth.RequireRole(models.RoleAdmin, models.RoleAuditor), auth.RequireAuditCode)
	exports.Get("/", exportHandler.List)
	exports.Get("/:id", exportHandler.Get)
	exports.Get("/:id/items", exportHandler.Items)

	activities := api.Group("/activities")
	activities.Use(auth.RequireAuth, auth.RequireRole(models.RoleAdmin, models.RoleAuditor), auth.RequireAuditCode)
	activities.Get("/", activityHandler.List)

	admin := api.Group("/admin")
	admin.Use(auth.RequireAuth, auth.RequireRole(models.RoleAdmin, models.RoleAuditor), auth.RequireAuditCode)
	admin.Get("/stats", adminHandler.Stats)

	return nil
}
