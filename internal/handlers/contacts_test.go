package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"contactdb/internal/config"
	"contactdb/internal/db"
	"contactdb/internal/middleware"
	"contactdb/internal/models"
	"contactdb/internal/testutil"
)

func setupContactApp(t *testing.T) (*fiber.App, *db.DB) {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" && os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	database, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	auth, err := middleware.NewAuthMiddleware(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("NewAuthMiddleware() error = %v", err)
	}

	h := NewContactHandler(database, nil)

	app := fiber.New()
	app.Use(auth.RequireAuth)
	app.Get("/contacts", h.List)
	app.Post("/contacts/import", h.Import)
	app.Get("/contacts/export", h.Export)

	return app, database
}

func TestContactImport(t *testing.T) {
	app, database := setupContactApp(t)

	testutil.SeedContact(t, database, models.Contact{Email: "known@example.com", FirstName: "Old"})

	body := `{
		"filename": "batch.csv",
		"records": [
			{"email": "Dup@Example.com", "first_name": "First"},
			{"email": "dup@example.com", "first_name": "Second"},
			{"email": "known@example.com", "first_name": "New"},
			{"email": "fresh@example.com", "first_name": "Fresh"}
		]
	}`
	req := httptest.NewRequest("POST", "/contacts/import", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusCreated)
	}

	var report models.UploadReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Processed != 4 {
		t.Errorf("processed = %d, want 4", report.Processed)
	}
	if report.Inserted != 2 {
		t.Errorf("inserted = %d, want 2 (dup and fresh)", report.Inserted)
	}
	if report.Updated != 2 {
		t.Errorf("updated = %d, want 2 (second dup and known)", report.Updated)
	}
	if len(report.DupInFile) != 1 || report.DupInFile[0].Email != "dup@example.com" || report.DupInFile[0].Count != 2 {
		t.Errorf("dup_in_file = %v, want dup@example.com x2", report.DupInFile)
	}
	if len(report.DupExisting) != 1 || report.DupExisting[0] != "known@example.com" {
		t.Errorf("dup_existing = %v, want [known@example.com]", report.DupExisting)
	}

	// The report is also retrievable from the store.
	stored, err := database.GetUploadReport(context.Background(), report.ID)
	if err != nil {
		t.Fatalf("GetUploadReport() error = %v", err)
	}
	if stored.Filename != "batch.csv" {
		t.Errorf("stored filename = %q, want batch.csv", stored.Filename)
	}
}

func TestContactImport_EmptyRecords(t *testing.T) {
	app, _ := setupContactApp(t)

	req := httptest.NewRequest("POST", "/contacts/import", strings.NewReader(`{"records": []}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}

func TestContactExportCreatesSnapshot(t *testing.T) {
	app, database := setupContactApp(t)

	testutil.SeedContact(t, database, models.Contact{Email: "a@example.com", FirstName: "Ada"})
	testutil.SeedContact(t, database, models.Contact{Email: "b@example.com", FirstName: "Bea"})

	resp, err := app.Test(httptest.NewRequest("GET", "/contacts/export?format=csv&fields=email", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d csv rows, want 3 (header + 2 contacts)", len(records))
	}
	if !reflect.DeepEqual(records[0], []string{"email"}) {
		t.Errorf("header = %v, want [email]", records[0])
	}

	// The export froze a snapshot of exactly what was produced.
	metas, total, err := database.ListSnapshots(context.Background(), "", 0, 10)
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}
	if total != 1 || len(metas) != 1 {
		t.Fatalf("snapshots: total=%d len=%d, want 1/1", total, len(metas))
	}
	if metas[0].Total != 2 || metas[0].Format != models.FormatCSV {
		t.Errorf("snapshot meta = %+v, want total=2 format=csv", metas[0])
	}
	if !reflect.DeepEqual(metas[0].Fields, []string{"email"}) {
		t.Errorf("snapshot fields = %v, want [email]", metas[0].Fields)
	}
}

func TestContactExport_BadFormat(t *testing.T) {
	app, _ := setupContactApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/contacts/export?format=pdf", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
