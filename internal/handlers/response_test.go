package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"contactdb/internal/models"
)

func TestPageQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/page", func(c fiber.Ctx) error {
		return c.JSON(pageQuery(c, 25))
	})

	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/page", 1, 25},
		{"explicit values", "/page?page=3&limit=50", 3, 50},
		{"garbage page clamps to 1", "/page?page=abc", 1, 25},
		{"garbage limit uses default", "/page?limit=abc", 1, 25},
		{"zero page clamps to 1", "/page?page=0", 1, 25},
		{"oversized limit clamps", "/page?limit=99999", 1, models.MaxPageSize},
		{"negative limit clamps to min", "/page?limit=-1", 1, models.MinPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			var got models.Page
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("pageQuery = %+v, want page=%d limit=%d", got, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestJSONError(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c fiber.Ctx) error {
		return jsonError(c, fiber.StatusNotFound, "contact not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"] != "contact not found" {
		t.Errorf(`body["error"] = %q, want "contact not found"`, body["error"])
	}
}
