package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"contactdb/internal/models"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// pageQuery reads and clamps the page/limit query parameters.
func pageQuery(c fiber.Ctx, defaultLimit int) models.Page {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, err := strconv.Atoi(c.Query("limit", ""))
	if err != nil || c.Query("limit") == "" {
		limit = defaultLimit
	}
	return models.NewPage(page, limit)
}
