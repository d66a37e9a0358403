package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"contactdb/internal/db"
	"contactdb/internal/models"
)

// Activity returns middleware that appends one audit event per request
// after the response is produced. Recording happens off the request path;
// failures are logged and never surface to the caller.
func Activity(database *db.DB, action string) fiber.Handler {
	return func(c fiber.Ctx) error {
		started := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		actor, _ := ActorFromCtx(c)
		if actor.Name == "" {
			actor.Name = "guest"
		}

		// Fiber's accessors return views into fasthttp's request buffers,
		// which are recycled once the handler chain returns. Copy them
		// before handing the event to the goroutine.
		event := models.Activity{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Action:    action,
			Method:    strings.Clone(c.Method()),
			Route:     strings.Clone(c.OriginalURL()),
			Status:    status,
			Meta:      map[string]any{"duration_ms": time.Since(started).Milliseconds()},
			IP:        strings.Clone(c.IP()),
			UserAgent: strings.Clone(c.Get(fiber.HeaderUserAgent)),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := database.InsertActivity(ctx, &event); err != nil {
				slog.Error("failed to record activity", "action", action, "error", err)
			}
		}()

		return err
	}
}
