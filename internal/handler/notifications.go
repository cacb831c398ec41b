package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/catering-rentals/internal/notify"
)

// NotificationHandler hands pending toasts to the browser.
type NotificationHandler struct {
	Toasts notify.Store
	Log    *slog.Logger
}

// Drain returns and clears the session's pending toasts.  Each toast
// carries remaining_ms, the time it should stay on screen.
//
//	GET /api/notifications
func (h *NotificationHandler) Drain(c echo.Context) error {
	ts := toaster{store: h.Toasts, log: h.Log, now: time.Now}.drain(c)
	now := time.Now()
	out := make([]echo.Map, 0, len(ts))
	for _, t := range ts {
		out = append(out, echo.Map{
			"id":           t.ID,
			"message":      t.Message,
			"type":         t.Type,
			"duration_ms":  t.DurationMS,
			"remaining_ms": t.Remaining(now).Milliseconds(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
