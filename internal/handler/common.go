// Package handler exposes the HTTP handlers of the booking service: the
// two HTML pages and the JSON API behind them.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/middleware"
	"github.com/iliyamo/catering-rentals/internal/notify"
	"github.com/iliyamo/catering-rentals/internal/repository"
	"github.com/iliyamo/catering-rentals/internal/wizard"
)

// Validator adapts validator/v10 to echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns the request validator installed on echo.
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Timing holds the user-visible delays.
type Timing struct {
	ToastDuration        time.Duration
	SuccessRedirectDelay time.Duration
	ErrorRedirectDelay   time.Duration
}

// bind decodes the request body into dst and validates it.  Problems are
// reported as blocking 422 responses by fail.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return &wizard.ValidationError{Msg: "invalid request body"}
	}
	if err := c.Validate(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return &wizard.ValidationError{Msg: "invalid field " + ve[0].Field()}
		}
		return &wizard.ValidationError{Msg: err.Error()}
	}
	return nil
}

// fail maps err to a JSON error response.
//
//	validation      -> 422 {"error", "blocking": true}
//	not found       -> 404
//	failed write    -> 502 {"error", "step"}
//	anything else   -> 500
func fail(c echo.Context, log *slog.Logger, err error) error {
	var se *booking.StepError
	switch {
	case errors.Is(err, wizard.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "blocking": true})
	case errors.Is(err, wizard.ErrUnknownItem):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "item not found in catalog", "blocking": true})
	case errors.Is(err, wizard.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "wizard not found"})
	case errors.Is(err, repository.ErrRentalNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
	case errors.Is(err, repository.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	case errors.Is(err, repository.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
	case errors.As(err, &se):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": se.Err.Error(), "step": se.Step})
	}
	log.Error("request failed",
		"err", err,
		"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"path", c.Path(),
		"method", c.Request().Method,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

// toaster pushes toasts into the caller's session.
type toaster struct {
	store    notify.Store
	duration time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func (t toaster) push(c echo.Context, typ notify.Type, msg string) {
	t.pushTo(c.Request().Context(), middleware.SessionID(c), typ, msg)
}

func (t toaster) pushTo(ctx context.Context, sid string, typ notify.Type, msg string) {
	if t.store == nil {
		return
	}
	if err := t.store.Push(ctx, sid, notify.New(typ, msg, t.duration, t.now())); err != nil {
		t.log.Warn("push toast", "sid", sid, "err", err)
	}
}

func (t toaster) drain(c echo.Context) []notify.Toast {
	if t.store == nil {
		return nil
	}
	ts, err := t.store.Drain(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		t.log.Warn("drain toasts", "err", err)
		return nil
	}
	return ts
}

// single builds a toast that is shown on the current response only.
func (t toaster) single(typ notify.Type, msg string) []notify.Toast {
	return []notify.Toast{notify.New(typ, msg, t.duration, t.now())}
}
