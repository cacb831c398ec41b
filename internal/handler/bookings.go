package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/notify"
	"github.com/iliyamo/catering-rentals/internal/repository"
	"github.com/iliyamo/catering-rentals/internal/view"
)

// BookingHandler serves the booking list and the single-booking editor,
// both as HTML pages and as JSON.
type BookingHandler struct {
	Loader *booking.Loader
	Editor *booking.Editor
	Toasts notify.Store
	Timing Timing
	Log    *slog.Logger
	Now    func() time.Time
}

func (h *BookingHandler) toaster() toaster {
	now := h.Now
	if now == nil {
		now = time.Now
	}
	return toaster{store: h.Toasts, duration: h.Timing.ToastDuration, log: h.Log, now: now}
}

// ListBookings returns every booking matching ?status= together with the
// per-status counts of the full set.
//
//	GET /api/bookings?status=all|active|returned|overdue
func (h *BookingHandler) ListBookings(c echo.Context) error {
	f, ok := model.ParseStatusFilter(c.QueryParam("status"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	all, err := h.Loader.List(c.Request().Context())
	if err != nil {
		h.toaster().push(c, notify.Error, "Failed to load bookings")
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":   bookingViews(booking.Filter(all, f)),
		"counts": booking.Count(all),
		"filter": f,
	})
}

// bookingView adds the computed total to a booking.
type bookingView struct {
	model.BookingWithDetails
	Total decimal.Decimal `json:"total"`
}

func bookingViews(bs []model.BookingWithDetails) []bookingView {
	out := make([]bookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, bookingView{BookingWithDetails: b, Total: b.Total()})
	}
	return out
}

// editorView is the editor state plus its live total.
type editorView struct {
	booking.EditState
	Total decimal.Decimal `json:"total"`
}

// loadFailure answers a failed editor load: a toast and a delayed
// redirect to the list.
func (h *BookingHandler) loadFailure(c echo.Context, err error) error {
	msg, status := "Failed to load booking", http.StatusInternalServerError
	if errors.Is(err, repository.ErrRentalNotFound) {
		msg, status = "Booking not found", http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.Log.Error("load booking", "rental_id", c.Param("id"), "err", err)
	}
	h.toaster().push(c, notify.Error, msg)
	return c.JSON(status, echo.Map{
		"error":             msg,
		"redirect":          "/",
		"redirect_after_ms": h.Timing.ErrorRedirectDelay.Milliseconds(),
	})
}

// GetRental loads one booking for the editor.
//
//	GET /api/rentals/:id
func (h *BookingHandler) GetRental(c echo.Context) error {
	b, err := h.Loader.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.loadFailure(c, err)
	}
	st := booking.NewEditState(*b)
	return c.JSON(http.StatusOK, echo.Map{"data": editorView{EditState: st, Total: st.Total()}})
}

// SaveRentalRequest is the editor payload.  Quantities below 1 are raised
// to 1.
type SaveRentalRequest struct {
	CustomerName  string         `json:"customer_name"`
	ContactNumber string         `json:"contact_number"`
	Address       string         `json:"address"`
	Status        string         `json:"status" validate:"required,oneof=active returned overdue"`
	Items         []LineQuantity `json:"items" validate:"dive"`
}

// LineQuantity sets the quantity of one rental item.
type LineQuantity struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity"`
}

func applyEdits(st booking.EditState, req SaveRentalRequest) (booking.EditState, error) {
	st = st.SetCustomer(req.CustomerName, req.ContactNumber, req.Address)
	st, err := st.SetStatus(model.Status(req.Status))
	if err != nil {
		return st, err
	}
	for _, l := range req.Items {
		st = st.SetQuantity(l.ID, l.Quantity)
	}
	return st, nil
}

// SaveRental writes the editor state: customer, then rental status, then
// each line quantity.
//
//	PUT /api/rentals/:id
func (h *BookingHandler) SaveRental(c echo.Context) error {
	var req SaveRentalRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	b, err := h.Loader.Get(ctx, id)
	if err != nil {
		return h.loadFailure(c, err)
	}
	st, err := applyEdits(booking.NewEditState(*b), req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	if err := h.Editor.Save(ctx, id, st); err != nil {
		h.toaster().push(c, notify.Error, "Failed to save changes")
		return fail(c, h.Log, err)
	}
	h.toaster().push(c, notify.Success, "Changes saved successfully! 🎉")
	return c.JSON(http.StatusOK, echo.Map{
		"data":              editorView{EditState: st, Total: st.Total()},
		"redirect":          "/",
		"redirect_after_ms": h.Timing.SuccessRedirectDelay.Milliseconds(),
	})
}

// IndexPage renders the booking list.  An unknown ?status= shows all.
//
//	GET /
func (h *BookingHandler) IndexPage(c echo.Context) error {
	f, ok := model.ParseStatusFilter(c.QueryParam("status"))
	if !ok {
		f = model.FilterAll
	}
	t := h.toaster()
	all, err := h.Loader.List(c.Request().Context())
	toasts := t.drain(c)
	if err != nil {
		toasts = append(toasts, t.single(notify.Error, "Failed to load bookings")...)
		all = nil
	}
	return c.Render(http.StatusOK, view.PageIndex, view.NewIndexPage(all, f, toasts))
}

// EditPage renders the single-booking editor.  A booking that cannot be
// loaded shows a notice and sends the browser back to the list.
//
//	GET /rental/:id/edit
func (h *BookingHandler) EditPage(c echo.Context) error {
	t := h.toaster()
	b, err := h.Loader.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.pageLoadFailure(c, err)
	}
	return c.Render(http.StatusOK, view.PageEdit, view.NewEditPage(booking.NewEditState(*b), t.drain(c)))
}

func (h *BookingHandler) pageLoadFailure(c echo.Context, err error) error {
	msg, status := "Failed to load booking", http.StatusInternalServerError
	if errors.Is(err, repository.ErrRentalNotFound) {
		msg, status = "Booking not found", http.StatusNotFound
	} else {
		h.Log.Error("load booking", "rental_id", c.Param("id"), "err", err)
	}
	t := h.toaster()
	return c.Render(status, view.PageNotice,
		view.NewNoticePage(msg, "/", h.Timing.ErrorRedirectDelay, t.single(notify.Error, msg)))
}

// EditSubmit handles the editor form.  Line quantities arrive as
// qty_<rental item id> fields.
//
//	POST /rental/:id/edit
func (h *BookingHandler) EditSubmit(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	t := h.toaster()
	b, err := h.Loader.Get(ctx, id)
	if err != nil {
		return h.pageLoadFailure(c, err)
	}

	form, err := c.FormParams()
	if err != nil {
		h.Log.Warn("parse edit form", "rental_id", id, "err", err)
		return c.Render(http.StatusUnprocessableEntity, view.PageEdit,
			view.NewEditPage(booking.NewEditState(*b), t.single(notify.Warning, "Could not read the form, please try again")))
	}
	req := SaveRentalRequest{
		CustomerName:  form.Get("customer_name"),
		ContactNumber: form.Get("contact_number"),
		Address:       form.Get("address"),
		Status:        form.Get("status"),
	}
	for key := range form {
		if lineID, ok := strings.CutPrefix(key, "qty_"); ok {
			q, _ := strconv.Atoi(form.Get(key))
			req.Items = append(req.Items, LineQuantity{ID: lineID, Quantity: q})
		}
	}

	st, err := applyEdits(booking.NewEditState(*b), req)
	if err != nil {
		return c.Render(http.StatusUnprocessableEntity, view.PageEdit,
			view.NewEditPage(booking.NewEditState(*b), t.single(notify.Warning, "Please choose a valid status")))
	}
	if err := h.Editor.Save(ctx, id, st); err != nil {
		return c.Render(http.StatusBadGateway, view.PageEdit,
			view.NewEditPage(st, t.single(notify.Error, "Failed to save changes")))
	}
	const msg = "Changes saved successfully! 🎉"
	t.push(c, notify.Success, msg)
	return c.Render(http.StatusOK, view.PageNotice,
		view.NewNoticePage(msg, "/", h.Timing.SuccessRedirectDelay, nil))
}
