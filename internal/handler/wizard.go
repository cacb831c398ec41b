package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/notify"
	"github.com/iliyamo/catering-rentals/internal/wizard"
)

// CustomerGetter resolves the customer picked in existing-customer mode.
type CustomerGetter interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

// WizardHandler drives booking wizards kept in a wizard.Store.  Every
// call loads the wizard, applies one operation and stores it back.
type WizardHandler struct {
	Store     wizard.Store
	Loader    *booking.Loader
	Customers CustomerGetter
	Items     ItemLister
	Submitter *wizard.Submitter
	Toasts    notify.Store
	Timing    Timing
	Log       *slog.Logger
	Now       func() time.Time
}

func (h *WizardHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *WizardHandler) toaster() toaster {
	return toaster{store: h.Toasts, duration: h.Timing.ToastDuration, log: h.Log, now: h.now}
}

// wizardView is a wizard plus the values derived from it.  Groups and
// categories are filled on the item step only.
type wizardView struct {
	*wizard.Wizard
	ModifiedFields []string               `json:"modified_fields"`
	TotalQuantity  int                    `json:"total_quantity"`
	TotalPrice     decimal.Decimal        `json:"total_price"`
	Groups         []wizard.CategoryGroup `json:"groups,omitempty"`
	Categories     []string               `json:"categories,omitempty"`
}

func (h *WizardHandler) respond(c echo.Context, status int, w *wizard.Wizard) error {
	v := wizardView{
		Wizard:         w,
		ModifiedFields: w.ModifiedFields(),
		TotalQuantity:  w.Selection.TotalQuantity(),
		TotalPrice:     w.Selection.TotalPrice(),
	}
	if v.ModifiedFields == nil {
		v.ModifiedFields = []string{}
	}
	if w.Step == wizard.StepItems {
		catalog, err := h.Items.ListActive(c.Request().Context())
		if err != nil {
			h.Log.Error("load items", "wizard_id", w.ID, "err", err)
			return fail(c, h.Log, err)
		}
		v.Groups = wizard.GroupByCategory(w.Visible(catalog))
		v.Categories = wizard.Categories(catalog)
	}
	return c.JSON(status, echo.Map{"data": v})
}

// update loads the wizard named by :id, applies fn and stores the result.
// fn errors are returned to the client and nothing is stored.
func (h *WizardHandler) update(c echo.Context, fn func(ctx context.Context, w *wizard.Wizard) error) error {
	ctx := c.Request().Context()
	w, err := h.Store.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	if err := fn(ctx, w); err != nil {
		return fail(c, h.Log, err)
	}
	if err := h.Store.Put(ctx, w); err != nil {
		h.Log.Error("store wizard", "wizard_id", w.ID, "err", err)
		return fail(c, h.Log, err)
	}
	return h.respond(c, http.StatusOK, w)
}

// catalog loads the active catalog for picker operations.
func (h *WizardHandler) catalog(ctx context.Context) ([]model.Item, error) {
	items, err := h.Items.ListActive(ctx)
	if err != nil {
		h.Log.Error("load items", "err", err)
	}
	return items, err
}

// StartRequest opens a wizard.  With RentalID set the wizard edits that
// booking.
type StartRequest struct {
	RentalID string `json:"rental_id"`
}

// Start opens a new wizard.
//
//	POST /api/wizards
func (h *WizardHandler) Start(c echo.Context) error {
	var req StartRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	ctx := c.Request().Context()
	id := uuid.NewString()
	w := wizard.NewCreate(id, h.now())
	if req.RentalID != "" {
		b, err := h.Loader.Get(ctx, req.RentalID)
		if err != nil {
			return fail(c, h.Log, err)
		}
		w = wizard.NewEdit(id, *b, h.now())
	}
	if err := h.Store.Put(ctx, w); err != nil {
		h.Log.Error("store wizard", "wizard_id", id, "err", err)
		return fail(c, h.Log, err)
	}
	return h.respond(c, http.StatusCreated, w)
}

// Get returns the wizard.
//
//	GET /api/wizards/:id
func (h *WizardHandler) Get(c echo.Context) error {
	w, err := h.Store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return h.respond(c, http.StatusOK, w)
}

// DetailsRequest carries the step-1 fields.
type DetailsRequest struct {
	CustomerName  string `json:"customer_name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	RentalDate    string `json:"rental_date"`
	ReturnDate    string `json:"return_date"`
	Notes         string `json:"notes"`
}

// SetDetails replaces the step-1 fields.
//
//	PUT /api/wizards/:id/details
func (h *WizardHandler) SetDetails(c echo.Context) error {
	var req DetailsRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.SetDetails(wizard.Details(req))
		return nil
	})
}

// CustomerRequest switches customer mode.  New selects new-customer mode;
// otherwise CustomerID picks an existing customer, and an empty
// CustomerID only switches to existing mode.
type CustomerRequest struct {
	New        bool   `json:"new"`
	CustomerID string `json:"customer_id"`
}

// SetCustomer changes customer mode or picks a customer.
//
//	POST /api/wizards/:id/customer
func (h *WizardHandler) SetCustomer(c echo.Context) error {
	var req CustomerRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	return h.update(c, func(ctx context.Context, w *wizard.Wizard) error {
		switch {
		case req.New:
			w.UseNewCustomer()
		case req.CustomerID == "":
			w.UseExistingCustomer()
		default:
			cust, err := h.Customers.GetByID(ctx, req.CustomerID)
			if err != nil {
				return err
			}
			w.SelectCustomer(*cust)
		}
		return nil
	})
}

// Next validates step 1 and moves to the item step.
//
//	POST /api/wizards/:id/next
func (h *WizardHandler) Next(c echo.Context) error {
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error { return w.Next() })
}

// Back returns to step 1.
//
//	POST /api/wizards/:id/back
func (h *WizardHandler) Back(c echo.Context) error {
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.Back()
		return nil
	})
}

// FiltersRequest sets the catalog browse filters.
type FiltersRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// SetFilters changes search text and category.
//
//	PUT /api/wizards/:id/filters
func (h *WizardHandler) SetFilters(c echo.Context) error {
	var req FiltersRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.SetFilters(req.Search, req.Category)
		return nil
	})
}

// PickerOpenRequest names the item to edit.
type PickerOpenRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// OpenPicker opens the quantity picker.
//
//	POST /api/wizards/:id/picker/open
func (h *WizardHandler) OpenPicker(c echo.Context) error {
	var req PickerOpenRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	return h.update(c, func(ctx context.Context, w *wizard.Wizard) error {
		catalog, err := h.catalog(ctx)
		if err != nil {
			return err
		}
		return w.OpenPicker(catalog, req.ItemID)
	})
}

// Increment adds one to the picker field.
//
//	POST /api/wizards/:id/picker/increment
func (h *WizardHandler) Increment(c echo.Context) error {
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.IncrementPicker()
		return nil
	})
}

// Decrement subtracts one from the picker field.
//
//	POST /api/wizards/:id/picker/decrement
func (h *WizardHandler) Decrement(c echo.Context) error {
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.DecrementPicker()
		return nil
	})
}

// PickerInputRequest is the raw picker field text.
type PickerInputRequest struct {
	Value string `json:"value"`
}

// SetInput replaces the picker field text.
//
//	PUT /api/wizards/:id/picker/input
func (h *WizardHandler) SetInput(c echo.Context) error {
	var req PickerInputRequest
	if err := bind(c, &req); err != nil {
		return fail(c, h.Log, err)
	}
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.SetPickerInput(req.Value)
		return nil
	})
}

// Confirm applies the picker value and advances to the next item.
//
//	POST /api/wizards/:id/picker/confirm
func (h *WizardHandler) Confirm(c echo.Context) error {
	return h.update(c, func(ctx context.Context, w *wizard.Wizard) error {
		catalog, err := h.catalog(ctx)
		if err != nil {
			return err
		}
		w.ConfirmPicker(catalog)
		return nil
	})
}

// DeletePicked drops the picker's item from the selection.
//
//	POST /api/wizards/:id/picker/delete
func (h *WizardHandler) DeletePicked(c echo.Context) error {
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.DeletePicked()
		return nil
	})
}

// ClosePicker closes the picker without changes.
//
//	POST /api/wizards/:id/picker/close
func (h *WizardHandler) ClosePicker(c echo.Context) error {
	return h.update(c, func(_ context.Context, w *wizard.Wizard) error {
		w.ClosePicker()
		return nil
	})
}

// Submit writes the booking.  On success the wizard is discarded, a toast
// is queued and the client is told to return to the list after the
// success delay.
//
//	POST /api/wizards/:id/submit
func (h *WizardHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	w, err := h.Store.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	res, err := h.Submitter.Submit(ctx, w)
	if err != nil {
		var se *wizard.StepError
		if errors.As(err, &se) {
			verb := "create"
			if w.Mode == wizard.ModeEdit {
				verb = "update"
			}
			h.toaster().push(c, notify.Error, "Failed to "+verb+" booking: "+se.Err.Error())
		}
		return fail(c, h.Log, err)
	}
	if err := h.Store.Delete(ctx, w.ID); err != nil {
		h.Log.Warn("discard wizard", "wizard_id", w.ID, "err", err)
	}
	h.toaster().push(c, notify.Success, res.Message)
	return c.JSON(http.StatusOK, echo.Map{
		"data":              res,
		"redirect":          "/",
		"redirect_after_ms": h.Timing.SuccessRedirectDelay.Milliseconds(),
	})
}

// Cancel discards the wizard.  Pending writes of an earlier submit are
// not affected.
//
//	DELETE /api/wizards/:id
func (h *WizardHandler) Cancel(c echo.Context) error {
	if err := h.Store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
