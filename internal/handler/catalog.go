package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/wizard"
)

// CustomerLister lists customers for the existing-customer picker.
type CustomerLister interface {
	ListOrderedByName(ctx context.Context) ([]model.Customer, error)
}

// ItemLister lists the active catalog.
type ItemLister interface {
	ListActive(ctx context.Context) ([]model.Item, error)
}

// CatalogHandler serves the customer list and the item catalog.
type CatalogHandler struct {
	Customers CustomerLister
	Items     ItemLister
	Log       *slog.Logger
}

// ListCustomers returns every customer ordered by name.
//
//	GET /api/customers
func (h *CatalogHandler) ListCustomers(c echo.Context) error {
	cs, err := h.Customers.ListOrderedByName(c.Request().Context())
	if err != nil {
		h.Log.Error("load customers", "err", err)
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cs})
}

// ListItems returns the active catalog filtered by ?search= and
// ?category=, grouped by category, plus the list of all categories.
//
//	GET /api/items?search=&category=
func (h *CatalogHandler) ListItems(c echo.Context) error {
	items, err := h.Items.ListActive(c.Request().Context())
	if err != nil {
		h.Log.Error("load items", "err", err)
		return fail(c, h.Log, err)
	}
	visible := wizard.FilterItems(items, c.QueryParam("search"), c.QueryParam("category"))
	return c.JSON(http.StatusOK, echo.Map{
		"data":       visible,
		"groups":     wizard.GroupByCategory(visible),
		"categories": wizard.Categories(items),
	})
}
