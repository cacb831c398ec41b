// Package router registers the routes of the booking service on echo.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/catering-rentals/internal/handler"
	"github.com/iliyamo/catering-rentals/internal/middleware"
)

// Deps bundles the handlers and the per-route middleware.  RateLimit and
// Cache may be nil.
type Deps struct {
	DB            handler.Pinger
	Bookings      *handler.BookingHandler
	Catalog       *handler.CatalogHandler
	Wizards       *handler.WizardHandler
	Notifications *handler.NotificationHandler

	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

func orPass(m echo.MiddlewareFunc) echo.MiddlewareFunc {
	if m == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return m
}

// RegisterRoutes registers the pages, the JSON API and the health check.
// Everything except /healthz runs inside a session.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.DB))

	session := middleware.Session()
	e.GET("/", d.Bookings.IndexPage, session)
	e.GET("/rental/:id/edit", d.Bookings.EditPage, session)
	e.POST("/rental/:id/edit", d.Bookings.EditSubmit, session)

	api := e.Group("/api", session, orPass(d.RateLimit))
	api.GET("/bookings", d.Bookings.ListBookings)
	api.GET("/rentals/:id", d.Bookings.GetRental)
	api.PUT("/rentals/:id", d.Bookings.SaveRental)

	api.GET("/customers", d.Catalog.ListCustomers)
	api.GET("/items", d.Catalog.ListItems, orPass(d.Cache))

	api.GET("/notifications", d.Notifications.Drain)

	registerWizard(api.Group("/wizards"), d.Wizards)
}

func registerWizard(g *echo.Group, h *handler.WizardHandler) {
	g.POST("", h.Start)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Cancel)

	g.PUT("/:id/details", h.SetDetails)
	g.POST("/:id/customer", h.SetCustomer)
	g.POST("/:id/next", h.Next)
	g.POST("/:id/back", h.Back)
	g.PUT("/:id/filters", h.SetFilters)

	g.POST("/:id/picker/open", h.OpenPicker)
	g.POST("/:id/picker/increment", h.Increment)
	g.POST("/:id/picker/decrement", h.Decrement)
	g.PUT("/:id/picker/input", h.SetInput)
	g.POST("/:id/picker/confirm", h.Confirm)
	g.POST("/:id/picker/delete", h.DeletePicked)
	g.POST("/:id/picker/close", h.ClosePicker)

	g.POST("/:id/submit", h.Submit)
}
