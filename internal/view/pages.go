package view

import (
	"time"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/notify"
)

// Page carries what every page shows: title, pending toasts and an
// optional delayed redirect.
type Page struct {
	Title         string
	Toasts        []notify.Toast
	RedirectTo    string
	RedirectAfter time.Duration
}

// Tab is one status filter link on the list page.
type Tab struct {
	Value string
	Label string
	Count int
}

// IndexPage is the booking list.
type IndexPage struct {
	Page
	Counts   booking.Counts
	Filter   string
	Tabs     []Tab
	Bookings []model.BookingWithDetails
}

// NewIndexPage builds the list page.  Counts come from the full set,
// bookings from the filtered set.
func NewIndexPage(all []model.BookingWithDetails, f model.StatusFilter, toasts []notify.Toast) IndexPage {
	counts := booking.Count(all)
	tabs := []Tab{{Value: string(model.FilterAll), Label: "All", Count: counts.Total}}
	for _, s := range model.Statuses {
		tabs = append(tabs, Tab{Value: string(s), Label: statusLabel(s), Count: counts.Of(model.StatusFilter(s))})
	}
	return IndexPage{
		Page:     Page{Title: "Bookings", Toasts: toasts},
		Counts:   counts,
		Filter:   string(f),
		Tabs:     tabs,
		Bookings: booking.Filter(all, f),
	}
}

// EditPage is the single-booking editor.
type EditPage struct {
	Page
	State    booking.EditState
	Statuses []model.Status
}

// NewEditPage builds the editor page for st.
func NewEditPage(st booking.EditState, toasts []notify.Toast) EditPage {
	return EditPage{
		Page:     Page{Title: "Edit Booking", Toasts: toasts},
		State:    st,
		Statuses: model.Statuses,
	}
}

// NoticePage shows a message and sends the browser to RedirectTo after
// RedirectAfter.
type NoticePage struct {
	Page
	Message string
}

// NewNoticePage builds a notice that redirects to to after delay.
func NewNoticePage(msg, to string, delay time.Duration, toasts []notify.Toast) NoticePage {
	return NoticePage{
		Page:    Page{Title: "Notice", Toasts: toasts, RedirectTo: to, RedirectAfter: delay},
		Message: msg,
	}
}
