package booking

import "github.com/iliyamo/catering-rentals/internal/model"

// Counts summarises a booking set by status.
type Counts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Overdue  int `json:"overdue"`
	Returned int `json:"returned"`
}

// Of returns the count for a status filter; FilterAll yields Total.
func (c Counts) Of(f model.StatusFilter) int {
	switch model.Status(f) {
	case model.StatusActive:
		return c.Active
	case model.StatusOverdue:
		return c.Overdue
	case model.StatusReturned:
		return c.Returned
	}
	return c.Total
}

// Count tallies bookings per status.  Callers pass the full set, never a
// filtered one.
func Count(bookings []model.BookingWithDetails) Counts {
	c := Counts{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case model.StatusActive:
			c.Active++
		case model.StatusOverdue:
			c.Overdue++
		case model.StatusReturned:
			c.Returned++
		}
	}
	return c
}

// Filter returns the bookings matching f.  FilterAll returns bookings
// unchanged; any other filter returns a new slice and leaves the input
// untouched.
func Filter(bookings []model.BookingWithDetails, f model.StatusFilter) []model.BookingWithDetails {
	if f == model.FilterAll {
		return bookings
	}
	out := make([]model.BookingWithDetails, 0, len(bookings))
	for _, b := range bookings {
		if f.Matches(b.Status) {
			out = append(out, b)
		}
	}
	return out
}
