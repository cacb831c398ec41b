package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a rental.  It is a closed enumeration;
// transitions are always manual (nothing moves a rental to overdue on its
// own).
type Status string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusActive, StatusOverdue, StatusReturned}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

// ParseStatus converts raw into a Status.  ok is false for unknown values.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}

// StatusFilter selects bookings by status on the list view.  FilterAll
// matches every booking.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all" (or an empty string) and the three
// statuses.  Anything else reports ok=false.
func ParseStatusFilter(raw string) (StatusFilter, bool) {
	if raw == "" || raw == string(FilterAll) {
		return FilterAll, true
	}
	if s, ok := ParseStatus(raw); ok {
		return StatusFilter(s), true
	}
	return "", false
}

// Matches reports whether a booking with status s passes the filter.
func (f StatusFilter) Matches(s Status) bool {
	return f == FilterAll || Status(f) == s
}

// Rental is the root aggregate of a booking and mirrors the `rentals`
// table.  ReturnDate and Notes are optional.
type Rental struct {
	ID         string     `db:"id" json:"id"`
	CustomerID string     `db:"customer_id" json:"customer_id"`
	RentalDate time.Time  `db:"rental_date" json:"rental_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date"`
	Status     Status     `db:"status" json:"status"`
	Notes      *string    `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// RentalItem is one line of a rental.  PriceAtBooking is the catalog
// price captured when the line was written.  ItemName is resolved from
// the catalog when reading and is never stored on the row.
type RentalItem struct {
	ID             string          `db:"id" json:"id"`
	RentalID       string          `db:"rental_id" json:"rental_id"`
	ItemID         string          `db:"item_id" json:"item_id"`
	Quantity       int             `db:"quantity" json:"quantity"`
	PriceAtBooking decimal.Decimal `db:"price_at_booking" json:"price_at_booking"`
	ItemName       *string         `db:"item_name" json:"item_name,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// LineTotal is quantity × price_at_booking.
func (ri RentalItem) LineTotal() decimal.Decimal {
	return ri.PriceAtBooking.Mul(decimal.NewFromInt(int64(ri.Quantity)))
}

// NameOr returns the resolved item name or def if the catalog row was
// not found.
func (ri RentalItem) NameOr(def string) string {
	if ri.ItemName == nil {
		return def
	}
	return *ri.ItemName
}

// BookingWithDetails is a rental joined in memory with its customer and
// its line items.  It is a view model and is never persisted as such.
type BookingWithDetails struct {
	Rental
	Customer Customer     `json:"customer"`
	Items    []RentalItem `json:"items"`
}

// Total sums quantity × price_at_booking over the current items.  It is
// recomputed on every call.
func (b BookingWithDetails) Total() decimal.Decimal {
	return SumItems(b.Items)
}

// SumItems sums the line totals of items.
func SumItems(items []RentalItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
