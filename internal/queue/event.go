// Package queue carries booking events over the message broker.  Events
// are informational: they are published after a write has completed and
// nothing in the request path waits for them.
package queue

import (
	"time"

	"github.com/iliyamo/catering-rentals/internal/model"
)

// Routing keys for booking events.
const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
)

// BookingEvent describes a booking right after it was created or edited.
// It carries enough for the booking log (and any other consumer) without
// querying the gateway again.
type BookingEvent struct {
	Type          string `json:"type"`
	RentalID      string `json:"rental_id"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Status        string `json:"status"`
	RentalDate    string `json:"rental_date"`
	ItemCount     int    `json:"item_count"`
	TotalQuantity int    `json:"total_quantity"`
	Total         string `json:"total"`
	OccurredAt    string `json:"occurred_at"`
}

// NewBookingEvent builds an event of the given type from a booking view.
func NewBookingEvent(kind string, b model.BookingWithDetails, at time.Time) BookingEvent {
	qty := 0
	for _, it := range b.Items {
		qty += it.Quantity
	}
	return BookingEvent{
		Type:          kind,
		RentalID:      b.ID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.Customer.Name,
		Status:        string(b.Status),
		RentalDate:    b.RentalDate.Format("2006-01-02"),
		ItemCount:     len(b.Items),
		TotalQuantity: qty,
		Total:         b.Total().StringFixed(2),
		OccurredAt:    at.UTC().Format(time.RFC3339),
	}
}
