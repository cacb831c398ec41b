package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/queue"
)

// StepError reports which step of a multi-step write failed.  Steps that
// ran before it have already been committed and are not undone.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// EditLine is one editable line of a booking.
type EditLine struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	PriceAtBooking decimal.Decimal `json:"price_at_booking"`
}

// LineTotal is Quantity × PriceAtBooking.
func (l EditLine) LineTotal() decimal.Decimal {
	return l.PriceAtBooking.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// EditState is the in-memory state of the single-booking editor.  Its
// setters return a modified copy.
type EditState struct {
	RentalID      string       `json:"rental_id"`
	CustomerID    string       `json:"customer_id"`
	CustomerName  string       `json:"customer_name"`
	ContactNumber string       `json:"contact_number"`
	Address       string       `json:"address"`
	Status        model.Status `json:"status"`
	Items         []EditLine   `json:"items"`

	base model.BookingWithDetails
}

// NewEditState seeds an editor from a loaded booking.
func NewEditState(b model.BookingWithDetails) EditState {
	lines := make([]EditLine, 0, len(b.Items))
	for _, it := range b.Items {
		lines = append(lines, EditLine{
			ID:             it.ID,
			ItemID:         it.ItemID,
			Name:           it.NameOr("Unknown item"),
			Quantity:       it.Quantity,
			PriceAtBooking: it.PriceAtBooking,
		})
	}
	return EditState{
		RentalID:      b.ID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.Customer.Name,
		ContactNumber: b.Customer.ContactNumber,
		Address:       b.Customer.AddressOrEmpty(),
		Status:        b.Status,
		Items:         lines,
		base:          b,
	}
}

// SetQuantity sets the quantity of line lineID.  Quantities below 1 are
// raised to 1; lines cannot be removed here.  Unknown ids are ignored.
func (s EditState) SetQuantity(lineID string, q int) EditState {
	if q < 1 {
		q = 1
	}
	lines := make([]EditLine, len(s.Items))
	copy(lines, s.Items)
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = q
		}
	}
	s.Items = lines
	return s
}

// SetStatus changes the rental status.  Unknown statuses are rejected.
func (s EditState) SetStatus(st model.Status) (EditState, error) {
	if !st.Valid() {
		return s, fmt.Errorf("unknown status %q", st)
	}
	s.Status = st
	return s, nil
}

// SetCustomer replaces the editable customer fields.
func (s EditState) SetCustomer(name, contact, address string) EditState {
	s.CustomerName = name
	s.ContactNumber = contact
	s.Address = address
	return s
}

// Total recomputes the grand total from the current quantities.
func (s EditState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Items {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Booking returns the loaded booking with the edits applied.
func (s EditState) Booking() model.BookingWithDetails {
	b := s.base
	b.Customer.Name = s.CustomerName
	b.Customer.ContactNumber = s.ContactNumber
	addr := s.Address
	b.Customer.Address = &addr
	b.Status = s.Status
	qty := make(map[string]int, len(s.Items))
	for _, l := range s.Items {
		qty[l.ID] = l.Quantity
	}
	items := make([]model.RentalItem, len(b.Items))
	copy(items, b.Items)
	for i := range items {
		if q, ok := qty[items[i].ID]; ok {
			items[i].Quantity = q
		}
	}
	b.Items = items
	return b
}

// Editor persists single-booking edits.
type Editor struct {
	Customers Customers
	Rentals   Rentals
	Items     RentalItems
	Events    queue.Publisher
	Log       *slog.Logger
	Now       func() time.Time
}

// NewEditor constructs an Editor.  A nil publisher drops events.
func NewEditor(c Customers, r Rentals, i RentalItems, pub queue.Publisher, log *slog.Logger) *Editor {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Editor{Customers: c, Rentals: r, Items: i, Events: pub, Log: log, Now: time.Now}
}

// Save writes st for rental rentalID: the customer row, then the rental
// status, then every line quantity by its own id.  Writes run one after
// another and stop at the first failure, which is returned as a
// *StepError.
func (e *Editor) Save(ctx context.Context, rentalID string, st EditState) error {
	now := e.Now().UTC()
	addr := st.Address

	if err := e.Customers.Update(ctx, st.CustomerID, st.CustomerName, st.ContactNumber, &addr, now); err != nil {
		e.Log.Error("editor: update customer", "rental_id", rentalID, "customer_id", st.CustomerID, "err", err)
		return &StepError{Step: "customer", Err: err}
	}
	if err := e.Rentals.UpdateStatus(ctx, rentalID, st.Status, now); err != nil {
		e.Log.Error("editor: update rental", "rental_id", rentalID, "err", err)
		return &StepError{Step: "rental", Err: err}
	}
	for _, l := range st.Items {
		if err := e.Items.UpdateQuantity(ctx, l.ID, l.Quantity); err != nil {
			e.Log.Error("editor: update item", "rental_id", rentalID, "rental_item_id", l.ID, "err", err)
			return &StepError{Step: "item:" + l.ID, Err: err}
		}
	}

	b := st.Booking()
	b.ID = rentalID
	b.UpdatedAt = now
	if err := e.Events.PublishBooking(ctx, queue.NewBookingEvent(queue.EventBookingUpdated, b, now)); err != nil {
		e.Log.Warn("editor: publish booking.updated", "rental_id", rentalID, "err", err)
	}
	e.Log.Info("booking saved", "rental_id", rentalID, "status", st.Status, "lines", len(st.Items))
	return nil
}
