package wizard

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/queue"
)

// StepError names the write step that failed during Submit.
type StepError = booking.StepError

// Steps reported through StepError.
const (
	StepWriteCustomer    = "customer"
	StepWriteRental      = "rental"
	StepWriteDeleteItems = "delete_items"
	StepWriteInsertItems = "insert_items"
)

// Customers is the part of the customer gateway the submitter writes to.
type Customers interface {
	Insert(ctx context.Context, c model.Customer) (*model.Customer, error)
	Update(ctx context.Context, id, name, contact string, address *string, at time.Time) error
}

// Rentals is the part of the rental gateway the submitter writes to.
type Rentals interface {
	Insert(ctx context.Context, r model.Rental) (*model.Rental, error)
	UpdateDetails(ctx context.Context, id string, rentalDate time.Time, returnDate *time.Time, notes *string, at time.Time) error
}

// RentalItems is the part of the rental item gateway the submitter
// writes to.
type RentalItems interface {
	InsertBatch(ctx context.Context, items []model.RentalItem) error
	DeleteByRentalID(ctx context.Context, rentalID string) error
}

// Result describes a successful submit.
type Result struct {
	RentalID   string `json:"rental_id"`
	CustomerID string `json:"customer_id"`
	Created    bool   `json:"created"`
	Message    string `json:"message"`
}

// Submitter writes a finished wizard through the gateway.
type Submitter struct {
	Customers Customers
	Rentals   Rentals
	Items     RentalItems
	Events    queue.Publisher
	Log       *slog.Logger
	Now       func() time.Time
}

// NewSubmitter constructs a Submitter.  A nil publisher drops events.
func NewSubmitter(c Customers, r Rentals, i RentalItems, pub queue.Publisher, log *slog.Logger) *Submitter {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Submitter{Customers: c, Rentals: r, Items: i, Events: pub, Log: log, Now: time.Now}
}

// Submit validates the item step and writes the booking.
//
// Create: insert the customer (skipped when an existing one was picked),
// insert the rental as active, insert all lines.  Edit: update the
// customer, update the rental dates and notes, delete every line, insert
// every line again.  Steps run in order and stop at the first failure,
// reported as *StepError; committed steps are not undone.
func (s *Submitter) Submit(ctx context.Context, w *Wizard) (Result, error) {
	if err := w.validateItems(); err != nil {
		return Result{}, err
	}
	if err := w.validateCustomer(); err != nil {
		return Result{}, err
	}
	rentalDate, _ := time.Parse(DateLayout, w.Details.RentalDate)
	var returnDate *time.Time
	if w.Details.ReturnDate != "" {
		t, _ := time.Parse(DateLayout, w.Details.ReturnDate)
		returnDate = &t
	}
	if w.Mode == ModeEdit {
		return s.update(ctx, w, rentalDate, returnDate)
	}
	return s.create(ctx, w, rentalDate, returnDate)
}

func (s *Submitter) create(ctx context.Context, w *Wizard, rentalDate time.Time, returnDate *time.Time) (Result, error) {
	now := s.Now().UTC()
	d := w.Details

	var customer model.Customer
	if w.CustomerMode == CustomerExisting {
		customer = model.Customer{ID: w.SelectedCustomerID, Name: d.CustomerName, ContactNumber: d.ContactNumber, Address: optional(d.Address)}
	} else {
		c, err := s.Customers.Insert(ctx, model.Customer{
			Name:          strings.TrimSpace(d.CustomerName),
			ContactNumber: strings.TrimSpace(d.ContactNumber),
			Address:       optional(d.Address),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			s.Log.Error("wizard: insert customer", "wizard_id", w.ID, "err", err)
			return Result{}, &StepError{Step: StepWriteCustomer, Err: err}
		}
		customer = *c
	}

	rental, err := s.Rentals.Insert(ctx, model.Rental{
		CustomerID: customer.ID,
		RentalDate: rentalDate,
		ReturnDate: returnDate,
		Status:     model.StatusActive,
		Notes:      optionalRaw(d.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.Log.Error("wizard: insert rental", "wizard_id", w.ID, "customer_id", customer.ID, "err", err)
		return Result{}, &StepError{Step: StepWriteRental, Err: err}
	}

	lines := lineItems(rental.ID, w.Selection, now)
	if err := s.Items.InsertBatch(ctx, lines); err != nil {
		s.Log.Error("wizard: insert rental items", "wizard_id", w.ID, "rental_id", rental.ID, "err", err)
		return Result{}, &StepError{Step: StepWriteInsertItems, Err: err}
	}

	s.publish(ctx, queue.EventBookingCreated, model.BookingWithDetails{Rental: *rental, Customer: customer, Items: lines}, now)
	s.Log.Info("booking created", "rental_id", rental.ID, "customer_id", customer.ID, "lines", len(lines))
	return Result{RentalID: rental.ID, CustomerID: customer.ID, Created: true, Message: "Order successfully placed! 🎉"}, nil
}

func (s *Submitter) update(ctx context.Context, w *Wizard, rentalDate time.Time, returnDate *time.Time) (Result, error) {
	now := s.Now().UTC()
	d := w.Details
	name := strings.TrimSpace(d.CustomerName)
	contact := strings.TrimSpace(d.ContactNumber)
	addr := optional(d.Address)
	notes := optionalRaw(d.Notes)

	if err := s.Customers.Update(ctx, w.CustomerID, name, contact, addr, now); err != nil {
		s.Log.Error("wizard: update customer", "wizard_id", w.ID, "customer_id", w.CustomerID, "err", err)
		return Result{}, &StepError{Step: StepWriteCustomer, Err: err}
	}
	if err := s.Rentals.UpdateDetails(ctx, w.RentalID, rentalDate, returnDate, notes, now); err != nil {
		s.Log.Error("wizard: update rental", "wizard_id", w.ID, "rental_id", w.RentalID, "err", err)
		return Result{}, &StepError{Step: StepWriteRental, Err: err}
	}
	if err := s.Items.DeleteByRentalID(ctx, w.RentalID); err != nil {
		s.Log.Error("wizard: delete rental items", "wizard_id", w.ID, "rental_id", w.RentalID, "err", err)
		return Result{}, &StepError{Step: StepWriteDeleteItems, Err: err}
	}
	lines := lineItems(w.RentalID, w.Selection, now)
	if err := s.Items.InsertBatch(ctx, lines); err != nil {
		s.Log.Error("wizard: insert rental items", "wizard_id", w.ID, "rental_id", w.RentalID, "err", err)
		return Result{}, &StepError{Step: StepWriteInsertItems, Err: err}
	}

	b := model.BookingWithDetails{
		Rental: model.Rental{
			ID:         w.RentalID,
			CustomerID: w.CustomerID,
			RentalDate: rentalDate,
			ReturnDate: returnDate,
			Status:     w.Status,
			Notes:      notes,
			UpdatedAt:  now,
		},
		Customer: model.Customer{ID: w.CustomerID, Name: name, ContactNumber: contact, Address: addr},
		Items:    lines,
	}
	s.publish(ctx, queue.EventBookingUpdated, b, now)
	s.Log.Info("booking updated", "rental_id", w.RentalID, "lines", len(lines))
	return Result{RentalID: w.RentalID, CustomerID: w.CustomerID, Message: "Booking updated successfully! 🎉"}, nil
}

func (s *Submitter) publish(ctx context.Context, kind string, b model.BookingWithDetails, at time.Time) {
	if err := s.Events.PublishBooking(ctx, queue.NewBookingEvent(kind, b, at)); err != nil {
		s.Log.Warn("wizard: publish "+kind, "rental_id", b.ID, "err", err)
	}
}

func lineItems(rentalID string, sel Selection, at time.Time) []model.RentalItem {
	picked := sel.Items()
	out := make([]model.RentalItem, 0, len(picked))
	for _, it := range picked {
		name := it.Name
		out = append(out, model.RentalItem{
			RentalID:       rentalID,
			ItemID:         it.ItemID,
			Quantity:       it.Quantity,
			PriceAtBooking: it.Price,
			ItemName:       &name,
			CreatedAt:      at,
		})
	}
	return out
}

// optional trims s and maps an empty result to NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optionalRaw maps "" to NULL and keeps other values verbatim.
func optionalRaw(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
