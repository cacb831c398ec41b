// Package wizard implements the two-step booking wizard: customer details
// first, then item selection through the quantity picker, then a
// sequential write of customer, rental and line items.
//
// A Wizard is plain data.  The HTTP layer loads it from a Store, calls
// one operation and stores it back, so every operation here is
// synchronous and free of I/O.
package wizard

import (
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/catering-rentals/internal/model"
)

// DateLayout is the wire format of rental and return dates.
const DateLayout = "2006-01-02"

// Mode tells whether the wizard creates a booking or edits one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Step is the current wizard screen.
type Step string

const (
	StepCustomer Step = "customer"
	StepItems    Step = "items"
)

// CustomerMode selects between typing a new customer and picking one.
type CustomerMode string

const (
	CustomerNew      CustomerMode = "new"
	CustomerExisting CustomerMode = "existing"
)

// ErrValidation marks input problems that block the wizard.  The message
// of the wrapping error is meant for the user.
var ErrValidation = errors.New("validation failed")

// ErrUnknownItem is returned when the picker is opened on an item that is
// not in the active catalog.
var ErrUnknownItem = errors.New("item not in catalog")

// ValidationError is a blocking, user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// Details are the step-1 fields.  Dates are kept as typed (YYYY-MM-DD).
type Details struct {
	CustomerName  string `json:"customer_name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	RentalDate    string `json:"rental_date"`
	ReturnDate    string `json:"return_date"`
	Notes         string `json:"notes"`
}

// Field names reported by ModifiedFields.
const (
	FieldCustomerName  = "customerName"
	FieldContactNumber = "contactNumber"
	FieldAddress       = "address"
	FieldRentalDate    = "rentalDate"
	FieldReturnDate    = "returnDate"
	FieldNotes         = "notes"
)

// Wizard is the full state of one booking wizard.
type Wizard struct {
	ID           string       `json:"id"`
	Mode         Mode         `json:"mode"`
	Step         Step         `json:"step"`
	CustomerMode CustomerMode `json:"customer_mode"`

	// RentalID and CustomerID identify the booking being edited.
	RentalID   string       `json:"rental_id,omitempty"`
	CustomerID string       `json:"customer_id,omitempty"`
	Status     model.Status `json:"status,omitempty"`
	// SelectedCustomerID is the customer picked in existing mode.
	SelectedCustomerID string `json:"selected_customer_id,omitempty"`

	Details Details `json:"details"`
	Initial Details `json:"initial"`

	Selection Selection `json:"selection"`
	Picker    Picker    `json:"picker"`
	Search    string    `json:"search"`
	Category  string    `json:"category"`

	CreatedAt time.Time `json:"created_at"`
}

// NewCreate starts a wizard for a new booking dated today.
func NewCreate(id string, today time.Time) *Wizard {
	d := Details{RentalDate: today.Format(DateLayout)}
	return &Wizard{
		ID:           id,
		Mode:         ModeCreate,
		Step:         StepCustomer,
		CustomerMode: CustomerNew,
		Details:      d,
		Initial:      d,
		Category:     AllCategories,
		CreatedAt:    today,
	}
}

// NewEdit starts a wizard seeded from an existing booking.  The booking's
// lines become the initial selection, priced at price_at_booking.
func NewEdit(id string, b model.BookingWithDetails, now time.Time) *Wizard {
	d := Details{
		CustomerName:  b.Customer.Name,
		ContactNumber: b.Customer.ContactNumber,
		Address:       b.Customer.AddressOrEmpty(),
		RentalDate:    b.RentalDate.Format(DateLayout),
	}
	if b.ReturnDate != nil {
		d.ReturnDate = b.ReturnDate.Format(DateLayout)
	}
	if b.Notes != nil {
		d.Notes = *b.Notes
	}
	items := make([]SelectedItem, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, SelectedItem{
			ItemID:   it.ItemID,
			Name:     it.NameOr("Unknown Item"),
			Price:    it.PriceAtBooking,
			Quantity: it.Quantity,
		})
	}
	return &Wizard{
		ID:           id,
		Mode:         ModeEdit,
		Step:         StepCustomer,
		CustomerMode: CustomerNew,
		RentalID:     b.ID,
		CustomerID:   b.CustomerID,
		Status:       b.Status,
		Details:      d,
		Initial:      d,
		Selection:    NewSelection(items...),
		Category:     AllCategories,
		CreatedAt:    now,
	}
}

// SetDetails replaces the step-1 fields.  While an existing customer is
// selected its name, contact number and address are read-only and the
// incoming values for them are ignored.
func (w *Wizard) SetDetails(d Details) {
	if w.CustomerMode == CustomerExisting && w.SelectedCustomerID != "" {
		d.CustomerName = w.Details.CustomerName
		d.ContactNumber = w.Details.ContactNumber
		d.Address = w.Details.Address
	}
	w.Details = d
}

// UseNewCustomer switches to new-customer mode and restores the customer
// fields captured when the wizard was opened.
func (w *Wizard) UseNewCustomer() {
	w.CustomerMode = CustomerNew
	w.SelectedCustomerID = ""
	w.Details.CustomerName = w.Initial.CustomerName
	w.Details.ContactNumber = w.Initial.ContactNumber
	w.Details.Address = w.Initial.Address
}

// UseExistingCustomer switches to existing-customer mode.  Nothing is
// selected until SelectCustomer is called.
func (w *Wizard) UseExistingCustomer() {
	w.CustomerMode = CustomerExisting
}

// SelectCustomer picks c and copies its fields for display.
func (w *Wizard) SelectCustomer(c model.Customer) {
	w.CustomerMode = CustomerExisting
	w.SelectedCustomerID = c.ID
	w.Details.CustomerName = c.Name
	w.Details.ContactNumber = c.ContactNumber
	w.Details.Address = c.AddressOrEmpty()
}

// ModifiedFields lists the step-1 fields that differ from their value
// when the wizard was opened.  Only edit mode tracks changes; create mode
// always returns nil.  The result drives highlighting only.
func (w *Wizard) ModifiedFields() []string {
	if w.Mode != ModeEdit {
		return nil
	}
	var out []string
	cur, init := w.Details, w.Initial
	if cur.CustomerName != init.CustomerName {
		out = append(out, FieldCustomerName)
	}
	if cur.ContactNumber != init.ContactNumber {
		out = append(out, FieldContactNumber)
	}
	if cur.Address != init.Address {
		out = append(out, FieldAddress)
	}
	if cur.RentalDate != init.RentalDate {
		out = append(out, FieldRentalDate)
	}
	if cur.ReturnDate != init.ReturnDate {
		out = append(out, FieldReturnDate)
	}
	if cur.Notes != init.Notes {
		out = append(out, FieldNotes)
	}
	return out
}

// Next validates step 1 and moves to the item step.  On failure the step
// does not change.
func (w *Wizard) Next() error {
	if w.Step != StepCustomer {
		return nil
	}
	if err := w.validateCustomer(); err != nil {
		return err
	}
	w.Step = StepItems
	return nil
}

// Back returns to step 1.  Step-1 data is kept.
func (w *Wizard) Back() {
	w.Picker = Picker{}
	w.Step = StepCustomer
}

func (w *Wizard) validateCustomer() error {
	d := w.Details
	if w.CustomerMode == CustomerExisting {
		if w.SelectedCustomerID == "" {
			return invalid("Please select a customer")
		}
	} else if strings.TrimSpace(d.CustomerName) == "" ||
		strings.TrimSpace(d.ContactNumber) == "" ||
		strings.TrimSpace(d.Address) == "" {
		return invalid("Please fill in all required fields")
	}
	if _, err := time.Parse(DateLayout, d.RentalDate); err != nil {
		return invalid("Please enter a valid rental date")
	}
	if d.ReturnDate != "" {
		if _, err := time.Parse(DateLayout, d.ReturnDate); err != nil {
			return invalid("Please enter a valid return date")
		}
	}
	return nil
}

func (w *Wizard) validateItems() error {
	if w.Step != StepItems {
		return invalid("Please complete the customer details first")
	}
	if w.Selection.TotalQuantity() <= 0 {
		return invalid("Please select at least one item")
	}
	return nil
}

// SetFilters changes the search text and category used for browsing and
// for the picker's advance order.  An empty category means all.
func (w *Wizard) SetFilters(search, category string) {
	if category == "" {
		category = AllCategories
	}
	w.Search = search
	w.Category = category
}

// Visible returns the catalog items passing the current filters.
func (w *Wizard) Visible(catalog []model.Item) []model.Item {
	return FilterItems(catalog, w.Search, w.Category)
}

func (w *Wizard) requireItemsStep() error {
	if w.Step != StepItems {
		return invalid("Please complete the customer details first")
	}
	return nil
}

// OpenPicker opens the quantity picker on itemID.
func (w *Wizard) OpenPicker(catalog []model.Item, itemID string) error {
	if err := w.requireItemsStep(); err != nil {
		return err
	}
	if _, ok := findItem(catalog, itemID); !ok {
		return ErrUnknownItem
	}
	w.Picker = w.Picker.Open(itemID, w.Selection)
	return nil
}

// IncrementPicker adds one to the picker field.
func (w *Wizard) IncrementPicker() {
	if w.Picker.IsOpen() {
		w.Picker = w.Picker.Increment()
	}
}

// DecrementPicker subtracts one from the picker field, stopping at 0.
func (w *Wizard) DecrementPicker() {
	if w.Picker.IsOpen() {
		w.Picker = w.Picker.Decrement()
	}
}

// SetPickerInput replaces the picker field text.
func (w *Wizard) SetPickerInput(text string) {
	if w.Picker.IsOpen() {
		w.Picker = w.Picker.SetInput(text)
	}
}

// ConfirmPicker applies the picker value and advances along the currently
// filtered catalog.
func (w *Wizard) ConfirmPicker(catalog []model.Item) {
	w.Picker, w.Selection = w.Picker.Confirm(w.Selection, catalog, w.Visible(catalog))
}

// DeletePicked removes the picker's item from the selection and closes
// the picker.
func (w *Wizard) DeletePicked() {
	w.Picker, w.Selection = w.Picker.Delete(w.Selection)
}

// ClosePicker closes the picker without changes.
func (w *Wizard) ClosePicker() {
	w.Picker = w.Picker.Close()
}
