package wizard_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/wizard"
)

var today = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func TestNext_NewCustomerRequiresAllFields(t *testing.T) {
	cases := []wizard.Details{
		{CustomerName: "", ContactNumber: "999", Address: "MG Road", RentalDate: "2024-01-10"},
		{CustomerName: "Asha", ContactNumber: "   ", Address: "MG Road", RentalDate: "2024-01-10"},
		{CustomerName: "Asha", ContactNumber: "999", Address: "\t", RentalDate: "2024-01-10"},
	}
	for _, d := range cases {
		w := wizard.NewCreate("w1", today)
		w.SetDetails(d)
		err := w.Next()
		require.ErrorIs(t, err, wizard.ErrValidation)
		require.Equal(t, "Please fill in all required fields", err.Error())
		require.Equal(t, wizard.StepCustomer, w.Step)
	}

	w := wizard.NewCreate("w1", today)
	w.SetDetails(wizard.Details{CustomerName: "Asha", ContactNumber: "999", Address: "MG Road", RentalDate: "2024-01-10"})
	require.NoError(t, w.Next())
	require.Equal(t, wizard.StepItems, w.Step)
}

func TestNext_DateValidation(t *testing.T) {
	w := wizard.NewCreate("w1", today)
	require.Equal(t, "2024-01-10", w.Details.RentalDate)

	w.SetDetails(wizard.Details{CustomerName: "A", ContactNumber: "1", Address: "x", RentalDate: "10/01/2024"})
	require.ErrorIs(t, w.Next(), wizard.ErrValidation)

	w.SetDetails(wizard.Details{CustomerName: "A", ContactNumber: "1", Address: "x", RentalDate: "2024-01-10", ReturnDate: "soon"})
	require.ErrorIs(t, w.Next(), wizard.ErrValidation)
	require.Equal(t, wizard.StepCustomer, w.Step)
}

func TestExistingCustomerMode(t *testing.T) {
	w := wizard.NewCreate("w1", today)
	w.UseExistingCustomer()
	err := w.Next()
	require.ErrorIs(t, err, wizard.ErrValidation)
	require.Equal(t, "Please select a customer", err.Error())

	addr := "12 MG Road"
	w.SelectCustomer(model.Customer{ID: "c1", Name: "Asha Rao", ContactNumber: "9990001111", Address: &addr})
	require.Equal(t, "Asha Rao", w.Details.CustomerName)

	// customer fields are read-only while a customer is selected
	w.SetDetails(wizard.Details{CustomerName: "Someone else", RentalDate: "2024-02-01", Notes: "evening"})
	require.Equal(t, "Asha Rao", w.Details.CustomerName)
	require.Equal(t, "12 MG Road", w.Details.Address)
	require.Equal(t, "2024-02-01", w.Details.RentalDate)

	require.NoError(t, w.Next())

	w.Back()
	require.Equal(t, wizard.StepCustomer, w.Step)
	require.Equal(t, "evening", w.Details.Notes, "going back keeps step-1 data")

	w.UseNewCustomer()
	require.Equal(t, wizard.CustomerNew, w.CustomerMode)
	require.Empty(t, w.SelectedCustomerID)
	require.Empty(t, w.Details.CustomerName)
}

func editBooking() model.BookingWithDetails {
	addr := "12 MG Road"
	notes := "deliver by 6"
	name := "Chair"
	ret := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	return model.BookingWithDetails{
		Rental: model.Rental{
			ID: "r1", CustomerID: "c1", Status: model.StatusActive,
			RentalDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), ReturnDate: &ret, Notes: &notes,
		},
		Customer: model.Customer{ID: "c1", Name: "Asha Rao", ContactNumber: "9990001111", Address: &addr},
		Items: []model.RentalItem{
			{ID: "l1", RentalID: "r1", ItemID: "chr", Quantity: 2, PriceAtBooking: decimal.NewFromInt(45), ItemName: &name},
			{ID: "l2", RentalID: "r1", ItemID: "gone", Quantity: 1, PriceAtBooking: decimal.NewFromInt(10)},
		},
	}
}

func TestNewEdit_SeedsFromBooking(t *testing.T) {
	w := wizard.NewEdit("w2", editBooking(), today)

	require.Equal(t, wizard.ModeEdit, w.Mode)
	require.Equal(t, "r1", w.RentalID)
	require.Equal(t, "c1", w.CustomerID)
	require.Equal(t, "2024-01-12", w.Details.ReturnDate)
	require.Equal(t, "deliver by 6", w.Details.Notes)
	require.Equal(t, 3, w.Selection.TotalQuantity())

	chair, _ := w.Selection.Get("chr")
	require.Equal(t, "45", chair.Price.String(), "edit seeds price_at_booking, not catalog price")
	gone, _ := w.Selection.Get("gone")
	require.Equal(t, "Unknown Item", gone.Name)
}

func TestModifiedFields(t *testing.T) {
	w := wizard.NewEdit("w2", editBooking(), today)
	require.Empty(t, w.ModifiedFields())

	d := w.Details
	d.ContactNumber = "1112223333"
	d.Notes = ""
	w.SetDetails(d)
	require.Equal(t, []string{wizard.FieldContactNumber, wizard.FieldNotes}, w.ModifiedFields())

	d.ContactNumber = "9990001111"
	w.SetDetails(d)
	require.Equal(t, []string{wizard.FieldNotes}, w.ModifiedFields())

	create := wizard.NewCreate("w3", today)
	create.SetDetails(wizard.Details{CustomerName: "x"})
	require.Nil(t, create.ModifiedFields())
}

func TestPickerRequiresItemStep(t *testing.T) {
	cat := catalog()
	w := wizard.NewCreate("w1", today)
	require.ErrorIs(t, w.OpenPicker(cat, "chr"), wizard.ErrValidation)

	w.SetDetails(wizard.Details{CustomerName: "A", ContactNumber: "1", Address: "x", RentalDate: "2024-01-10"})
	require.NoError(t, w.Next())
	require.ErrorIs(t, w.OpenPicker(cat, "nope"), wizard.ErrUnknownItem)

	w.SetFilters("", "Furniture")
	require.NoError(t, w.OpenPicker(cat, "tbl"))
	w.IncrementPicker()
	w.ConfirmPicker(cat)
	require.Equal(t, "chr", w.Picker.ActiveID)
	w.SetPickerInput("02")
	w.ConfirmPicker(cat)
	require.False(t, w.Picker.IsOpen())
	require.Equal(t, 3, w.Selection.TotalQuantity())

	require.NoError(t, w.OpenPicker(cat, "chr"))
	w.DecrementPicker()
	require.Equal(t, "1", w.Picker.Input)
	w.DeletePicked()
	require.Equal(t, 1, w.Selection.TotalQuantity())

	require.NoError(t, w.OpenPicker(cat, "tbl"))
	w.ClosePicker()
	require.False(t, w.Picker.IsOpen())
}
