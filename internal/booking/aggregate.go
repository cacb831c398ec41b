// Package booking assembles rentals, customers and rental items into
// booking views, filters and counts them for the list screen, and drives
// the single-booking editor.
package booking

import "github.com/iliyamo/catering-rentals/internal/model"

// Aggregate joins rentals with their customer and line items.  The output
// keeps the order of rentals.  A rental whose customer is not present in
// customers is left out.  Aggregate only reads its inputs, so calling it
// twice with the same data yields the same result.
func Aggregate(rentals []model.Rental, customers []model.Customer, items []model.RentalItem) []model.BookingWithDetails {
	byCustomer := make(map[string]model.Customer, len(customers))
	for _, c := range customers {
		byCustomer[c.ID] = c
	}
	byRental := make(map[string][]model.RentalItem, len(rentals))
	for _, it := range items {
		byRental[it.RentalID] = append(byRental[it.RentalID], it)
	}

	out := make([]model.BookingWithDetails, 0, len(rentals))
	for _, r := range rentals {
		c, ok := byCustomer[r.CustomerID]
		if !ok {
			continue
		}
		lines := byRental[r.ID]
		if lines == nil {
			lines = []model.RentalItem{}
		}
		out = append(out, model.BookingWithDetails{Rental: r, Customer: c, Items: lines})
	}
	return out
}

// distinctCustomerIDs returns the customer ids referenced by rentals, in
// first-seen order and without duplicates.
func distinctCustomerIDs(rentals []model.Rental) []string {
	seen := make(map[string]struct{}, len(rentals))
	ids := make([]string, 0, len(rentals))
	for _, r := range rentals {
		if _, ok := seen[r.CustomerID]; ok {
			continue
		}
		seen[r.CustomerID] = struct{}{}
		ids = append(ids, r.CustomerID)
	}
	return ids
}

func rentalIDs(rentals []model.Rental) []string {
	ids := make([]string, len(rentals))
	for i, r := range rentals {
		ids[i] = r.ID
	}
	return ids
}
