// Package repository is the Data Gateway: one repository per table of the
// hosted relational store (customers, items, rentals, rental_items).  The
// repositories expose the select / insert / update / delete surface the
// booking screens need and nothing more; joining rows into booking views
// happens in the booking package.
//
// The sentinel errors below let higher layers tell a missing row apart
// from a failed query.  Handlers translate them into HTTP 404 responses.
package repository

import "errors"

// ErrCustomerNotFound is returned when a customer lookup by id matches no
// row.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrRentalNotFound is returned when a rental lookup by id matches no row.
var ErrRentalNotFound = errors.New("rental not found")

// ErrItemNotFound is returned when a catalog item lookup by id matches no
// row.
var ErrItemNotFound = errors.New("item not found")
