package model

import "time"

// Customer is a person or business renting equipment.  Many rentals can
// reference the same customer.  This struct corresponds to a row in the
// `customers` table.
//
// Fields:
//  ID            – primary key (UUID string).
//  Name          – display name.
//  ContactNumber – phone number used to reach the customer.
//  Address       – optional delivery address.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Customer struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Address       *string   `db:"address" json:"address"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AddressOrEmpty returns the address or "" when none is stored.
func (c Customer) AddressOrEmpty() string {
	if c.Address == nil {
		return ""
	}
	return *c.Address
}
