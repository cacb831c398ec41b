package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is an entry of the rental catalog (a chair, a table, a degh...).
// Price is the current catalog price; line items snapshot it at booking
// time so later price changes do not affect existing bookings.  Items are
// never deleted by this system, only deactivated through IsActive.
type Item struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Category  *string         `db:"category" json:"category"`
	Price     decimal.Decimal `db:"price" json:"price"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// CategoryOr returns the item's category or def when the item has none.
func (i Item) CategoryOr(def string) string {
	if i.Category == nil || *i.Category == "" {
		return def
	}
	return *i.Category
}
