package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/catering-rentals/internal/model"
)

// rental items are always read with the referenced catalog item's name
// embedded; the name is resolved at read time and never stored.
const rentalItemSelect = `SELECT ri.id, ri.rental_id, ri.item_id, ri.quantity, ri.price_at_booking, ri.created_at,
       i.name AS item_name
FROM rental_items ri
LEFT JOIN items i ON i.id = ri.item_id`

// RentalItemRepo provides CRUD operations for the line items of rentals.
type RentalItemRepo struct {
	db *sqlx.DB
}

// NewRentalItemRepo returns a RentalItemRepo bound to db.
func NewRentalItemRepo(db *sqlx.DB) *RentalItemRepo { return &RentalItemRepo{db: db} }

// ListByRentalIDs fetches the line items of every rental in rentalIDs in a
// single query.  An empty slice returns nothing without a round trip.
func (r *RentalItemRepo) ListByRentalIDs(ctx context.Context, rentalIDs []string) ([]model.RentalItem, error) {
	if len(rentalIDs) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(rentalItemSelect+" WHERE ri.rental_id IN (?) ORDER BY ri.created_at, ri.id", rentalIDs)
	if err != nil {
		return nil, err
	}
	var out []model.RentalItem
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByRentalID fetches the line items of one rental.
func (r *RentalItemRepo) ListByRentalID(ctx context.Context, rentalID string) ([]model.RentalItem, error) {
	q := r.db.Rebind(rentalItemSelect + " WHERE ri.rental_id = ? ORDER BY ri.created_at, ri.id")
	var out []model.RentalItem
	if err := r.db.SelectContext(ctx, &out, q, rentalID); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertBatch inserts all items in a single statement.  Missing ids and
// creation timestamps are generated.  Passing an empty slice has no effect.
func (r *RentalItemRepo) InsertBatch(ctx context.Context, items []model.RentalItem) error {
	if len(items) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO rental_items (id, rental_id, item_id, quantity, price_at_booking, created_at) VALUES ")
	args := make([]interface{}, 0, len(items)*6)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")
		if it.ID == "" {
			it.ID = newID()
		}
		args = append(args, it.ID, it.RentalID, it.ItemID, it.Quantity, it.PriceAtBooking, stamp(it.CreatedAt))
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(sb.String()), args...)
	return err
}

// DeleteByRentalID removes every line item of a rental.
func (r *RentalItemRepo) DeleteByRentalID(ctx context.Context, rentalID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM rental_items WHERE rental_id = ?"), rentalID)
	return err
}

// UpdateQuantity changes the quantity of a single line item, addressed by
// its own id.
func (r *RentalItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE rental_items SET quantity = ? WHERE id = ?"), quantity, id)
	return err
}
