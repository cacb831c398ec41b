package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/catering-rentals/internal/model"
)

const customerColumns = "id, name, contact_number, address, created_at, updated_at"

// CustomerRepo encapsulates all queries against the customers table.
type CustomerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo constructs a CustomerRepo with the provided DB handle.
func NewCustomerRepo(db *sqlx.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// ListOrderedByName returns every customer ordered by name.  It backs the
// "existing customer" picker of the booking wizard.
func (r *CustomerRepo) ListOrderedByName(ctx context.Context) ([]model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customers ORDER BY name"
	var out []model.Customer
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByIDs fetches all customers whose id is in ids with one query.  An
// empty ids slice returns no rows without touching the database.
func (r *CustomerRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In("SELECT "+customerColumns+" FROM customers WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	var out []model.Customer
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one customer.  It returns ErrCustomerNotFound when no
// row matches.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	q := r.db.Rebind("SELECT " + customerColumns + " FROM customers WHERE id = ?")
	var c model.Customer
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Insert stores a new customer and returns the row as read back from the
// database.  ID and timestamps are filled in when the caller leaves them
// empty.
func (r *CustomerRepo) Insert(ctx context.Context, c model.Customer) (*model.Customer, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = stamp(c.CreatedAt)
	c.UpdatedAt = stamp(c.UpdatedAt)
	q := r.db.Rebind(`INSERT INTO customers (id, name, contact_number, address, created_at, updated_at)
	                  VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.ContactNumber, c.Address, c.CreatedAt, c.UpdatedAt); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

// Update rewrites name, contact number and address of the customer with
// the given id and bumps updated_at.  Matching no row is not an error.
func (r *CustomerRepo) Update(ctx context.Context, id, name, contact string, address *string, at time.Time) error {
	q := r.db.Rebind(`UPDATE customers
	                  SET name = ?, contact_number = ?, address = ?, updated_at = ?
	                  WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, q, name, contact, address, stamp(at), id)
	return err
}
