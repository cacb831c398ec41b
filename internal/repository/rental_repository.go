package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/catering-rentals/internal/model"
)

const rentalColumns = "id, customer_id, rental_date, return_date, status, notes, created_at, updated_at"

// RentalRepo provides the queries on the rentals table.  A rental is the
// root of a booking; its line items live in rental_items.
type RentalRepo struct {
	db *sqlx.DB
}

// NewRentalRepo returns a RentalRepo bound to the given database.
func NewRentalRepo(db *sqlx.DB) *RentalRepo { return &RentalRepo{db: db} }

// ListByRentalDateDesc returns every rental, newest rental date first.
// Rentals sharing a date are ordered by creation time, newest first.
func (r *RentalRepo) ListByRentalDateDesc(ctx context.Context) ([]model.Rental, error) {
	q := "SELECT " + rentalColumns + " FROM rentals ORDER BY rental_date DESC, created_at DESC"
	var out []model.Rental
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one rental or returns ErrRentalNotFound.
func (r *RentalRepo) GetByID(ctx context.Context, id string) (*model.Rental, error) {
	q := r.db.Rebind("SELECT " + rentalColumns + " FROM rentals WHERE id = ?")
	var rt model.Rental
	if err := r.db.GetContext(ctx, &rt, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// Insert stores a rental and reads it back so the caller receives the
// persisted row.  An empty status defaults to active.
func (r *RentalRepo) Insert(ctx context.Context, rt model.Rental) (*model.Rental, error) {
	if rt.ID == "" {
		rt.ID = newID()
	}
	if rt.Status == "" {
		rt.Status = model.StatusActive
	}
	rt.CreatedAt = stamp(rt.CreatedAt)
	rt.UpdatedAt = stamp(rt.UpdatedAt)
	q := r.db.Rebind(`INSERT INTO rentals (id, customer_id, rental_date, return_date, status, notes, created_at, updated_at)
	                  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, q,
		rt.ID, rt.CustomerID, rt.RentalDate, rt.ReturnDate, string(rt.Status), rt.Notes, rt.CreatedAt, rt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, rt.ID)
}

// UpdateDetails rewrites the dates and notes of a rental.  Used by the
// wizard's edit path; status is left untouched.
func (r *RentalRepo) UpdateDetails(ctx context.Context, id string, rentalDate time.Time, returnDate *time.Time, notes *string, at time.Time) error {
	q := r.db.Rebind(`UPDATE rentals
	                  SET rental_date = ?, return_date = ?, notes = ?, updated_at = ?
	                  WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, q, rentalDate, returnDate, notes, stamp(at), id)
	return err
}

// UpdateStatus sets the status of a rental and bumps updated_at.
func (r *RentalRepo) UpdateStatus(ctx context.Context, id string, status model.Status, at time.Time) error {
	q := r.db.Rebind("UPDATE rentals SET status = ?, updated_at = ? WHERE id = ?")
	_, err := r.db.ExecContext(ctx, q, string(status), stamp(at), id)
	return err
}
