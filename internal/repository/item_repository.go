package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/catering-rentals/internal/model"
)

const itemColumns = "id, name, category, price, is_active, created_at, updated_at"

// ItemRepo reads the rental catalog.  The booking screens never write
// catalog rows.
type ItemRepo struct {
	db *sqlx.DB
}

// NewItemRepo constructs an ItemRepo.
func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// ListActive returns the active catalog ordered by category ascending and
// then by price descending.
func (r *ItemRepo) ListActive(ctx context.Context) ([]model.Item, error) {
	q := r.db.Rebind("SELECT " + itemColumns + " FROM items WHERE is_active = ? ORDER BY category ASC, price DESC")
	var out []model.Item
	if err := r.db.SelectContext(ctx, &out, q, true); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one catalog item, active or not.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	q := r.db.Rebind("SELECT " + itemColumns + " FROM items WHERE id = ?")
	var it model.Item
	if err := r.db.GetContext(ctx, &it, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}
