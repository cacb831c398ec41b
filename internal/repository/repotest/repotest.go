// Package repotest opens throwaway in-memory SQLite gateways for tests.
// The schema matches the hosted store closely enough for the repositories'
// portable SQL.
package repotest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/catering-rentals/internal/model"
)

const schema = `
CREATE TABLE customers (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    contact_number TEXT NOT NULL,
    address        TEXT NULL,
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);
CREATE TABLE items (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT NULL,
    price      NUMERIC NOT NULL,
    is_active  BOOLEAN NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);
CREATE TABLE rentals (
    id          TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    rental_date DATE NOT NULL,
    return_date DATE NULL,
    status      TEXT NOT NULL CHECK (status IN ('active','returned','overdue')),
    notes       TEXT NULL,
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);
CREATE TABLE rental_items (
    id               TEXT PRIMARY KEY,
    rental_id        TEXT NOT NULL,
    item_id          TEXT NOT NULL,
    quantity         INTEGER NOT NULL,
    price_at_booking NUMERIC NOT NULL,
    created_at       DATETIME NOT NULL
);`

// Open returns a fresh database with the booking schema.  Each call gets
// its own in-memory database, closed when the test ends.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a single connection keeps the shared in-memory database alive
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedItem inserts an active catalog item and returns it.
func SeedItem(t testing.TB, db *sqlx.DB, name, category string, price int64) model.Item {
	t.Helper()
	now := time.Now().UTC()
	it := model.Item{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     decimal.NewFromInt(price),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if category != "" {
		it.Category = &category
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO items (id, name, category, price, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Category, it.Price, it.IsActive, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return it
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
