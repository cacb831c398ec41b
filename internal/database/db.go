// Package database opens the Data Gateway connection pool.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Open connects with driver ("mysql" or "pgx") to dsn and verifies the
// connection.  A non-empty pass replaces the password in dsn.
func Open(ctx context.Context, driver, dsn, pass string) (*sqlx.DB, error) {
	var db *sqlx.DB
	switch driver {
	case "mysql":
		full, err := MySQLDSN(dsn, pass)
		if err != nil {
			return nil, err
		}
		db, err = sqlx.Open("mysql", full)
		if err != nil {
			return nil, err
		}
	case "pgx":
		cfg, err := PgxConfig(dsn, pass)
		if err != nil {
			return nil, err
		}
		db = sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx")
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// MySQLDSN normalises a MySQL DSN: parseTime=true so DATE and DATETIME
// scan into time.Time, loc=UTC, and pass as password when set.
func MySQLDSN(dsn, pass string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if pass != "" {
		cfg.Passwd = pass
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// PgxConfig parses a Postgres URL or keyword DSN and applies pass.
func PgxConfig(dsn, pass string) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if pass != "" {
		cfg.Password = pass
	}
	return cfg, nil
}
