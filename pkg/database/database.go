// Package database provides the bounded PostgreSQL connection pool shared by all services.
//
// The pool is a database/sql handle over the pgx stdlib driver. Callers beyond
// MaxOpenConns wait for a free connection instead of being rejected, and every
// statement runs in autocommit mode unless a caller opens its own transaction.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/magmaminds/admissions/pkg/logger"
)

const (
	driverName      = "pgx"
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Database wraps *sql.DB with the project's pool settings.
type Database struct {
	db *sql.DB
}

// NewPool opens a pool against url capped at maxConns open connections and
// verifies connectivity. maxConns <= 0 falls back to 10.
func NewPool(ctx context.Context, url string, maxConns int, log logger.Logger) (*Database, error) {
	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	log.Debug("database pool configured", "max_open_conns", maxConns)
	return &Database{db: db}, nil
}

// New wraps an already-open *sql.DB. Used by tests with sqlmock.
func New(db *sql.DB) *Database {
	return &Database{db: db}
}

// DB returns the underlying *sql.DB.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close closes the pool. Safe to call on a nil receiver.
func (d *Database) Close() {
	if d == nil || d.db == nil {
		return
	}
	_ = d.db.Close()
}
