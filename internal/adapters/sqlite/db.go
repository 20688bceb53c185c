// Package sqlite implements the persistence ports over a SQLite database
// using the pure-Go modernc driver. Repositories share one *sql.DB; schema
// management is handled by embedded migrations applied at open time.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Config holds the database settings.
type Config struct {
	// Path is the database file location. ":memory:" opens an in-memory
	// database, useful in tests.
	Path string
	// BusyTimeout bounds how long a writer waits for the file lock.
	BusyTimeout time.Duration
}

// Open opens the database, applies pragmas, and runs pending migrations.
func Open(cfg Config) (*sql.DB, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	busyMillis := cfg.BusyTimeout.Milliseconds()
	if busyMillis <= 0 {
		busyMillis = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, busyMillis)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The sqlite file supports one writer at a time; a single connection
	// avoids SQLITE_BUSY churn under concurrent workflows.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return db, nil
}

// HealthChecker adapts the database handle to the health registry.
type HealthChecker struct {
	db *sql.DB
}

// NewHealthChecker creates a readiness check for the database.
func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name identifies the check in readiness output.
func (h *HealthChecker) Name() string {
	return "sqlite"
}

// HealthCheck pings the database.
func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
