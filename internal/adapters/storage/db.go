package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. attendance_record carries denormalized participant
	// snapshots on purpose: history must survive participant deletion, so
	// there is no foreign key to participant.
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		unit TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS participant (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit TEXT NOT NULL,
		registered_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance_record (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		participant_name TEXT NOT NULL,
		participant_unit TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		date_string TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT '',
		notes TEXT
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_participant_day
		ON attendance_record(participant_id, date_string);

	CREATE TABLE IF NOT EXISTS period_status (
		year INTEGER NOT NULL,
		month_index INTEGER NOT NULL,
		is_open INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (year, month_index)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
