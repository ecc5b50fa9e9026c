package period

import (
	"context"
	"database/sql"
	"errors"

	"absensi/internal/adapters/storage"
	domain "absensi/internal/domain/period"
)

// ErrNotFound is returned by Get when no entry exists for the month. Callers
// treat it as "closed", never as a failure.
var ErrNotFound = errors.New("period status not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new period Status store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the Status for one month.
// PRE: monthIndex is 0-11
// POST: Returns the entity, or ErrNotFound when the month has no entry
func (s *SQLiteStore) Get(ctx context.Context, year, monthIndex int) (domain.Status, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT year, month_index, is_open FROM period_status WHERE year = ? AND month_index = ?",
		year, monthIndex)

	var entity domain.Status
	var isOpen int
	err := row.Scan(&entity.Year, &entity.MonthIndex, &isOpen)
	if err == sql.ErrNoRows {
		return domain.Status{}, ErrNotFound
	}
	if err != nil {
		return domain.Status{}, err
	}
	entity.IsOpen = isOpen != 0
	return entity, nil
}

// Save persists a Status, creating the entry if absent.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Status) error {
	isOpen := 0
	if entity.IsOpen {
		isOpen = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO period_status (year, month_index, is_open) VALUES (?, ?, ?)
		ON CONFLICT(year, month_index) DO UPDATE SET is_open=excluded.is_open
	`, entity.Year, entity.MonthIndex, isOpen)
	return err
}

// ListByYear returns all persisted Statuses for a year, ordered by month.
func (s *SQLiteStore) ListByYear(ctx context.Context, year int) ([]domain.Status, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, month_index, is_open FROM period_status WHERE year = ? ORDER BY month_index",
		year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Status
	for rows.Next() {
		var entity domain.Status
		var isOpen int
		if err := rows.Scan(&entity.Year, &entity.MonthIndex, &isOpen); err != nil {
			return nil, err
		}
		entity.IsOpen = isOpen != 0
		results = append(results, entity)
	}
	return results, rows.Err()
}
