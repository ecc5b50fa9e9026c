package participant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"absensi/internal/adapters/storage"
	domain "absensi/internal/domain/participant"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Participant store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Participant by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, unit, registered_at FROM participant WHERE id = ?", id)

	var entity domain.Participant
	var registeredStr string
	err := row.Scan(&entity.ID, &entity.Name, &entity.Unit, &registeredStr)
	if err == sql.ErrNoRows {
		return domain.Participant{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Participant{}, err
	}
	entity.RegisteredAt, err = storage.ParseStoredTime(registeredStr)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("failed to parse registered_at: %w", err)
	}
	return entity, nil
}

// Save persists a Participant to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Participant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participant (id, name, unit, registered_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, unit=excluded.unit
	`,
		entity.ID,
		entity.Name,
		entity.Unit,
		entity.RegisteredAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a Participant from the database. Attendance history is not
// touched: records keep their denormalized snapshots.
// PRE: id is non-empty
// POST: Entity with given id is removed; no-op if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM participant WHERE id = ?", id)
	return err
}

// List retrieves Participants matching the filter, ordered by name.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Participant, error) {
	query, args := buildFilter(
		"SELECT id, name, unit, registered_at FROM participant", filter)
	query += " ORDER BY name COLLATE NOCASE"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Participant
	for rows.Next() {
		var entity domain.Participant
		var registeredStr string
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Unit, &registeredStr); err != nil {
			return nil, err
		}
		entity.RegisteredAt, err = storage.ParseStoredTime(registeredStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse registered_at: %w", err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of Participants matching the filter.
// PRE: filter has valid parameters
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	query, args := buildFilter("SELECT COUNT(*) FROM participant", filter)
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// ListUnits returns the distinct units participants belong to, sorted.
func (s *SQLiteStore) ListUnits(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT unit FROM participant ORDER BY unit")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func buildFilter(base string, filter ListFilter) (string, []any) {
	query := base + " WHERE 1=1"
	var args []any
	if filter.Unit != "" {
		query += " AND unit = ?"
		args = append(args, filter.Unit)
	}
	if filter.Search != "" {
		query += ` AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(unit) LIKE ? ESCAPE '\')`
		like := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		args = append(args, like, like)
	}
	return query, args
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '%', '_', '\\':
			out = append(out, '\\', r)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
