package account

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"absensi/internal/adapters/storage"
	domain "absensi/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByUsername retrieves an Account by its username.
// PRE: username is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, name, password_hash, role, unit, created_at FROM account WHERE username = ?",
		username)

	var entity domain.Account
	var unit sql.NullString
	var createdStr string
	err := row.Scan(
		&entity.ID,
		&entity.Username,
		&entity.Name,
		&entity.PasswordHash,
		&entity.Role,
		&unit,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	if err != nil {
		return domain.Account{}, err
	}
	if unit.Valid {
		entity.Unit = unit.String
	}
	entity.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	fields := []string{"id", "username", "name", "password_hash", "role", "unit", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"username=excluded.username",
		"name=excluded.name",
		"password_hash=excluded.password_hash",
		"role=excluded.role",
		"unit=excluded.unit",
	}

	query := fmt.Sprintf(
		"INSERT INTO account (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var unitVal interface{}
	if entity.Unit != "" {
		unitVal = entity.Unit
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Username,
		entity.Name,
		entity.PasswordHash,
		entity.Role,
		unitVal,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Count returns the number of persisted accounts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&n)
	return n, err
}
