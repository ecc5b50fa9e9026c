package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"absensi/internal/adapters/storage"
	domain "absensi/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Record store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends a Record. The unique index on (participant_id, date_string)
// backs the one-record-per-participant-per-day invariant; callers check first
// so a violation here means a lost race, surfaced as ErrAlreadyRecorded.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	var notesVal interface{}
	if entity.Notes != "" {
		notesVal = entity.Notes
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_record
			(id, participant_id, participant_name, participant_unit, timestamp, date_string, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entity.ID,
		entity.ParticipantID,
		entity.ParticipantName,
		entity.ParticipantUnit,
		entity.Timestamp.Format(time.RFC3339Nano),
		entity.DateString,
		entity.Status,
		notesVal,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyRecorded
	}
	return err
}

// List retrieves Records matching the filter in insertion order (timestamp
// ascending). Report sorting is done by the caller.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Record, error) {
	query := `SELECT id, participant_id, participant_name, participant_unit, timestamp, date_string, status, notes
		FROM attendance_record WHERE 1=1`
	var args []any
	if filter.MonthPrefix != "" {
		query += " AND date_string LIKE ?"
		args = append(args, filter.MonthPrefix+"%")
	}
	if filter.DateString != "" {
		query += " AND date_string = ?"
		args = append(args, filter.DateString)
	}
	if filter.Unit != "" {
		query += " AND participant_unit = ?"
		args = append(args, filter.Unit)
	}
	query += " ORDER BY timestamp"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		var entity domain.Record
		var timestampStr string
		var notes sql.NullString
		if err := rows.Scan(
			&entity.ID,
			&entity.ParticipantID,
			&entity.ParticipantName,
			&entity.ParticipantUnit,
			&timestampStr,
			&entity.DateString,
			&entity.Status,
			&notes,
		); err != nil {
			return nil, err
		}
		if notes.Valid {
			entity.Notes = notes.String
		}
		entity.Timestamp, err = storage.ParseStoredTime(timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ExistsForParticipantOnDay reports whether a record already exists for the
// given (participant, calendar day) pair.
// PRE: participantID and dateString are non-empty
func (s *SQLiteStore) ExistsForParticipantOnDay(ctx context.Context, participantID, dateString string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_record WHERE participant_id = ? AND date_string = ?",
		participantID, dateString).Scan(&n)
	return n > 0, err
}

// CountByMonth returns the number of records in a month, optionally limited
// to one unit.
// PRE: monthPrefix is YYYY-MM
func (s *SQLiteStore) CountByMonth(ctx context.Context, monthPrefix, unit string) (int, error) {
	query := "SELECT COUNT(*) FROM attendance_record WHERE date_string LIKE ?"
	args := []any{monthPrefix + "%"}
	if unit != "" {
		query += " AND participant_unit = ?"
		args = append(args, unit)
	}
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// CountPresentForDay returns the number of hadir records for one calendar
// day, optionally limited to one unit. Legacy records with an empty status
// count as hadir; sakit and izin do not count.
// PRE: dateString is YYYY-MM-DD
func (s *SQLiteStore) CountPresentForDay(ctx context.Context, dateString, unit string) (int, error) {
	query := "SELECT COUNT(*) FROM attendance_record WHERE date_string = ? AND status IN ('hadir', '')"
	args := []any{dateString}
	if unit != "" {
		query += " AND participant_unit = ?"
		args = append(args, unit)
	}
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports constraint failures in the error text;
	// there is no exported error code type to match on.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
