package attendance

import (
	"context"

	domain "absensi/internal/domain/attendance"
)

// Store persists attendance Records. Records are append-only: there is no
// update or delete path in normal flow.
type Store interface {
	Save(ctx context.Context, value domain.Record) error
	List(ctx context.Context, filter ListFilter) ([]domain.Record, error)
	ExistsForParticipantOnDay(ctx context.Context, participantID, dateString string) (bool, error)
	CountByMonth(ctx context.Context, monthPrefix, unit string) (int, error)
	CountPresentForDay(ctx context.Context, dateString, unit string) (int, error)
}

// ListFilter carries filtering parameters for List operations. MonthPrefix
// restricts to records whose date starts with YYYY-MM; DateString restricts
// to one calendar day; Unit restricts to one snapshot unit. Empty fields
// mean no restriction.
type ListFilter struct {
	MonthPrefix string
	DateString  string
	Unit        string
}
