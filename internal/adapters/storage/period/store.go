package period

import (
	"context"

	domain "absensi/internal/domain/period"
)

// Store persists per-month open/closed flags. Absence of an entry means the
// month is closed.
type Store interface {
	Get(ctx context.Context, year, monthIndex int) (domain.Status, error)
	Save(ctx context.Context, value domain.Status) error
	ListByYear(ctx context.Context, year int) ([]domain.Status, error)
}
