package participant

import (
	"context"

	domain "absensi/internal/domain/participant"
)

// Store persists Participant state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Participant, error)
	Save(ctx context.Context, value domain.Participant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Participant, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	ListUnits(ctx context.Context) ([]string, error)
}

// ListFilter carries filtering parameters for List operations. Unit restricts
// results to one unit (unit-scoped users); Search is a case-insensitive
// substring match against name or unit. Limit <= 0 means no pagination.
type ListFilter struct {
	Unit   string
	Search string
	Limit  int
	Offset int
}
