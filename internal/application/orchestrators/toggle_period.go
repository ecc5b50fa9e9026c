package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	periodStore "absensi/internal/adapters/storage/period"
	"absensi/internal/domain/account"
	"absensi/internal/domain/period"
)

// ErrAdminOnly is returned when a non-admin attempts an admin-only operation.
var ErrAdminOnly = errors.New("hanya admin yang dapat melakukan ini")

// TogglePeriodStore defines the period store interface needed for toggling.
type TogglePeriodStore interface {
	Get(ctx context.Context, year, monthIndex int) (period.Status, error)
	Save(ctx context.Context, s period.Status) error
}

// TogglePeriodInput carries input for the period toggle.
type TogglePeriodInput struct {
	Year       int
	MonthIndex int
	Actor      account.User
}

// TogglePeriodResult carries the new period state.
type TogglePeriodResult struct {
	Status period.Status
}

// TogglePeriodDeps holds dependencies for TogglePeriod.
type TogglePeriodDeps struct {
	PeriodStore TogglePeriodStore
}

// ExecuteTogglePeriod flips a month's open/closed flag, creating the entry if
// absent. A month with no entry is closed, so the first toggle opens it.
// PRE: Actor is an admin; MonthIndex is 0-11
// POST: The flag is inverted and persisted
// INVARIANT: Toggling twice returns the flag to its original value
func ExecuteTogglePeriod(ctx context.Context, input TogglePeriodInput, deps TogglePeriodDeps) (TogglePeriodResult, error) {
	if input.Actor.Role != account.RoleAdmin {
		return TogglePeriodResult{}, ErrAdminOnly
	}

	status := period.Status{Year: input.Year, MonthIndex: input.MonthIndex}
	if err := status.Validate(); err != nil {
		return TogglePeriodResult{}, err
	}

	existing, err := deps.PeriodStore.Get(ctx, input.Year, input.MonthIndex)
	switch {
	case err == nil:
		status.IsOpen = existing.IsOpen
	case errors.Is(err, periodStore.ErrNotFound):
		// No entry yet: the month is closed, so the first toggle opens it.
	default:
		return TogglePeriodResult{}, err
	}
	status.IsOpen = !status.IsOpen

	if err := deps.PeriodStore.Save(ctx, status); err != nil {
		return TogglePeriodResult{}, err
	}

	slog.Info("period_event", "event", "period_toggled",
		"year", status.Year, "month", status.MonthName(), "is_open", status.IsOpen,
		"actor", input.Actor.Username)

	return TogglePeriodResult{Status: status}, nil
}
