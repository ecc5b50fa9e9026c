package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	periodStore "absensi/internal/adapters/storage/period"
	"absensi/internal/domain/account"
	"absensi/internal/domain/attendance"
	"absensi/internal/domain/participant"
	"absensi/internal/domain/period"
)

// ErrUnitForbidden is returned when a unit-scoped user touches data outside
// their unit.
var ErrUnitForbidden = errors.New("data ini di luar unit Anda")

// CheckInAttendanceStore defines the attendance store interface needed for check-in.
type CheckInAttendanceStore interface {
	Save(ctx context.Context, r attendance.Record) error
	ExistsForParticipantOnDay(ctx context.Context, participantID, dateString string) (bool, error)
}

// CheckInParticipantStore defines the participant store interface needed for check-in.
type CheckInParticipantStore interface {
	GetByID(ctx context.Context, id string) (participant.Participant, error)
}

// CheckInPeriodStore defines the period store interface needed for gating.
type CheckInPeriodStore interface {
	Get(ctx context.Context, year, monthIndex int) (period.Status, error)
}

// CheckInInput carries input for the check-in orchestrator. When MonthIndex
// is set (a reporting month was selected), the effective date is pinned to
// the 1st of that month at 09:00 local time instead of now; this is how
// back-dated entry for an open month works.
type CheckInInput struct {
	ParticipantID string
	Status        string
	Notes         string
	Year          int
	MonthIndex    *int // nil: effective date is now
	Actor         account.User
}

// CheckInResult carries the created record. PeriodClosed is set when an admin
// submitted into a closed month; it is a warning, never a rejection for admins.
type CheckInResult struct {
	Record       attendance.Record
	PeriodClosed bool
}

// CheckInDeps holds dependencies for CheckIn.
type CheckInDeps struct {
	ParticipantStore CheckInParticipantStore
	AttendanceStore  CheckInAttendanceStore
	PeriodStore      CheckInPeriodStore
	GenerateID       func() string
	Now              func() time.Time // nil: time.Now
}

// ExecuteCheckIn records one participant's attendance for one calendar day.
// PRE: ParticipantID references an existing participant
// POST: Exactly one new record exists for (participant, day), or no mutation
// INVARIANT: At most one record per (participant, day); izin requires notes;
// a closed month blocks non-admins and only warns admins
func ExecuteCheckIn(ctx context.Context, input CheckInInput, deps CheckInDeps) (CheckInResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	p, err := deps.ParticipantStore.GetByID(ctx, input.ParticipantID)
	if err != nil {
		return CheckInResult{}, err
	}
	if !input.Actor.CanAccessUnit(p.Unit) {
		return CheckInResult{}, ErrUnitForbidden
	}

	effective := now()
	if input.MonthIndex != nil {
		if *input.MonthIndex < 0 || *input.MonthIndex > 11 {
			return CheckInResult{}, period.ErrInvalidMonth
		}
		effective = time.Date(input.Year, time.Month(*input.MonthIndex+1), 1, 9, 0, 0, 0, time.Local)
	}

	// Gate on the month the record will land in, not the wall-clock month.
	local := effective.In(time.Local)
	open := false
	status, err := deps.PeriodStore.Get(ctx, local.Year(), int(local.Month())-1)
	if err != nil && !errors.Is(err, periodStore.ErrNotFound) {
		return CheckInResult{}, err
	}
	if err == nil {
		open = status.IsOpen
	}
	periodClosed := !open
	if periodClosed && input.Actor.Role != account.RoleAdmin {
		return CheckInResult{}, period.ErrClosed
	}

	dateStr := attendance.LocalDateString(effective)
	exists, err := deps.AttendanceStore.ExistsForParticipantOnDay(ctx, p.ID, dateStr)
	if err != nil {
		return CheckInResult{}, err
	}
	if exists {
		return CheckInResult{}, attendance.ErrAlreadyRecorded
	}

	record := attendance.Record{
		ID:              deps.GenerateID(),
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
		ParticipantUnit: p.Unit,
		Timestamp:       effective,
		DateString:      dateStr,
		Status:          input.Status,
		Notes:           input.Notes,
	}
	if err := record.Validate(); err != nil {
		return CheckInResult{}, err
	}

	if err := deps.AttendanceStore.Save(ctx, record); err != nil {
		return CheckInResult{}, err
	}

	slog.Info("checkin_event",
		"event", "attendance_recorded",
		"participant_id", p.ID,
		"name", p.Name,
		"unit", p.Unit,
		"date", dateStr,
		"status", record.EffectiveStatus(),
		"actor", input.Actor.Username,
		"period_closed", periodClosed,
	)

	return CheckInResult{Record: record, PeriodClosed: periodClosed}, nil
}
