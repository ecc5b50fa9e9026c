package projections

import (
	"context"
	"errors"
	"time"

	attendanceStore "absensi/internal/adapters/storage/attendance"
	participantStore "absensi/internal/adapters/storage/participant"
	periodStore "absensi/internal/adapters/storage/period"
	"absensi/internal/domain/account"
	"absensi/internal/domain/attendance"
	"absensi/internal/domain/participant"
	"absensi/internal/domain/period"
)

// CheckInPeriodStore defines the period store interface needed here.
type CheckInPeriodStore interface {
	Get(ctx context.Context, year, monthIndex int) (period.Status, error)
}

// CheckInEntry pairs a participant with their attendance record for the
// target day, if one exists.
type CheckInEntry struct {
	Participant participant.Participant `json:"participant"`
	Record      *attendance.Record      `json:"record,omitempty"`
}

// GetCheckInListQuery carries query parameters. Year and MonthIndex select a
// reporting month; when MonthIndex is nil the list targets today.
type GetCheckInListQuery struct {
	Search     string
	Year       int
	MonthIndex *int
	Actor      account.User
}

// GetCheckInListResult carries the check-in roster for the target day.
type GetCheckInListResult struct {
	DateString string         `json:"dateString"`
	PeriodOpen bool           `json:"periodOpen"`
	Entries    []CheckInEntry `json:"entries"`
}

// GetCheckInListDeps holds dependencies for GetCheckInList.
type GetCheckInListDeps struct {
	ParticipantStore participantStore.Store
	AttendanceStore  attendanceStore.Store
	PeriodStore      CheckInPeriodStore
	Now              func() time.Time
}

// QueryGetCheckInList retrieves participants with their check-in state for
// the target day.
// PRE: Valid query parameters
// POST: Entries carry the existing record for the day where one exists
func QueryGetCheckInList(ctx context.Context, query GetCheckInListQuery, deps GetCheckInListDeps) (GetCheckInListResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	target := now()
	monthIndex := int(target.Month()) - 1
	if query.MonthIndex != nil {
		monthIndex = *query.MonthIndex
		target = time.Date(query.Year, time.Month(monthIndex+1), 1, 9, 0, 0, 0, time.Local)
	}
	dateString := attendance.LocalDateString(target)

	unit := ""
	if query.Actor.IsUnitScoped() {
		unit = query.Actor.Unit
	}

	participants, err := deps.ParticipantStore.List(ctx, participantStore.ListFilter{
		Unit:   unit,
		Search: query.Search,
	})
	if err != nil {
		return GetCheckInListResult{}, err
	}

	records, err := deps.AttendanceStore.List(ctx, attendanceStore.ListFilter{
		DateString: dateString,
		Unit:       unit,
	})
	if err != nil {
		return GetCheckInListResult{}, err
	}
	byParticipant := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byParticipant[rec.ParticipantID] = rec
	}

	entries := make([]CheckInEntry, 0, len(participants))
	for _, p := range participants {
		entry := CheckInEntry{Participant: p}
		if rec, ok := byParticipant[p.ID]; ok {
			r := rec
			entry.Record = &r
		}
		entries = append(entries, entry)
	}

	status, err := deps.PeriodStore.Get(ctx, target.Year(), monthIndex)
	if err != nil && !errors.Is(err, periodStore.ErrNotFound) {
		return GetCheckInListResult{}, err
	}
	periodOpen := err == nil && status.IsOpen

	return GetCheckInListResult{
		DateString: dateString,
		PeriodOpen: periodOpen,
		Entries:    entries,
	}, nil
}
