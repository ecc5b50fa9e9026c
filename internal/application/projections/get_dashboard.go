// Package projections holds read-side queries that assemble view data from
// the stores without mutating anything.
package projections

import (
	"context"
	"time"

	attendanceStore "absensi/internal/adapters/storage/attendance"
	participantStore "absensi/internal/adapters/storage/participant"
	"absensi/internal/domain/account"
	"absensi/internal/domain/attendance"
	"absensi/internal/domain/period"
)

// GetDashboardQuery carries query parameters. Year selects the reporting
// year for the month grid.
type GetDashboardQuery struct {
	Year  int
	Actor account.User
}

// UnitStat is a per-unit participant count.
type UnitStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthSummary is one cell of the month grid: record count plus the period's
// open/closed flag.
type MonthSummary struct {
	MonthIndex int    `json:"monthIndex"`
	Name       string `json:"name"`
	Records    int    `json:"records"`
	IsOpen     bool   `json:"isOpen"`
}

// GetDashboardResult carries the dashboard summary. All numbers are scoped
// to the actor's unit for unit-scoped users.
type GetDashboardResult struct {
	TotalParticipants int            `json:"totalParticipants"`
	PresentToday      int            `json:"presentToday"`
	AttendanceRate    float64        `json:"attendanceRate"`
	UnitStats         []UnitStat     `json:"unitStats"`
	Months            []MonthSummary `json:"months"`
}

// DashboardPeriodStore defines the period store interface needed here.
type DashboardPeriodStore interface {
	ListByYear(ctx context.Context, year int) ([]period.Status, error)
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	ParticipantStore participantStore.Store
	AttendanceStore  attendanceStore.Store
	PeriodStore      DashboardPeriodStore
	Now              func() time.Time // nil: time.Now
}

// QueryGetDashboard assembles the dashboard summary.
// PRE: Valid query parameters
// POST: Returns counts scoped to the actor's unit where applicable
// INVARIANT: PresentToday counts only hadir (and legacy empty) statuses
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	scopeUnit := ""
	if query.Actor.IsUnitScoped() {
		scopeUnit = query.Actor.Unit
	}

	total, err := deps.ParticipantStore.Count(ctx, participantStore.ListFilter{Unit: scopeUnit})
	if err != nil {
		return GetDashboardResult{}, err
	}

	today := attendance.LocalDateString(now())
	presentToday, err := deps.AttendanceStore.CountPresentForDay(ctx, today, scopeUnit)
	if err != nil {
		return GetDashboardResult{}, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(presentToday) / float64(total) * 100
	}

	unitStats, err := buildUnitStats(ctx, deps.ParticipantStore, scopeUnit)
	if err != nil {
		return GetDashboardResult{}, err
	}

	months, err := buildMonthGrid(ctx, deps, query.Year, scopeUnit)
	if err != nil {
		return GetDashboardResult{}, err
	}

	return GetDashboardResult{
		TotalParticipants: total,
		PresentToday:      presentToday,
		AttendanceRate:    rate,
		UnitStats:         unitStats,
		Months:            months,
	}, nil
}

func buildUnitStats(ctx context.Context, store participantStore.Store, scopeUnit string) ([]UnitStat, error) {
	units, err := store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]UnitStat, 0, len(units))
	for _, u := range units {
		if scopeUnit != "" && u != scopeUnit {
			continue
		}
		n, err := store.Count(ctx, participantStore.ListFilter{Unit: u})
		if err != nil {
			return nil, err
		}
		stats = append(stats, UnitStat{Name: u, Count: n})
	}
	return stats, nil
}

func buildMonthGrid(ctx context.Context, deps GetDashboardDeps, year int, scopeUnit string) ([]MonthSummary, error) {
	statuses, err := deps.PeriodStore.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	open := make(map[int]bool, len(statuses))
	for _, s := range statuses {
		open[s.MonthIndex] = s.IsOpen
	}

	months := make([]MonthSummary, 0, 12)
	for i := 0; i < 12; i++ {
		n, err := deps.AttendanceStore.CountByMonth(ctx, attendance.MonthPrefix(year, i), scopeUnit)
		if err != nil {
			return nil, err
		}
		months = append(months, MonthSummary{
			MonthIndex: i,
			Name:       period.MonthNames[i],
			Records:    n,
			IsOpen:     open[i],
		})
	}
	return months, nil
}
