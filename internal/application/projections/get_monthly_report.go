package projections

import (
	"context"

	attendanceStore "absensi/internal/adapters/storage/attendance"
	"absensi/internal/domain/account"
	"absensi/internal/domain/attendance"
	"absensi/internal/domain/report"
)

// GetMonthlyReportQuery carries query parameters. A nil MonthIndex selects
// all records regardless of month.
type GetMonthlyReportQuery struct {
	Year       int
	MonthIndex *int
	Actor      account.User
}

// GetMonthlyReportResult carries the records for the reports table, newest
// first.
type GetMonthlyReportResult struct {
	Records []attendance.Record `json:"records"`
}

// GetMonthlyReportDeps holds dependencies for GetMonthlyReport.
type GetMonthlyReportDeps struct {
	AttendanceStore attendanceStore.Store
}

// QueryGetMonthlyReport retrieves attendance records for the reports view.
// PRE: Actor must be an admin
// POST: Records are sorted newest first
func QueryGetMonthlyReport(ctx context.Context, query GetMonthlyReportQuery, deps GetMonthlyReportDeps) (GetMonthlyReportResult, error) {
	if !query.Actor.IsAdmin() {
		return GetMonthlyReportResult{}, account.ErrForbidden
	}

	filter := attendanceStore.ListFilter{}
	if query.MonthIndex != nil {
		filter.MonthPrefix = attendance.MonthPrefix(query.Year, *query.MonthIndex)
	}
	records, err := deps.AttendanceStore.List(ctx, filter)
	if err != nil {
		return GetMonthlyReportResult{}, err
	}
	sorted := report.SortByTimestampDesc(records)
	if sorted == nil {
		sorted = []attendance.Record{}
	}
	return GetMonthlyReportResult{Records: sorted}, nil
}
