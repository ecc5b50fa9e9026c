package orchestrators

import (
	"context"
	"log/slog"

	attendanceStore "absensi/internal/adapters/storage/attendance"
	"absensi/internal/domain/account"
	"absensi/internal/domain/attendance"
	"absensi/internal/domain/report"
)

// ExportReportStore defines the attendance store interface needed for export.
type ExportReportStore interface {
	List(ctx context.Context, filter attendanceStore.ListFilter) ([]attendance.Record, error)
}

// ExportReportInput carries input for the CSV export. A nil MonthIndex
// exports all attendance history; Year is still used for the filename.
type ExportReportInput struct {
	Year       int
	MonthIndex *int
	Actor      account.User
}

// ExportReportResult carries the CSV payload and its download filename.
type ExportReportResult struct {
	Filename string
	CSV      string
	Rows     int
}

// ExportReportDeps holds dependencies for ExportReport.
type ExportReportDeps struct {
	AttendanceStore ExportReportStore
}

// ExecuteExportReport produces the monthly or all-time attendance CSV,
// sorted most-recent-first. Reports are an admin-only surface.
// PRE: Actor is an admin; MonthIndex, when set, is 0-11
// POST: Returns deterministic CSV for the current store contents
func ExecuteExportReport(ctx context.Context, input ExportReportInput, deps ExportReportDeps) (ExportReportResult, error) {
	if input.Actor.Role != account.RoleAdmin {
		return ExportReportResult{}, ErrAdminOnly
	}

	filter := attendanceStore.ListFilter{}
	if input.MonthIndex != nil {
		filter.MonthPrefix = attendance.MonthPrefix(input.Year, *input.MonthIndex)
	}

	records, err := deps.AttendanceStore.List(ctx, filter)
	if err != nil {
		return ExportReportResult{}, err
	}

	sorted := report.SortByTimestampDesc(records)
	result := ExportReportResult{
		Filename: report.Filename(input.Year, input.MonthIndex),
		CSV:      report.ToCSV(sorted),
		Rows:     len(sorted),
	}

	slog.Info("report_event", "event", "report_exported",
		"filename", result.Filename, "rows", result.Rows, "actor", input.Actor.Username)

	return result, nil
}
