package web

import (
	"net/http"
	"strconv"

	"absensi/internal/application/orchestrators"
	"absensi/internal/application/projections"
)

// handleReports handles GET /api/reports: the attendance records table,
// optionally filtered to one month. Admin-only.
func handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, _ := sessionUser(r)
	month, err := parseMonthParam(r)
	if err != nil {
		handlerError(w, err)
		return
	}

	result, err := projections.QueryGetMonthlyReport(r.Context(), projections.GetMonthlyReportQuery{
		Year:       parseYearParam(r),
		MonthIndex: month,
		Actor:      user,
	}, projections.GetMonthlyReportDeps{
		AttendanceStore: stores.AttendanceStore,
	})
	if err != nil {
		handlerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleExportReport handles GET /api/reports/export: the CSV download.
// Admin-only.
func handleExportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, _ := sessionUser(r)
	month, err := parseMonthParam(r)
	if err != nil {
		handlerError(w, err)
		return
	}

	result, err := orchestrators.ExecuteExportReport(r.Context(), orchestrators.ExportReportInput{
		Year:       parseYearParam(r),
		MonthIndex: month,
		Actor:      user,
	}, orchestrators.ExportReportDeps{
		AttendanceStore: stores.AttendanceStore,
	})
	if err != nil {
		handlerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.Header().Set("X-Row-Count", strconv.Itoa(result.Rows))
	w.Write([]byte(result.CSV))
}
