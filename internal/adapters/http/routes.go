package web

import (
	"net/http"

	"absensi/internal/adapters/http/middleware"
	"absensi/internal/domain/account"
)

// registerRoutes attaches all API handlers to the mux.
// Everything except login requires an authenticated session; reports and
// period toggling are further restricted in their handlers or here.
func registerRoutes(mux *http.ServeMux) {
	requireAuth := middleware.RequireAuth
	adminOnly := middleware.RequireRole(account.RoleAdmin)

	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.Handle("/api/me", requireAuth(http.HandlerFunc(handleMe)))

	mux.Handle("/api/dashboard", requireAuth(http.HandlerFunc(handleDashboard)))

	mux.Handle("/api/participants", requireAuth(http.HandlerFunc(handleParticipants)))
	mux.Handle("/api/participants/import", requireAuth(http.HandlerFunc(handleImportParticipants)))
	mux.Handle("/api/participants/template", requireAuth(http.HandlerFunc(handleImportTemplate)))

	mux.Handle("/api/checkin", requireAuth(http.HandlerFunc(handleCheckIn)))

	mux.Handle("/api/periods", requireAuth(http.HandlerFunc(handlePeriods)))

	mux.Handle("/api/reports", adminOnly(http.HandlerFunc(handleReports)))
	mux.Handle("/api/reports/export", adminOnly(http.HandlerFunc(handleExportReport)))
}
