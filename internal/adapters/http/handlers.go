package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"absensi/internal/adapters/http/middleware"
	"absensi/internal/application/listutil"
	"absensi/internal/application/orchestrators"
	"absensi/internal/application/projections"
	"absensi/internal/domain/account"
	"absensi/internal/domain/attendance"
	"absensi/internal/domain/participant"
	"absensi/internal/domain/period"
)

// validate checks JSON request payloads against their struct tags.
var validate = validator.New()

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handlerError maps domain errors to HTTP status codes.
func handlerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, orchestrators.ErrAdminOnly),
		errors.Is(err, orchestrators.ErrUnitForbidden),
		errors.Is(err, account.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, participant.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, attendance.ErrAlreadyRecorded),
		errors.Is(err, period.ErrClosed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, attendance.ErrMissingExcuseReason),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, participant.ErrEmptyName),
		errors.Is(err, participant.ErrEmptyUnit),
		errors.Is(err, period.ErrInvalidMonth),
		errors.Is(err, orchestrators.ErrEmptyImport):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, err)
	}
}

// sessionUser extracts the acting user from the request context.
func sessionUser(r *http.Request) (account.User, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return account.User{}, false
	}
	return sess.User(), true
}

// parseMonthParam reads an optional 0-11 month index from the query string.
// An absent or empty value means no month filter.
func parseMonthParam(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 11 {
		return nil, period.ErrInvalidMonth
	}
	return &n, nil
}

// parseYearParam reads the reporting year, falling back to the configured one.
func parseYearParam(r *http.Request) int {
	if raw := r.URL.Query().Get("year"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return reportingYear
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// handleLogin handles POST /api/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, account.ErrInvalidCredentials.Error())
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		handlerError(w, err)
		return
	}

	token, err := sessions.Create(result.User)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]any{"user": result.User})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie("absensi_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleMe handles GET /api/me: the current session's user.
func handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// handleDashboard handles GET /api/dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, _ := sessionUser(r)
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		Year:  parseYearParam(r),
		Actor: user,
	}, projections.GetDashboardDeps{
		ParticipantStore: stores.ParticipantStore,
		AttendanceStore:  stores.AttendanceStore,
		PeriodStore:      stores.PeriodStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type registerParticipantRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Unit string `json:"unit" validate:"max=100"`
}

// handleParticipants handles GET (list) and POST (register) for /api/participants.
func handleParticipants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := sessionUser(r)

	if r.Method == "GET" {
		lp := listutil.ParseListParams(r.URL.Query(), []string{"unit"})

		result, err := projections.QueryGetParticipantList(ctx, projections.GetParticipantListQuery{
			Search:  lp.Search,
			Unit:    lp.Filters["unit"],
			Page:    lp.Page,
			PerPage: lp.PerPage,
			Actor:   user,
		}, projections.GetParticipantListDeps{
			ParticipantStore: stores.ParticipantStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	if r.Method == "POST" {
		var req registerParticipantRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "nama wajib diisi")
			return
		}

		result, err := orchestrators.ExecuteRegisterParticipant(ctx, orchestrators.RegisterParticipantInput{
			Name:  req.Name,
			Unit:  req.Unit,
			Actor: user,
		}, orchestrators.RegisterParticipantDeps{
			ParticipantStore: stores.ParticipantStore,
			GenerateID:       generateID,
		})
		if err != nil {
			handlerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result.Participant)
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing id")
			return
		}

		err := orchestrators.ExecuteDeleteParticipant(ctx, orchestrators.DeleteParticipantInput{
			ID:    id,
			Actor: user,
		}, orchestrators.DeleteParticipantDeps{
			ParticipantStore: stores.ParticipantStore,
		})
		if err != nil {
			handlerError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleImportParticipants handles POST /api/participants/import.
// Accepts either a multipart upload (field "file") or a raw CSV body.
func handleImportParticipants(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, _ := sessionUser(r)

	reader := r.Body
	if err := r.ParseMultipartForm(2 << 20); err == nil {
		file, _, ferr := r.FormFile("file")
		if ferr != nil {
			writeError(w, http.StatusBadRequest, orchestrators.ErrEmptyImport.Error())
			return
		}
		defer file.Close()
		reader = file
	}

	result, err := orchestrators.ExecuteImportParticipants(r.Context(), orchestrators.ImportParticipantsInput{
		Reader: reader,
		Actor:  user,
	}, orchestrators.ImportParticipantsDeps{
		ParticipantStore: stores.ParticipantStore,
		GenerateID:       generateID,
	})
	if err != nil {
		handlerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"total":    result.Total,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
}

// handleImportTemplate handles GET /api/participants/template: a sample CSV
// in the import format. Unit-scoped users get a name-only sample since their
// unit column is ignored on import anyway.
func handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, _ := sessionUser(r)
	body := "nama_peserta,asal_sekolah_atau_amal_usaha\nAhmad Fauzan,SMA Muhammadiyah Pagar Alam\nSiti Rohimah,SD Muhammadiyah 1 Pagar Alam\n"
	if user.IsUnitScoped() {
		body = "nama_peserta\nBudi Santoso\nSiti Aminah\n"
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template_peserta_pdm.csv"`)
	w.Write([]byte(body))
}

type checkInRequest struct {
	ParticipantID string `json:"participantId" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=hadir sakit izin"`
	Notes         string `json:"notes"`
	Month         *int   `json:"month" validate:"omitempty,min=0,max=11"`
	Year          int    `json:"year"`
}

// handleCheckIn handles GET (roster for the day) and POST (record) for /api/checkin.
func handleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := sessionUser(r)

	if r.Method == "GET" {
		month, err := parseMonthParam(r)
		if err != nil {
			handlerError(w, err)
			return
		}

		result, qerr := projections.QueryGetCheckInList(ctx, projections.GetCheckInListQuery{
			Search:     r.URL.Query().Get("q"),
			Year:       parseYearParam(r),
			MonthIndex: month,
			Actor:      user,
		}, projections.GetCheckInListDeps{
			ParticipantStore: stores.ParticipantStore,
			AttendanceStore:  stores.AttendanceStore,
			PeriodStore:      stores.PeriodStore,
		})
		if qerr != nil {
			internalError(w, qerr)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	if r.Method == "POST" {
		var req checkInRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, attendance.ErrInvalidStatus.Error())
			return
		}

		year := req.Year
		if year == 0 {
			year = reportingYear
		}

		result, err := orchestrators.ExecuteCheckIn(ctx, orchestrators.CheckInInput{
			ParticipantID: req.ParticipantID,
			Status:        req.Status,
			Notes:         req.Notes,
			Year:          year,
			MonthIndex:    req.Month,
			Actor:         user,
		}, orchestrators.CheckInDeps{
			ParticipantStore: stores.ParticipantStore,
			AttendanceStore:  stores.AttendanceStore,
			PeriodStore:      stores.PeriodStore,
			GenerateID:       generateID,
		})
		if err != nil {
			handlerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"record":       result.Record,
			"periodClosed": result.PeriodClosed,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
