package web

import (
	"net/http"

	"absensi/internal/application/orchestrators"
	"absensi/internal/domain/period"
)

type togglePeriodRequest struct {
	Year       int `json:"year"`
	MonthIndex int `json:"monthIndex" validate:"min=0,max=11"`
}

// handlePeriods handles GET (list for year) and POST (toggle) for /api/periods.
// Toggling is admin-only; listing is open to any authenticated user so the
// check-in screen can show the gate state.
func handlePeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		year := parseYearParam(r)
		statuses, err := stores.PeriodStore.ListByYear(ctx, year)
		if err != nil {
			internalError(w, err)
			return
		}

		// Months without an entry are closed; return all 12 so the client
		// never has to guess.
		open := make(map[int]bool, len(statuses))
		for _, s := range statuses {
			open[s.MonthIndex] = s.IsOpen
		}
		out := make([]period.Status, 0, 12)
		for i := 0; i < 12; i++ {
			out = append(out, period.Status{Year: year, MonthIndex: i, IsOpen: open[i]})
		}
		writeJSON(w, http.StatusOK, map[string]any{"periods": out})
		return
	}

	if r.Method == "POST" {
		user, _ := sessionUser(r)

		var req togglePeriodRequest
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			handlerError(w, period.ErrInvalidMonth)
			return
		}
		if req.Year == 0 {
			req.Year = reportingYear
		}

		result, err := orchestrators.ExecuteTogglePeriod(ctx, orchestrators.TogglePeriodInput{
			Year:       req.Year,
			MonthIndex: req.MonthIndex,
			Actor:      user,
		}, orchestrators.TogglePeriodDeps{
			PeriodStore: stores.PeriodStore,
		})
		if err != nil {
			handlerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"period": result.Status})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
