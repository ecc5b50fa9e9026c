package attendance

import (
	"errors"
	"strings"
	"time"
)

// Attendance status constants. Values are the bundled-locale strings the
// exports and UI use; they are stored verbatim.
const (
	StatusHadir = "hadir" // present
	StatusSakit = "sakit" // sick
	StatusIzin  = "izin"  // excused, requires a reason
)

// ValidStatuses contains all valid attendance status values.
var ValidStatuses = []string{StatusHadir, StatusSakit, StatusIzin}

// Domain errors
var (
	ErrAlreadyRecorded     = errors.New("participant already has a record for this day")
	ErrMissingExcuseReason = errors.New("izin status requires a reason")
	ErrInvalidStatus       = errors.New("status must be 'hadir', 'sakit' or 'izin'")
)

// Record is one participant's attendance for one calendar day. Name and unit
// are denormalized snapshots of the participant at recording time; they are
// not kept in sync with later edits, so history survives participant deletion.
type Record struct {
	ID              string
	ParticipantID   string
	ParticipantName string
	ParticipantUnit string
	Timestamp       time.Time
	DateString      string // YYYY-MM-DD, local calendar day of Timestamp
	Status          string
	Notes           string // reason for izin, empty otherwise
}

// LocalDateString derives the YYYY-MM-DD calendar day for a moment using
// local calendar semantics. Records must group by the submitter's local day,
// not the UTC day.
func LocalDateString(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ParticipantID and Timestamp must be set; izin requires Notes
func (r *Record) Validate() error {
	if r.ParticipantID == "" {
		return errors.New("record must be associated with a participant")
	}
	if r.Timestamp.IsZero() {
		return errors.New("record timestamp must be set")
	}
	if r.DateString == "" {
		return errors.New("record date string must be set")
	}
	if r.Status != "" && !isValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	if r.Status == StatusIzin && strings.TrimSpace(r.Notes) == "" {
		return ErrMissingExcuseReason
	}
	return nil
}

// EffectiveStatus returns the record's status, defaulting legacy records with
// no status to hadir.
// INVARIANT: Record fields are not mutated
func (r *Record) EffectiveStatus() string {
	if r.Status == "" {
		return StatusHadir
	}
	return r.Status
}

// InMonth reports whether the record's calendar day falls in the given month.
// PRE: monthIndex is 0-11
func (r *Record) InMonth(year, monthIndex int) bool {
	return strings.HasPrefix(r.DateString, MonthPrefix(year, monthIndex))
}

// MonthPrefix returns the YYYY-MM prefix records of a month share.
// PRE: monthIndex is 0-11
func MonthPrefix(year, monthIndex int) string {
	return time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.Local).Format("2006-01")
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if status == s {
			return true
		}
	}
	return false
}
