package period

import "errors"

// MonthNames holds the bundled-locale month names, indexed by monthIndex.
var MonthNames = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Domain errors
var (
	ErrInvalidMonth = errors.New("month index must be between 0 and 11")
	ErrClosed       = errors.New("periode absensi ditutup")
)

// Status is the open/closed flag for one reporting month. A month with no
// persisted entry is closed: every period starts closed and must be opened
// explicitly by an admin.
type Status struct {
	Year       int
	MonthIndex int // 0-11
	IsOpen     bool
}

// Validate checks if the Status has valid data.
// PRE: Status struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Status) Validate() error {
	if s.MonthIndex < 0 || s.MonthIndex > 11 {
		return ErrInvalidMonth
	}
	if s.Year < 2000 || s.Year > 2100 {
		return errors.New("year out of range")
	}
	return nil
}

// MonthName returns the locale month name for this period.
// PRE: MonthIndex is 0-11
func (s *Status) MonthName() string {
	return MonthNames[s.MonthIndex]
}
