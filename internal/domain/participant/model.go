package participant

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
	MaxUnitLength = 100
)

// Domain errors
var (
	ErrEmptyName = errors.New("participant name cannot be empty")
	ErrEmptyUnit = errors.New("participant unit cannot be empty")
	ErrNotFound  = errors.New("participant not found")
)

// Participant is a registered member of one of the affiliated schools/units.
// Participants are immutable after creation: they are either deleted or kept
// as-is. Attendance records snapshot the name and unit at recording time, so
// deleting a participant never touches history.
type Participant struct {
	ID           string
	Name         string
	Unit         string // the school or amal usaha the participant belongs to
	RegisteredAt time.Time
}

// Validate checks if the Participant has valid data.
// PRE: Participant struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ID, Name and Unit must be non-empty
func (p *Participant) Validate() error {
	if p.ID == "" {
		return errors.New("participant id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("participant name cannot exceed 100 characters")
	}
	if strings.TrimSpace(p.Unit) == "" {
		return ErrEmptyUnit
	}
	if len(p.Unit) > MaxUnitLength {
		return errors.New("participant unit cannot exceed 100 characters")
	}
	return nil
}

// NameEquals reports whether the participant's name matches the given name,
// ignoring case and surrounding whitespace. Import de-duplication compares
// names only; unit is deliberately ignored.
func (p *Participant) NameEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
}

// MatchesSearch reports whether the participant matches a case-insensitive
// substring search against name or unit.
// INVARIANT: Participant fields are not mutated
func (p *Participant) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Unit), q)
}
