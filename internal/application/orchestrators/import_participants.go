package orchestrators

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	participantStore "absensi/internal/adapters/storage/participant"
	"absensi/internal/domain/account"
	"absensi/internal/domain/participant"
)

// ErrEmptyImport is returned when an import yields no usable rows.
var ErrEmptyImport = errors.New("gagal membaca data atau format CSV salah")

// ImportParticipantsStore defines the participant store interface needed for import.
type ImportParticipantsStore interface {
	List(ctx context.Context, filter participantStore.ListFilter) ([]participant.Participant, error)
	Save(ctx context.Context, p participant.Participant) error
}

// ImportParticipantsInput carries the raw CSV stream and the acting user.
// The format is a header row followed by `name,unit` lines: plain comma
// split, no quoting or escaping. Blank lines are skipped and lines missing
// either field are dropped silently.
type ImportParticipantsInput struct {
	Reader io.Reader
	Actor  account.User
}

// ImportParticipantsResult holds aggregate counts from an import run.
type ImportParticipantsResult struct {
	Total    int // usable rows parsed
	Imported int // rows actually added
	Skipped  int // rows dropped by name de-duplication
}

// ImportParticipantsDeps holds dependencies for ImportParticipants.
type ImportParticipantsDeps struct {
	ParticipantStore ImportParticipantsStore
	GenerateID       func() string
	Now              func() time.Time // nil: time.Now
}

// ExecuteImportParticipants merges a CSV batch into the participant store.
// Rows whose name already exists in the store (case-insensitive) are skipped;
// unit is not part of the de-dup check. For unit-scoped actors every imported
// participant gets the actor's unit stamped, regardless of the unit column.
// PRE: Reader holds the CSV stream
// POST: Only the unique subset is added; an import with no usable rows
// returns ErrEmptyImport without mutating the store
func ExecuteImportParticipants(ctx context.Context, input ImportParticipantsInput, deps ImportParticipantsDeps) (ImportParticipantsResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	var batch []participant.Participant
	scanner := bufio.NewScanner(input.Reader)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// header row
			first = false
			continue
		}
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		name := strings.TrimSpace(parts[0])
		unit := ""
		if len(parts) > 1 {
			unit = strings.TrimSpace(parts[1])
		}
		if input.Actor.IsUnitScoped() {
			unit = input.Actor.Unit
		}
		if name == "" || unit == "" {
			continue
		}

		batch = append(batch, participant.Participant{
			ID:           deps.GenerateID(),
			Name:         name,
			Unit:         unit,
			RegisteredAt: now(),
		})
	}
	if err := scanner.Err(); err != nil {
		return ImportParticipantsResult{}, err
	}
	if len(batch) == 0 {
		return ImportParticipantsResult{}, ErrEmptyImport
	}

	// De-duplicate against the names present before this import. Names
	// repeated within one batch are not collapsed; only the pre-existing
	// store matters, matching the merge behavior callers rely on.
	existing, err := deps.ParticipantStore.List(ctx, participantStore.ListFilter{})
	if err != nil {
		return ImportParticipantsResult{}, err
	}
	existingNames := make(map[string]bool, len(existing))
	for _, p := range existing {
		existingNames[strings.ToLower(strings.TrimSpace(p.Name))] = true
	}

	result := ImportParticipantsResult{Total: len(batch)}
	for _, p := range batch {
		if existingNames[strings.ToLower(strings.TrimSpace(p.Name))] {
			result.Skipped++
			continue
		}
		if err := p.Validate(); err != nil {
			result.Skipped++
			continue
		}
		if err := deps.ParticipantStore.Save(ctx, p); err != nil {
			return result, err
		}
		result.Imported++
	}

	slog.Info("import_event",
		"event", "participants_imported",
		"actor", input.Actor.Username,
		"unit", input.Actor.Unit,
		"total", result.Total,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)

	return result, nil
}
