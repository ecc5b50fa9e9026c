package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"absensi/internal/domain/account"
	"absensi/internal/domain/participant"
)

// RegisterParticipantStore defines the participant store interface needed
// for registration and deletion.
type RegisterParticipantStore interface {
	GetByID(ctx context.Context, id string) (participant.Participant, error)
	Save(ctx context.Context, p participant.Participant) error
	Delete(ctx context.Context, id string) error
}

// RegisterParticipantInput carries input for manual participant registration.
type RegisterParticipantInput struct {
	Name  string
	Unit  string
	Actor account.User
}

// RegisterParticipantResult carries the created participant.
type RegisterParticipantResult struct {
	Participant participant.Participant
}

// RegisterParticipantDeps holds dependencies for RegisterParticipant.
type RegisterParticipantDeps struct {
	ParticipantStore RegisterParticipantStore
	GenerateID       func() string
	Now              func() time.Time // nil: time.Now
}

// ExecuteRegisterParticipant creates a participant. Unit-scoped actors always
// get their own unit stamped, regardless of the input unit.
// PRE: Name is non-empty; admins must also supply a unit
// POST: Participant is persisted; no name de-duplication on manual add
func ExecuteRegisterParticipant(ctx context.Context, input RegisterParticipantInput, deps RegisterParticipantDeps) (RegisterParticipantResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	unit := input.Unit
	if input.Actor.IsUnitScoped() {
		unit = input.Actor.Unit
	}

	p := participant.Participant{
		ID:           deps.GenerateID(),
		Name:         input.Name,
		Unit:         unit,
		RegisteredAt: now(),
	}
	if err := p.Validate(); err != nil {
		return RegisterParticipantResult{}, err
	}

	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return RegisterParticipantResult{}, err
	}

	slog.Info("participant_event", "event", "participant_registered",
		"participant_id", p.ID, "name", p.Name, "unit", p.Unit, "actor", input.Actor.Username)

	return RegisterParticipantResult{Participant: p}, nil
}

// DeleteParticipantInput carries input for participant deletion.
type DeleteParticipantInput struct {
	ID    string
	Actor account.User
}

// DeleteParticipantDeps holds dependencies for DeleteParticipant.
type DeleteParticipantDeps struct {
	ParticipantStore RegisterParticipantStore
}

// ExecuteDeleteParticipant removes a participant. Attendance history is kept:
// records carry denormalized snapshots and survive deletion. Deleting an
// absent id is a no-op.
// PRE: ID is non-empty
// POST: Participant with given id no longer exists; history untouched
func ExecuteDeleteParticipant(ctx context.Context, input DeleteParticipantInput, deps DeleteParticipantDeps) error {
	p, err := deps.ParticipantStore.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, participant.ErrNotFound) {
			return nil
		}
		return err
	}
	if !input.Actor.CanAccessUnit(p.Unit) {
		return ErrUnitForbidden
	}

	if err := deps.ParticipantStore.Delete(ctx, input.ID); err != nil {
		return err
	}

	slog.Info("participant_event", "event", "participant_deleted",
		"participant_id", p.ID, "name", p.Name, "unit", p.Unit, "actor", input.Actor.Username)
	return nil
}
