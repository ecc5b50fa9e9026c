package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	participantStore "absensi/internal/adapters/storage/participant"
	"absensi/internal/domain/account"
	"absensi/internal/domain/participant"
)

// SeedAccountStore defines the account store interface needed for seeding.
type SeedAccountStore interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// SeedParticipantStore defines the participant store interface needed for seeding.
type SeedParticipantStore interface {
	Count(ctx context.Context, filter participantStore.ListFilter) (int, error)
	Save(ctx context.Context, p participant.Participant) error
}

// SeedDeps holds dependencies for the seed orchestrators.
type SeedDeps struct {
	AccountStore     SeedAccountStore
	ParticipantStore SeedParticipantStore
	GenerateID       func() string
}

// seedAccount describes one entry of the fixed account table.
type seedAccount struct {
	Username string
	Name     string
	Role     string
	Unit     string
}

// The fixed account table: one central admin plus one unit-scoped user per
// school/AUM. All accounts share the seed password.
var seedAccounts = []seedAccount{
	{Username: "admin", Name: "Administrator PDM", Role: account.RoleAdmin},
	{Username: "sd", Name: "Admin SD Muhammadiyah", Role: account.RoleUser, Unit: "SD Muhammadiyah 1 Pagar Alam"},
	{Username: "smp", Name: "Admin MTs/SMP Muhammadiyah", Role: account.RoleUser, Unit: "MTs Muhammadiyah Pagar Alam"},
	{Username: "sma", Name: "Admin SMA Muhammadiyah", Role: account.RoleUser, Unit: "SMA Muhammadiyah Pagar Alam"},
	{Username: "smk", Name: "Admin SMK Muhammadiyah", Role: account.RoleUser, Unit: "SMK Muhammadiyah Pagar Alam"},
	{Username: "stkip", Name: "Admin STKIP Muhammadiyah", Role: account.RoleUser, Unit: "STKIP Muhammadiyah Pagar Alam"},
}

// seedParticipant describes one default sample participant.
type seedParticipant struct {
	Name string
	Unit string
}

var seedParticipants = []seedParticipant{
	{Name: "Ahmad Fauzan", Unit: "SMA Muhammadiyah Pagar Alam"},
	{Name: "Siti Rohimah", Unit: "SD Muhammadiyah 1 Pagar Alam"},
	{Name: "Rizky Saputra", Unit: "MTs Muhammadiyah Pagar Alam"},
	{Name: "Nurjanah", Unit: "Panti Asuhan Muhammadiyah"},
	{Name: "Budi Santoso", Unit: "PDM Pagar Alam"},
}

// ExecuteSeedAccounts creates the fixed account table. Idempotent: accounts
// that already exist are left untouched, including their password hashes.
// PRE: password is non-empty
// POST: All six accounts exist
func ExecuteSeedAccounts(ctx context.Context, deps SeedDeps, password string) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	// The table never shrinks, so a full count means every startup after the
	// first skips the per-account lookups.
	if n >= len(seedAccounts) {
		return nil
	}

	for _, sa := range seedAccounts {
		if _, err := deps.AccountStore.GetByUsername(ctx, sa.Username); err == nil {
			continue
		}
		acct := account.Account{
			ID:        deps.GenerateID(),
			Username:  sa.Username,
			Name:      sa.Name,
			Role:      sa.Role,
			Unit:      sa.Unit,
			CreatedAt: time.Now(),
		}
		if err := acct.SetPassword(password); err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		if err := acct.Validate(); err != nil {
			return fmt.Errorf("invalid seed account %q: %w", sa.Username, err)
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return fmt.Errorf("failed to seed account %q: %w", sa.Username, err)
		}
		slog.Info("seed_event", "event", "account_seeded", "username", sa.Username, "role", sa.Role)
	}
	return nil
}

// ExecuteSeedParticipants adds the default sample participants when the
// participant collection is empty, mirroring the behavior of first launch
// with no persisted state.
// POST: Store holds the samples only if it was empty before
func ExecuteSeedParticipants(ctx context.Context, deps SeedDeps) error {
	n, err := deps.ParticipantStore.Count(ctx, participantStore.ListFilter{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, sp := range seedParticipants {
		p := participant.Participant{
			ID:           deps.GenerateID(),
			Name:         sp.Name,
			Unit:         sp.Unit,
			RegisteredAt: time.Now(),
		}
		if err := deps.ParticipantStore.Save(ctx, p); err != nil {
			return fmt.Errorf("failed to seed participant %q: %w", sp.Name, err)
		}
	}
	slog.Info("seed_event", "event", "participants_seeded", "count", len(seedParticipants))
	return nil
}
