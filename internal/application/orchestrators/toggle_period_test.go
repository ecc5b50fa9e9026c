package orchestrators

import (
	"context"
	"errors"
	"testing"

	periodStore "absensi/internal/adapters/storage/period"
	"absensi/internal/domain/account"
	"absensi/internal/domain/period"
)

type mockPeriodStore struct {
	statuses map[string]period.Status
}

// Get implements the period store interface for testing.
// POST: Returns the status or an error when no entry exists
func (m *mockPeriodStore) Get(ctx context.Context, year, monthIndex int) (period.Status, error) {
	if s, ok := m.statuses[periodKey(year, monthIndex)]; ok {
		return s, nil
	}
	return period.Status{}, periodStore.ErrNotFound
}

// Save implements the period store interface for testing.
// POST: Status is persisted
func (m *mockPeriodStore) Save(ctx context.Context, s period.Status) error {
	if m.statuses == nil {
		m.statuses = make(map[string]period.Status)
	}
	m.statuses[periodKey(s.Year, s.MonthIndex)] = s
	return nil
}

func TestExecuteTogglePeriod(t *testing.T) {
	admin := account.User{Username: "admin", Role: account.RoleAdmin}
	unitUser := account.User{Username: "sd", Role: account.RoleUser, Unit: "SD Muhammadiyah 1 Pagar Alam"}

	t.Run("first toggle opens a month with no entry", func(t *testing.T) {
		store := &mockPeriodStore{}

		result, err := ExecuteTogglePeriod(context.Background(), TogglePeriodInput{
			Year: 2026, MonthIndex: 2, Actor: admin,
		}, TogglePeriodDeps{PeriodStore: store})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Status.IsOpen {
			t.Error("first toggle must open the month")
		}
	})

	t.Run("toggling twice restores closed", func(t *testing.T) {
		store := &mockPeriodStore{}
		deps := TogglePeriodDeps{PeriodStore: store}
		input := TogglePeriodInput{Year: 2026, MonthIndex: 2, Actor: admin}

		if _, err := ExecuteTogglePeriod(context.Background(), input, deps); err != nil {
			t.Fatalf("first toggle: %v", err)
		}
		result, err := ExecuteTogglePeriod(context.Background(), input, deps)
		if err != nil {
			t.Fatalf("second toggle: %v", err)
		}
		if result.Status.IsOpen {
			t.Error("second toggle must close the month again")
		}
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		store := &mockPeriodStore{}

		_, err := ExecuteTogglePeriod(context.Background(), TogglePeriodInput{
			Year: 2026, MonthIndex: 2, Actor: unitUser,
		}, TogglePeriodDeps{PeriodStore: store})
		if !errors.Is(err, ErrAdminOnly) {
			t.Errorf("got %v, want ErrAdminOnly", err)
		}
		if len(store.statuses) != 0 {
			t.Error("rejected toggle must not persist")
		}
	})

	t.Run("invalid month", func(t *testing.T) {
		store := &mockPeriodStore{}

		_, err := ExecuteTogglePeriod(context.Background(), TogglePeriodInput{
			Year: 2026, MonthIndex: 12, Actor: admin,
		}, TogglePeriodDeps{PeriodStore: store})
		if !errors.Is(err, period.ErrInvalidMonth) {
			t.Errorf("got %v, want ErrInvalidMonth", err)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		storeErr := errors.New("database is locked")

		_, err := ExecuteTogglePeriod(context.Background(), TogglePeriodInput{
			Year: 2026, MonthIndex: 2, Actor: admin,
		}, TogglePeriodDeps{PeriodStore: failingPeriodStore{err: storeErr}})
		if !errors.Is(err, storeErr) {
			t.Errorf("got %v, want the store error", err)
		}
	})
}
