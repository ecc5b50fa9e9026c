package projections

import (
	"context"
	"errors"
	"testing"

	"absensi/internal/domain/account"
)

func TestQueryGetMonthlyReport(t *testing.T) {
	admin := account.User{Username: "admin", Role: account.RoleAdmin}

	t.Run("month filter sorted newest first", func(t *testing.T) {
		_, att, _ := dashboardFixture()

		march := 2
		result, err := QueryGetMonthlyReport(context.Background(), GetMonthlyReportQuery{
			Year:       2026,
			MonthIndex: &march,
			Actor:      admin,
		}, GetMonthlyReportDeps{AttendanceStore: att})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 2 {
			t.Fatalf("got %d records, want 2", len(result.Records))
		}
		for _, rec := range result.Records {
			if rec.DateString[:7] != "2026-03" {
				t.Errorf("record %s outside March: %s", rec.ID, rec.DateString)
			}
		}
	})

	t.Run("nil month returns all records", func(t *testing.T) {
		_, att, _ := dashboardFixture()

		result, err := QueryGetMonthlyReport(context.Background(), GetMonthlyReportQuery{
			Year:  2026,
			Actor: admin,
		}, GetMonthlyReportDeps{AttendanceStore: att})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Records) != 3 {
			t.Fatalf("got %d records, want 3", len(result.Records))
		}
		// Newest first: the February record comes last.
		if result.Records[len(result.Records)-1].ID != "r3" {
			t.Errorf("expected oldest record last, got %s", result.Records[len(result.Records)-1].ID)
		}
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		_, att, _ := dashboardFixture()

		_, err := QueryGetMonthlyReport(context.Background(), GetMonthlyReportQuery{
			Year:  2026,
			Actor: account.User{Username: "sma", Role: account.RoleUser, Unit: "SMA Muhammadiyah Pagar Alam"},
		}, GetMonthlyReportDeps{AttendanceStore: att})
		if !errors.Is(err, account.ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		att := &mockAttendanceStore{}

		result, err := QueryGetMonthlyReport(context.Background(), GetMonthlyReportQuery{
			Year:  2026,
			Actor: admin,
		}, GetMonthlyReportDeps{AttendanceStore: att})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Records == nil {
			t.Error("expected non-nil empty slice")
		}
	})
}
