package period

import (
	"errors"
	"testing"
)

func TestStatusValidate(t *testing.T) {
	s := Status{Year: 2026, MonthIndex: 0}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	s = Status{Year: 2026, MonthIndex: 12}
	if err := s.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("got %v, want ErrInvalidMonth", err)
	}

	s = Status{Year: 2026, MonthIndex: -1}
	if err := s.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("got %v, want ErrInvalidMonth", err)
	}

	s = Status{Year: 1999, MonthIndex: 0}
	if err := s.Validate(); err == nil {
		t.Error("expected error for out-of-range year")
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		monthIndex int
		want       string
	}{
		{0, "Januari"},
		{2, "Maret"},
		{11, "Desember"},
	}
	for _, tt := range tests {
		s := Status{Year: 2026, MonthIndex: tt.monthIndex}
		if got := s.MonthName(); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.monthIndex, got, tt.want)
		}
	}
}
