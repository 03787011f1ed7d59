package recurrence

import (
	"testing"
	"time"
)

func TestNextAfterDaily(t *testing.T) {
	after := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	next, err := NextAfter("FREQ=DAILY", after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("NextAfter daily = %v, want %v", next, want)
	}
}

func TestNextAfterWeeklyByDay(t *testing.T) {
	// Sunday June 1 2025; next Thursday is June 5.
	after := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	next, err := NextAfter("FREQ=WEEKLY;BYDAY=TH", after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Weekday() != time.Thursday {
		t.Errorf("expected a Thursday, got %v", next.Weekday())
	}
	if next.Day() != 5 || next.Month() != time.June {
		t.Errorf("expected June 5, got %v", next)
	}
}

func TestNextAfterErrors(t *testing.T) {
	after := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := NextAfter("", after); err == nil {
		t.Error("expected error for empty rule")
	}
	if _, err := NextAfter("not a rule", after); err == nil {
		t.Error("expected error for malformed rule")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(""); err != nil {
		t.Errorf("empty rule should validate: %v", err)
	}
	if err := Validate("FREQ=WEEKLY;BYDAY=MO,WE"); err != nil {
		t.Errorf("valid rule rejected: %v", err)
	}
	if err := Validate("FREQ=SOMETIMES"); err == nil {
		t.Error("expected error for unknown frequency")
	}
}
