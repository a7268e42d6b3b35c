package schedule

import (
	"testing"
	"time"
)

func TestResolveToday_Override(t *testing.T) {
	day, err := ResolveToday("2025-12-25", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Errorf("expected %v, got %v", want, day)
	}
}

func TestResolveToday_InvalidOverride(t *testing.T) {
	if _, err := ResolveToday("25/12/2025", time.Now()); err == nil {
		t.Error("expected error for malformed date, got nil")
	}
}

func TestResolveToday_DefaultUsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2025, 10, 8, 23, 30, 0, 0, loc)

	day, err := ResolveToday("", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Errorf("expected %v, got %v", want, day)
	}
}

func TestNextBatchTime(t *testing.T) {
	today := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)

	next := NextBatchTime(today)
	want := time.Date(2025, 1, 1, BatchRunHour, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2024, 2, 29, 18, 58, 0, 0, time.UTC)); got != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", got)
	}
}
