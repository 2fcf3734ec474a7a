package timeutil

import (
	"testing"
	"time"
)

func TestMonthKeyUsesIST(t *testing.T) {
	// 2026-01-31 20:00 UTC is already February 1st in IST
	ts := time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "2026-02" {
		t.Errorf("want 2026-02, got %s", got)
	}
}

func TestDayBounds(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !StartOfDay(d).Equal(d) {
		t.Errorf("parsed date should be start of day")
	}
	end := EndOfDay(d)
	if end.Day() != 15 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("unexpected end of day %v", end)
	}
	if !AddDays(d, 30).Equal(time.Date(2026, 4, 14, 0, 0, 0, 0, IST)) {
		t.Errorf("AddDays 30 from 2026-03-15 should be 2026-04-14")
	}
}
