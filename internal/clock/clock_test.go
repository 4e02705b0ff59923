package clock

import (
	"testing"
	"time"
)

func TestBusinessDateKeyCrossesMidnight(t *testing.T) {
	b, err := NewBusiness("Europe/Oslo")
	if err != nil {
		t.Fatalf("NewBusiness: %v", err)
	}
	// 23:30 UTC on Jan 5 is already Jan 6 in Oslo (UTC+1 in winter).
	instant := time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC)
	if got := b.DateKey(instant); got != "2026-01-06" {
		t.Errorf("expected 2026-01-06, got %s", got)
	}
}

func TestBusinessNow(t *testing.T) {
	b, err := NewBusiness("Europe/Oslo")
	if err != nil {
		t.Fatalf("NewBusiness: %v", err)
	}
	b.now = func() time.Time {
		return time.Date(2026, 6, 15, 12, 45, 0, 0, time.UTC)
	}
	// Oslo is UTC+2 in summer.
	date, hhmm := b.Now()
	if date != "2026-06-15" {
		t.Errorf("expected date 2026-06-15, got %s", date)
	}
	if hhmm != "14:45" {
		t.Errorf("expected time 14:45, got %s", hhmm)
	}
}

func TestNewBusinessRejectsUnknownZone(t *testing.T) {
	if _, err := NewBusiness("Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := map[string]string{
		"2026-03-02": "monday",
		"2026-03-07": "saturday",
		"2026-03-08": "sunday",
	}
	for dateKey, want := range cases {
		got, err := DayOfWeek(dateKey)
		if err != nil {
			t.Fatalf("DayOfWeek(%s): %v", dateKey, err)
		}
		if got != want {
			t.Errorf("DayOfWeek(%s) = %s, want %s", dateKey, got, want)
		}
	}
}

func TestDayOfWeekInvalid(t *testing.T) {
	if _, err := DayOfWeek("02.03.2026"); err == nil {
		t.Fatal("expected error for malformed date key")
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-02-27", 3)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != "2026-03-02" {
		t.Errorf("expected 2026-03-02, got %s", got)
	}
}

func TestNoonUTC(t *testing.T) {
	got, err := NoonUTC("2026-03-02")
	if err != nil {
		t.Fatalf("NoonUTC: %v", err)
	}
	want := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFixedClock(t *testing.T) {
	f := NewFixed("2026-03-02", "14:00")
	if f.Today() != "2026-03-02" {
		t.Errorf("unexpected Today: %s", f.Today())
	}
	date, hhmm := f.Now()
	if date != "2026-03-02" || hhmm != "14:00" {
		t.Errorf("unexpected Now: %s %s", date, hhmm)
	}
}
