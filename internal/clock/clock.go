// Package clock provides the business-timezone clock used for all
// scheduling decisions. Day boundaries, "today" and day-of-week are always
// derived in the salon's configured timezone, never the server's locale.
package clock

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// Clock yields the current date and time in the business timezone.
type Clock interface {
	// Today returns the current date key (YYYY-MM-DD).
	Today() string
	// Now returns the current date key and wall time (HH:MM).
	Now() (date string, hhmm string)
	// DateKey normalizes an instant to its date key in the business timezone.
	DateKey(t time.Time) string
}

// Business is the production clock backed by an IANA timezone.
type Business struct {
	loc *time.Location
	now func() time.Time
}

// NewBusiness creates a clock for the given IANA timezone name.
func NewBusiness(timezone string) (*Business, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: load timezone %q: %w", timezone, err)
	}
	return &Business{loc: loc, now: time.Now}, nil
}

// Today returns the current date key in the business timezone.
func (b *Business) Today() string {
	return b.DateKey(b.now())
}

// Now returns the current date key and HH:MM wall time.
func (b *Business) Now() (string, string) {
	t := b.now().In(b.loc)
	return t.Format(dateKeyLayout), t.Format("15:04")
}

// DateKey normalizes an instant to its business-timezone date key.
func (b *Business) DateKey(t time.Time) string {
	return t.In(b.loc).Format(dateKeyLayout)
}

// Fixed is a clock pinned to one instant, for tests.
type Fixed struct {
	Date string
	Time string
}

// NewFixed creates a fixed clock at the given date key and HH:MM time.
func NewFixed(date, hhmm string) *Fixed {
	return &Fixed{Date: date, Time: hhmm}
}

func (f *Fixed) Today() string         { return f.Date }
func (f *Fixed) Now() (string, string) { return f.Date, f.Time }

func (f *Fixed) DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD date key into a UTC midnight time.
func ParseDateKey(dateKey string) (time.Time, error) {
	t, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("clock: invalid date key %q: %w", dateKey, err)
	}
	return t, nil
}

// DayOfWeek returns the lowercase weekday name ("monday".."sunday") for a
// date key. The weekday of a civil date does not depend on timezone.
func DayOfWeek(dateKey string) (string, error) {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return "", err
	}
	switch t.Weekday() {
	case time.Sunday:
		return "sunday", nil
	case time.Monday:
		return "monday", nil
	case time.Tuesday:
		return "tuesday", nil
	case time.Wednesday:
		return "wednesday", nil
	case time.Thursday:
		return "thursday", nil
	case time.Friday:
		return "friday", nil
	default:
		return "saturday", nil
	}
}

var weekdayNames = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// IsWeekday reports whether s is a lowercase weekday name.
func IsWeekday(s string) bool {
	return weekdayNames[s]
}

// AddDays shifts a date key by the given number of days.
func AddDays(dateKey string, days int) (string, error) {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(dateKeyLayout), nil
}

// NoonUTC pins a date key to 12:00 UTC, the canonical stored timestamp for
// day-granularity dates. Noon keeps the civil date stable across every
// timezone the value is later rendered in.
func NoonUTC(dateKey string) (time.Time, error) {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}
