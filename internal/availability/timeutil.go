// Package availability computes bookable time slots and the interval
// arithmetic behind them. All wall times are HH:MM strings in the business
// timezone; internally everything is minutes since midnight.
package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime converts an HH:MM string to minutes since midnight.
func ParseTime(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return h*60 + m, nil
}

// TimeToMinutes converts a validated HH:MM string to minutes since midnight.
// Inputs are validated at the API boundary; a malformed value reaching this
// point is a caller bug.
func TimeToMinutes(hhmm string) int {
	m, err := ParseTime(hhmm)
	if err != nil {
		panic(err)
	}
	return m
}

// MinutesToTime converts minutes since midnight back to HH:MM.
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MaxTime returns the later of two HH:MM times.
func MaxTime(a, b string) string {
	if TimeToMinutes(a) >= TimeToMinutes(b) {
		return a
	}
	return b
}

// MinTime returns the earlier of two HH:MM times.
func MinTime(a, b string) string {
	if TimeToMinutes(a) <= TimeToMinutes(b) {
		return a
	}
	return b
}

// overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
