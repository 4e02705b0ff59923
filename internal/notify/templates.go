package notify

import (
	"fmt"
	"strings"

	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/clock"
)

var weekdaysNo = map[string]string{
	"monday":    "mandag",
	"tuesday":   "tirsdag",
	"wednesday": "onsdag",
	"thursday":  "torsdag",
	"friday":    "fredag",
	"saturday":  "lørdag",
	"sunday":    "søndag",
}

var monthsNo = [...]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

// formatDate renders a date key as a Norwegian long date,
// e.g. "mandag 2. mars 2026". Falls back to the raw key on parse errors.
func formatDate(dateKey string) string {
	t, err := clock.ParseDateKey(dateKey)
	if err != nil {
		return dateKey
	}
	day, _ := clock.DayOfWeek(dateKey)
	return fmt.Sprintf("%s %d. %s %d", weekdaysNo[day], t.Day(), monthsNo[int(t.Month())-1], t.Year())
}

// serviceList joins service names the way a Norwegian sentence would:
// "Klipp", "Klipp og Farge", "Klipp, Farge og Føn".
func serviceList(services []*catalog.Service) string {
	names := make([]string, 0, len(services))
	for _, svc := range services {
		if svc != nil && svc.Name != "" {
			names = append(names, svc.Name)
		}
	}
	switch len(names) {
	case 0:
		return "behandling"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " og " + names[len(names)-1]
	}
}

// totalDuration sums the duration of the booked services in minutes.
func totalDuration(services []*catalog.Service) int {
	total := 0
	for _, svc := range services {
		if svc != nil {
			total += svc.DurationMinutes
		}
	}
	return total
}

func cancelURL(baseURL, token string) string {
	if baseURL == "" || token == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/avbestill?token=" + token
}
