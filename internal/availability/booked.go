package availability

// Booking is the slice of an appointment the slot math needs: when it
// starts and which services it occupies the worker with. Cancelled
// appointments must be filtered out before reaching this package.
type Booking struct {
	ID         string
	Date       string
	Time       string
	ServiceIDs []string
}

// TotalDuration sums the durations of the given services using a
// bulk-fetched duration map. If any service is unresolved, or the sum is
// not positive, the fallback duration is returned instead so a data gap
// never produces a zero-length interval.
func TotalDuration(serviceIDs []string, durations map[string]int, fallback int) int {
	total := 0
	for _, id := range serviceIDs {
		d, ok := durations[id]
		if !ok {
			return fallback
		}
		total += d
	}
	if total <= 0 {
		return fallback
	}
	return total
}

// BookedIntervals converts one day's bookings into occupied intervals.
func BookedIntervals(bookings []Booking, durations map[string]int, fallback int) []Range {
	out := make([]Range, 0, len(bookings))
	for _, b := range bookings {
		start := TimeToMinutes(b.Time)
		out = append(out, Range{Start: start, End: start + TotalDuration(b.ServiceIDs, durations, fallback)})
	}
	return out
}

// GroupByDate buckets bookings by date key so a multi-day window can reuse
// one fetch.
func GroupByDate(bookings []Booking) map[string][]Booking {
	out := make(map[string][]Booking)
	for _, b := range bookings {
		out[b.Date] = append(out[b.Date], b)
	}
	return out
}

// ServiceIDUnion collects the distinct service IDs referenced by the given
// bookings plus any extra IDs, preserving first-seen order. Used to build
// one duration map for a whole window.
func ServiceIDUnion(bookings []Booking, extra ...string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range extra {
		add(id)
	}
	for _, b := range bookings {
		for _, id := range b.ServiceIDs {
			add(id)
		}
	}
	return out
}
