package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/internal/hours"
	"github.com/bellasalong/booking-platform/internal/observability/metrics"
	"github.com/bellasalong/booking-platform/internal/staff"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

var tracer = otel.Tracer("salon.internal.availability")

// BookingSource yields all non-cancelled bookings for a worker across all
// dates; this package filters by date key itself.
type BookingSource interface {
	ActiveBookings(ctx context.Context, workerID string) ([]Booking, error)
}

// DurationSource bulk-resolves service durations.
type DurationSource interface {
	DurationMap(ctx context.Context, serviceIDs []string) (map[string]int, error)
}

// Config carries the scheduling knobs.
type Config struct {
	SlotIntervalMinutes int
	SameDayLeadMinutes  int
	BookingWindowDays   int
	FallbackDuration    int
}

// DayAvailability is one day of the booking window.
type DayAvailability struct {
	Day       string   `json:"day"`
	Timeslots []string `json:"timeslots"`
}

// NextSlot is the earliest bookable slot found across workers.
type NextSlot struct {
	WorkerID string `json:"worker_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Service computes bookable slots from the live stores, with an optional
// Redis cache in front.
type Service struct {
	staff     staff.Repository
	hours     hours.Repository
	durations DurationSource
	bookings  BookingSource
	clk       clock.Clock
	cache     *Cache
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
	cfg       Config
}

// NewService creates the availability service.
func NewService(staffRepo staff.Repository, hoursRepo hours.Repository, durations DurationSource, bookings BookingSource, clk clock.Clock, cache *Cache, m *metrics.BookingMetrics, logger *logging.Logger, cfg Config) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SlotIntervalMinutes <= 0 {
		cfg.SlotIntervalMinutes = 15
	}
	if cfg.SameDayLeadMinutes <= 0 {
		cfg.SameDayLeadMinutes = 30
	}
	if cfg.BookingWindowDays <= 0 {
		cfg.BookingWindowDays = 9
	}
	if cfg.FallbackDuration <= 0 {
		cfg.FallbackDuration = 30
	}
	return &Service{
		staff:     staffRepo,
		hours:     hoursRepo,
		durations: durations,
		bookings:  bookings,
		clk:       clk,
		cache:     cache,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
	}
}

// DaySlots returns the bookable start times for one worker, one date and a
// set of requested services. Missing reference data (unknown worker or
// unresolved durations) yields an empty list rather than an error since
// "no availability" is a valid answer.
func (s *Service) DaySlots(ctx context.Context, workerID string, serviceIDs []string, date string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "availability.day_slots")
	defer span.End()
	started := time.Now()

	if _, err := clock.ParseDateKey(date); err != nil {
		return nil, err
	}

	if slots, ok := s.cache.Get(ctx, workerID, date, serviceIDs); ok {
		s.metrics.ObserveSlotRequest("day", "cache_hit", time.Since(started).Seconds())
		return slots, nil
	}

	worker, err := s.lookupWorker(ctx, workerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if worker == nil {
		s.metrics.ObserveSlotRequest("day", "no_worker", time.Since(started).Seconds())
		return []string{}, nil
	}

	all, err := s.bookings.ActiveBookings(ctx, workerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	durations, err := s.durations.DurationMap(ctx, ServiceIDUnion(all, serviceIDs...))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	duration, ok := requestedDuration(serviceIDs, durations)
	if !ok {
		s.metrics.ObserveSlotRequest("day", "no_duration", time.Since(started).Seconds())
		return []string{}, nil
	}

	override, err := s.hours.GetOverride(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	dayOfWeek, err := clock.DayOfWeek(date)
	if err != nil {
		return nil, err
	}
	business, err := s.hours.GetBusinessHours(ctx, dayOfWeek)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	slots, err := s.computeDay(date, worker, business, override, byDate(all, date), durations, duration)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.cache.Set(ctx, workerID, date, serviceIDs, slots)
	s.metrics.ObserveSlotRequest("day", "ok", time.Since(started).Seconds())
	return slots, nil
}

// WindowSlots returns the rolling booking window starting today, one entry
// per day. Bookings, durations, business hours and overrides are each
// fetched once for the whole window.
func (s *Service) WindowSlots(ctx context.Context, workerID string, serviceIDs []string) ([]DayAvailability, error) {
	ctx, span := tracer.Start(ctx, "availability.window_slots")
	defer span.End()
	started := time.Now()

	today := s.clk.Today()
	last, err := clock.AddDays(today, s.cfg.BookingWindowDays-1)
	if err != nil {
		return nil, err
	}

	worker, err := s.lookupWorker(ctx, workerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	all, err := s.bookings.ActiveBookings(ctx, workerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	grouped := GroupByDate(all)

	durations, err := s.durations.DurationMap(ctx, ServiceIDUnion(all, serviceIDs...))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	duration, durationOK := requestedDuration(serviceIDs, durations)

	weekdays, err := s.hours.ListBusinessHours(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	byWeekday := make(map[string]*hours.BusinessHoursEntry, len(weekdays))
	for _, e := range weekdays {
		byWeekday[e.DayOfWeek] = e
	}

	overrides, err := s.hours.ListOverrides(ctx, today, last)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	overrideByDate := make(map[string]*hours.ScheduleOverride, len(overrides))
	for _, o := range overrides {
		overrideByDate[o.Date] = o
	}

	out := make([]DayAvailability, 0, s.cfg.BookingWindowDays)
	date := today
	for i := 0; i < s.cfg.BookingWindowDays; i++ {
		day := DayAvailability{Day: date, Timeslots: []string{}}
		if worker != nil && durationOK {
			dayOfWeek, err := clock.DayOfWeek(date)
			if err != nil {
				return nil, err
			}
			day.Timeslots, err = s.computeDay(date, worker, byWeekday[dayOfWeek], overrideByDate[date], grouped[date], durations, duration)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
		}
		out = append(out, day)
		if date, err = clock.AddDays(date, 1); err != nil {
			return nil, err
		}
	}

	s.metrics.ObserveSlotRequest("window", "ok", time.Since(started).Seconds())
	return out, nil
}

// NextAvailable scans every active worker offering the requested services
// and returns the earliest slot in the booking window, or nil when nothing
// is open. The per-worker computations are independent and run in parallel.
func (s *Service) NextAvailable(ctx context.Context, serviceIDs []string) (*NextSlot, error) {
	ctx, span := tracer.Start(ctx, "availability.next_available")
	defer span.End()

	workers, err := s.staff.ListForServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		best     *NextSlot
		firstErr error
		wg       sync.WaitGroup
	)
	for _, w := range workers {
		wg.Add(1)
		go func(workerID string) {
			defer wg.Done()
			days, err := s.WindowSlots(ctx, workerID, serviceIDs)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, day := range days {
				if len(day.Timeslots) == 0 {
					continue
				}
				cand := &NextSlot{WorkerID: workerID, Date: day.Day, Time: day.Timeslots[0]}
				if best == nil || cand.Date < best.Date || (cand.Date == best.Date && cand.Time < best.Time) {
					best = cand
				}
				break
			}
		}(w.ID)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return best, nil
}

func (s *Service) computeDay(date string, worker *staff.Worker, business *hours.BusinessHoursEntry, override *hours.ScheduleOverride, dayBookings []Booking, durations map[string]int, duration int) ([]string, error) {
	effective, err := EffectiveRanges(date, worker, business, override)
	if err != nil {
		return nil, err
	}
	booked := BookedIntervals(dayBookings, durations, s.cfg.FallbackDuration)

	today, now := s.clk.Now()
	minStart := MinStart(date, today, now, s.cfg.SameDayLeadMinutes)

	return DaySlots(effective, booked, duration, s.cfg.SlotIntervalMinutes, minStart), nil
}

// lookupWorker maps "not found" and "inactive" onto nil without error.
func (s *Service) lookupWorker(ctx context.Context, workerID string) (*staff.Worker, error) {
	worker, err := s.staff.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, staff.ErrWorkerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !worker.IsActive {
		return nil, nil
	}
	return worker, nil
}

// requestedDuration sums the requested services' durations. Unlike booked
// intervals there is no fallback here: if the request references unknown
// services the correct answer is "no availability".
func requestedDuration(serviceIDs []string, durations map[string]int) (int, bool) {
	if len(serviceIDs) == 0 {
		return 0, false
	}
	total := 0
	for _, id := range serviceIDs {
		d, ok := durations[id]
		if !ok {
			return 0, false
		}
		total += d
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}

func byDate(bookings []Booking, date string) []Booking {
	var out []Booking
	for _, b := range bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out
}
