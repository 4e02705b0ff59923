package appointments

import (
	"context"
	"errors"

	"github.com/bellasalong/booking-platform/internal/availability"
	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/internal/customers"
	"github.com/bellasalong/booking-platform/internal/observability/metrics"
	"github.com/bellasalong/booking-platform/internal/staff"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Notifier sends booking lifecycle emails. Implementations must not block
// the booking on delivery problems; errors are logged, not propagated.
type Notifier interface {
	AppointmentBooked(ctx context.Context, appt *Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error
	AppointmentCancelled(ctx context.Context, appt *Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error
}

// CacheInvalidator drops cached slot results for a worker after a write.
type CacheInvalidator interface {
	InvalidateWorker(ctx context.Context, workerID string) error
}

// Deps wires the booking service.
type Deps struct {
	Appointments Repository
	Customers    customers.Repository
	Catalog      catalog.Repository
	Staff        staff.Repository
	Guard        *Guard
	Clock        clock.Clock
	Notifier     Notifier
	Cache        CacheInvalidator
	Metrics      *metrics.BookingMetrics
	Logger       *logging.Logger
}

// Service owns the booking lifecycle: create with the conflict guard, and
// cancel by token or by staff.
type Service struct {
	repo      Repository
	customers customers.Repository
	catalog   catalog.Repository
	staff     staff.Repository
	guard     *Guard
	clk       clock.Clock
	notifier  Notifier
	cache     CacheInvalidator
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
}

// NewService creates the booking service.
func NewService(deps Deps) *Service {
	return &Service{
		repo:      deps.Appointments,
		customers: deps.Customers,
		catalog:   deps.Catalog,
		staff:     deps.Staff,
		guard:     deps.Guard,
		clk:       deps.Clock,
		notifier:  deps.Notifier,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// Create books an appointment. The conflict check and the insert run under
// the worker's lock so concurrent bookings for the same worker serialize.
func (s *Service) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		s.metrics.ObserveBooking("rejected")
		return nil, err
	}
	if err := s.checkNotPast(req.Date, req.Time); err != nil {
		s.metrics.ObserveBooking("rejected")
		return nil, err
	}

	serviceIDs := req.ServiceIDs()

	worker, err := s.staff.GetByID(ctx, req.WorkerID)
	if err != nil {
		s.metrics.ObserveBooking("rejected")
		return nil, err
	}
	if !worker.IsActive {
		s.metrics.ObserveBooking("rejected")
		return nil, staff.ErrWorkerNotFound
	}
	if !worker.OffersAll(serviceIDs) {
		s.metrics.ObserveBooking("rejected")
		return nil, ErrWorkerServiceMismatch
	}

	services, err := s.loadServices(ctx, serviceIDs)
	if err != nil {
		s.metrics.ObserveBooking("rejected")
		return nil, err
	}

	customer, err := s.customers.FindOrCreate(ctx, &customers.FindOrCreateRequest{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	})
	if err != nil {
		s.metrics.ObserveBooking("rejected")
		return nil, err
	}

	token, err := NewCancellationToken()
	if err != nil {
		return nil, err
	}

	unlock := s.guard.LockWorker(worker.ID)
	defer unlock()

	interval, err := s.guard.Check(ctx, &Candidate{
		WorkerID:   worker.ID,
		Date:       req.Date,
		Time:       req.Time,
		ServiceIDs: serviceIDs,
		Status:     StatusConfirmed,
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			s.metrics.ObserveBooking("conflict")
			s.logger.Warn("booking conflict",
				"worker_id", worker.ID, "date", req.Date, "time", req.Time)
		}
		return nil, err
	}

	appt := &Appointment{
		CustomerID:        customer.ID,
		WorkerID:          worker.ID,
		ServiceIDs:        serviceIDs,
		Date:              req.Date,
		Time:              req.Time,
		Status:            StatusConfirmed,
		StartMinute:       interval.Start,
		EndMinute:         interval.End,
		CancellationToken: token,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			s.metrics.ObserveBooking("conflict")
		}
		return nil, err
	}

	s.metrics.ObserveBooking("created")
	s.logger.Info("appointment created",
		"id", appt.ID, "worker_id", worker.ID, "date", appt.Date, "time", appt.Time)

	s.invalidate(ctx, worker.ID)
	if err := s.notifier.AppointmentBooked(ctx, appt, customer, services, worker); err != nil {
		s.logger.Error("failed to send booking emails", "error", err, "appointment_id", appt.ID)
	}
	return appt, nil
}

// CancelByToken cancels the appointment carrying the given token. The token
// is the customer's only credential, handed out in the confirmation email.
func (s *Service) CancelByToken(ctx context.Context, token string) (*Appointment, error) {
	appt, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if err := s.checkNotPast(appt.Date, appt.Time); err != nil {
		return nil, ErrAppointmentPassed
	}
	return s.cancel(ctx, appt)
}

// Cancel cancels an appointment by ID on behalf of staff.
func (s *Service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	return s.cancel(ctx, appt)
}

func (s *Service) cancel(ctx context.Context, appt *Appointment) (*Appointment, error) {
	updated, err := s.repo.UpdateStatus(ctx, appt.ID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveCancellation()
	s.logger.Info("appointment cancelled",
		"id", updated.ID, "worker_id", updated.WorkerID, "date", updated.Date)

	s.invalidate(ctx, updated.WorkerID)

	customer, cErr := s.customers.GetByID(ctx, updated.CustomerID)
	services, sErr := s.loadServices(ctx, updated.ServiceIDs)
	worker, wErr := s.staff.GetByID(ctx, updated.WorkerID)
	if cErr != nil || sErr != nil || wErr != nil {
		s.logger.Error("skipping cancellation email, related records unavailable",
			"appointment_id", updated.ID)
		return updated, nil
	}
	if err := s.notifier.AppointmentCancelled(ctx, updated, customer, services, worker); err != nil {
		s.logger.Error("failed to send cancellation emails", "error", err, "appointment_id", updated.ID)
	}
	return updated, nil
}

// Reschedule moves an appointment to a new date and time on behalf of
// staff. The conflict check runs under the worker's lock with the
// appointment excluded from self-comparison.
func (s *Service) Reschedule(ctx context.Context, id, date, hhmm string) (*Appointment, error) {
	if _, err := clock.ParseDateKey(date); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := availability.ParseTime(hhmm); err != nil {
		return nil, ErrInvalidTime
	}
	if err := s.checkNotPast(date, hhmm); err != nil {
		return nil, err
	}

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	unlock := s.guard.LockWorker(appt.WorkerID)
	defer unlock()

	interval, err := s.guard.Check(ctx, &Candidate{
		WorkerID:   appt.WorkerID,
		Date:       date,
		Time:       hhmm,
		ServiceIDs: appt.ServiceIDs,
		Status:     appt.Status,
		ExcludeID:  appt.ID,
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			s.metrics.ObserveBooking("conflict")
			s.logger.Warn("reschedule conflict",
				"id", appt.ID, "worker_id", appt.WorkerID, "date", date, "time", hhmm)
		}
		return nil, err
	}

	updated, err := s.repo.UpdateSchedule(ctx, appt.ID, date, hhmm, interval.Start, interval.End)
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment rescheduled",
		"id", updated.ID, "worker_id", updated.WorkerID, "date", updated.Date, "time", updated.Time)
	s.invalidate(ctx, updated.WorkerID)
	return updated, nil
}

// Complete marks an appointment as completed on behalf of staff.
func (s *Service) Complete(ctx context.Context, id string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	return s.repo.UpdateStatus(ctx, appt.ID, StatusCompleted)
}

// ListRange returns appointments in the inclusive date range, for the
// admin calendar.
func (s *Service) ListRange(ctx context.Context, from, to string) ([]*Appointment, error) {
	if _, err := clock.ParseDateKey(from); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := clock.ParseDateKey(to); err != nil {
		return nil, ErrInvalidDate
	}
	return s.repo.ListByDateRange(ctx, from, to)
}

// checkNotPast rejects dates behind today and same-day times at or before
// the current business-timezone time.
func (s *Service) checkNotPast(date, hhmm string) error {
	today, now := s.clk.Now()
	if date < today {
		return ErrPastDate
	}
	if date == today && availability.TimeToMinutes(hhmm) <= availability.TimeToMinutes(now) {
		return ErrPastDate
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, workerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWorker(ctx, workerID); err != nil {
		s.logger.Error("failed to invalidate slot cache", "error", err, "worker_id", workerID)
	}
}

func (s *Service) loadServices(ctx context.Context, serviceIDs []string) ([]*catalog.Service, error) {
	out := make([]*catalog.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, err := s.catalog.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, nil
}
