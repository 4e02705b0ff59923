package notify

import (
	"context"
	"sync"
	"time"

	"github.com/bellasalong/booking-platform/internal/appointments"
	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/internal/customers"
	"github.com/bellasalong/booking-platform/internal/staff"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

// ReminderSender sends a single reminder email.
type ReminderSender interface {
	AppointmentReminder(ctx context.Context, appt *appointments.Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error
}

// ReminderWorker periodically emails customers about tomorrow's confirmed
// appointments. Each appointment is reminded at most once per target date;
// the dedupe set resets when the target date rolls over.
type ReminderWorker struct {
	appointments appointments.Repository
	customers    customers.Repository
	catalog      catalog.Repository
	staff        staff.Repository
	sender       ReminderSender
	clk          clock.Clock
	interval     time.Duration
	logger       *logging.Logger

	mu       sync.Mutex
	sentDate string
	sent     map[string]bool
}

// NewReminderWorker creates a reminder worker.
func NewReminderWorker(
	appts appointments.Repository,
	custs customers.Repository,
	cat catalog.Repository,
	stf staff.Repository,
	sender ReminderSender,
	clk clock.Clock,
	interval time.Duration,
	logger *logging.Logger,
) *ReminderWorker {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ReminderWorker{
		appointments: appts,
		customers:    custs,
		catalog:      cat,
		staff:        stf,
		sender:       sender,
		clk:          clk,
		interval:     interval,
		logger:       logger,
		sent:         make(map[string]bool),
	}
}

// Run drives the worker until ctx is cancelled.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.drain(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *ReminderWorker) drain(ctx context.Context) {
	if w.appointments == nil || w.sender == nil {
		return
	}

	tomorrow, err := clock.AddDays(w.clk.Today(), 1)
	if err != nil {
		w.logger.Error("reminder worker: bad date arithmetic", "error", err)
		return
	}

	appts, err := w.appointments.ListConfirmedByDate(ctx, tomorrow)
	if err != nil {
		w.logger.Error("reminder worker: failed to list appointments", "error", err, "date", tomorrow)
		return
	}

	for _, appt := range appts {
		if !w.markSent(tomorrow, appt.ID) {
			continue
		}
		if err := w.remind(ctx, appt); err != nil {
			w.logger.Error("reminder worker: failed to send reminder",
				"error", err, "appointment_id", appt.ID)
			w.unmarkSent(appt.ID)
		}
	}
}

func (w *ReminderWorker) remind(ctx context.Context, appt *appointments.Appointment) error {
	customer, err := w.customers.GetByID(ctx, appt.CustomerID)
	if err != nil {
		return err
	}
	worker, err := w.staff.GetByID(ctx, appt.WorkerID)
	if err != nil {
		return err
	}
	services := make([]*catalog.Service, 0, len(appt.ServiceIDs))
	for _, id := range appt.ServiceIDs {
		svc, err := w.catalog.GetByID(ctx, id)
		if err != nil {
			continue
		}
		services = append(services, svc)
	}

	if err := w.sender.AppointmentReminder(ctx, appt, customer, services, worker); err != nil {
		return err
	}
	w.logger.Info("reminder sent", "appointment_id", appt.ID, "date", appt.Date, "time", appt.Time)
	return nil
}

// markSent records the appointment as reminded and reports whether this
// call was the first for the current target date.
func (w *ReminderWorker) markSent(date, apptID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sentDate != date {
		w.sentDate = date
		w.sent = make(map[string]bool)
	}
	if w.sent[apptID] {
		return false
	}
	w.sent[apptID] = true
	return true
}

func (w *ReminderWorker) unmarkSent(apptID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sent, apptID)
}
