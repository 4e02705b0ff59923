package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bellasalong/booking-platform/internal/appointments"
	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/internal/customers"
	"github.com/bellasalong/booking-platform/internal/staff"
)

type captureReminder struct {
	ids  []string
	fail bool
}

func (c *captureReminder) AppointmentReminder(ctx context.Context, appt *appointments.Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error {
	if c.fail {
		return errors.New("smtp down")
	}
	c.ids = append(c.ids, appt.ID)
	return nil
}

func newReminderFixture(t *testing.T, sender ReminderSender) (*ReminderWorker, *appointments.InMemoryRepository) {
	t.Helper()
	ctx := context.Background()

	catalogRepo := catalog.NewInMemoryRepository()
	svc, err := catalogRepo.Create(ctx, &catalog.CreateServiceRequest{Name: "Klipp", DurationMinutes: 30})
	if err != nil {
		t.Fatalf("seed service: %v", err)
	}

	staffRepo := staff.NewInMemoryRepository()
	worker, err := staffRepo.Create(ctx, &staff.CreateWorkerRequest{
		Name:       "Kari",
		ServiceIDs: []string{svc.ID},
		WorkingHours: []staff.WorkingHoursEntry{
			{DayOfWeek: "tuesday", StartTime: "09:00", EndTime: "17:00"},
		},
	})
	if err != nil {
		t.Fatalf("seed worker: %v", err)
	}

	custRepo := customers.NewInMemoryRepository()
	customer, err := custRepo.FindOrCreate(ctx, &customers.FindOrCreateRequest{
		Name: "Ola Nordmann", Email: "ola@example.com",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	apptRepo := appointments.NewInMemoryRepository()
	appt := &appointments.Appointment{
		CustomerID: customer.ID,
		WorkerID:   worker.ID,
		ServiceIDs: []string{svc.ID},
		Date:       "2026-03-03",
		Time:       "10:00",
		Status:     appointments.StatusConfirmed,
	}
	if err := apptRepo.Create(ctx, appt); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	w := NewReminderWorker(
		apptRepo, custRepo, catalogRepo, staffRepo,
		sender, clock.NewFixed("2026-03-02", "18:00"), time.Minute, nil,
	)
	return w, apptRepo
}

func TestReminderWorker_SendsOnceForTomorrow(t *testing.T) {
	sender := &captureReminder{}
	w, _ := newReminderFixture(t, sender)
	ctx := context.Background()

	w.drain(ctx)
	if len(sender.ids) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(sender.ids))
	}

	// A second pass on the same day must not re-send.
	w.drain(ctx)
	if len(sender.ids) != 1 {
		t.Errorf("expected reminder to be deduplicated, got %d", len(sender.ids))
	}
}

func TestReminderWorker_RetriesAfterFailure(t *testing.T) {
	sender := &captureReminder{fail: true}
	w, _ := newReminderFixture(t, sender)
	ctx := context.Background()

	w.drain(ctx)
	if len(sender.ids) != 0 {
		t.Fatalf("expected no reminders recorded on failure, got %d", len(sender.ids))
	}

	sender.fail = false
	w.drain(ctx)
	if len(sender.ids) != 1 {
		t.Errorf("expected the reminder to be retried, got %d", len(sender.ids))
	}
}

func TestReminderWorker_SkipsOtherDates(t *testing.T) {
	sender := &captureReminder{}
	w, _ := newReminderFixture(t, sender)

	// Appointment is on 2026-03-03; a clock two days earlier must not trigger it.
	w.clk = clock.NewFixed("2026-03-01", "18:00")
	w.drain(context.Background())
	if len(sender.ids) != 0 {
		t.Errorf("expected no reminders for a non-adjacent date, got %d", len(sender.ids))
	}
}

func TestReminderWorker_DedupResetsOnRollover(t *testing.T) {
	sender := &captureReminder{}
	w, apptRepo := newReminderFixture(t, sender)
	ctx := context.Background()

	w.drain(ctx)
	if len(sender.ids) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(sender.ids))
	}

	// Next day: a new appointment on 2026-03-04 becomes tomorrow's batch.
	next := &appointments.Appointment{
		CustomerID: "missing", // resolved below
		WorkerID:   "",
		Date:       "2026-03-04",
		Time:       "11:00",
		Status:     appointments.StatusConfirmed,
	}
	first, err := apptRepo.ListConfirmedByDate(ctx, "2026-03-03")
	if err != nil || len(first) == 0 {
		t.Fatalf("seed lookup failed: %v", err)
	}
	next.CustomerID = first[0].CustomerID
	next.WorkerID = first[0].WorkerID
	next.ServiceIDs = first[0].ServiceIDs
	if err := apptRepo.Create(ctx, next); err != nil {
		t.Fatalf("seed next appointment: %v", err)
	}

	w.clk = clock.NewFixed("2026-03-03", "18:00")
	w.drain(ctx)
	if len(sender.ids) != 2 {
		t.Fatalf("expected a reminder for the new date, got %d", len(sender.ids))
	}
	if sender.ids[1] != next.ID {
		t.Errorf("expected reminder for %s, got %s", next.ID, sender.ids[1])
	}
}
