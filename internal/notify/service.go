package notify

import (
	"context"
	"fmt"

	"github.com/bellasalong/booking-platform/internal/appointments"
	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/customers"
	"github.com/bellasalong/booking-platform/internal/staff"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Config holds salon-facing settings for outbound mail.
type Config struct {
	SalonName  string
	SalonEmail string // receives a copy of booking and cancellation notices
	BaseURL    string // public site base used to build cancellation links
}

// Service sends booking lifecycle emails to customers and the salon.
// It implements the notifier interface the appointments service expects.
type Service struct {
	email  EmailSender
	cfg    Config
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, cfg Config, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SalonName == "" {
		cfg.SalonName = "Bella Salong"
	}
	return &Service{
		email:  email,
		cfg:    cfg,
		logger: logger,
	}
}

// AppointmentBooked sends the booking confirmation to the customer and a
// notice to the salon inbox.
func (s *Service) AppointmentBooked(ctx context.Context, appt *appointments.Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping booking emails")
		return nil
	}

	what := serviceList(services)
	when := fmt.Sprintf("%s kl. %s", formatDate(appt.Date), appt.Time)
	link := cancelURL(s.cfg.BaseURL, appt.CancellationToken)

	var errs []error

	body := fmt.Sprintf(`Hei %s!

Din time hos %s er bekreftet.

Behandling: %s
Hos: %s
Tid: %s
Varighet: ca. %d minutter
`, customer.Name, s.cfg.SalonName, what, worker.Name, when, totalDuration(services))
	if link != "" {
		body += fmt.Sprintf(`
Trenger du å avbestille? Bruk lenken under:
%s
`, link)
	}
	body += fmt.Sprintf(`
Velkommen!

Hilsen %s`, s.cfg.SalonName)

	msg := EmailMessage{
		To:      customer.Email,
		ToName:  customer.Name,
		Subject: fmt.Sprintf("Timebekreftelse - %s", what),
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send booking confirmation", "error", err, "to", customer.Email)
		errs = append(errs, err)
	}

	if s.cfg.SalonEmail != "" {
		notice := EmailMessage{
			To:      s.cfg.SalonEmail,
			ToName:  s.cfg.SalonName,
			Subject: fmt.Sprintf("Ny booking - %s %s", appt.Date, appt.Time),
			Body: fmt.Sprintf(`Ny booking mottatt.

Kunde: %s (%s)
Telefon: %s
Behandling: %s
Hos: %s
Tid: %s
`, customer.Name, customer.Email, customer.Phone, what, worker.Name, when),
		}
		if err := s.email.Send(ctx, notice); err != nil {
			s.logger.Error("notify: failed to send salon booking notice", "error", err, "to", s.cfg.SalonEmail)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d notification(s) failed", len(errs))
	}
	return nil
}

// AppointmentCancelled confirms the cancellation to the customer and tells
// the salon the slot is open again.
func (s *Service) AppointmentCancelled(ctx context.Context, appt *appointments.Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping cancellation emails")
		return nil
	}

	what := serviceList(services)
	when := fmt.Sprintf("%s kl. %s", formatDate(appt.Date), appt.Time)

	var errs []error

	msg := EmailMessage{
		To:      customer.Email,
		ToName:  customer.Name,
		Subject: "Timen din er avbestilt",
		Body: fmt.Sprintf(`Hei %s!

Timen din hos %s er avbestilt.

Behandling: %s
Tid: %s

Du er velkommen til å booke en ny time når det passer.

Hilsen %s`, customer.Name, s.cfg.SalonName, what, when, s.cfg.SalonName),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send cancellation confirmation", "error", err, "to", customer.Email)
		errs = append(errs, err)
	}

	if s.cfg.SalonEmail != "" {
		notice := EmailMessage{
			To:      s.cfg.SalonEmail,
			ToName:  s.cfg.SalonName,
			Subject: fmt.Sprintf("Avbestilling - %s %s", appt.Date, appt.Time),
			Body: fmt.Sprintf(`En booking er avbestilt.

Kunde: %s (%s)
Behandling: %s
Hos: %s
Tid: %s
`, customer.Name, customer.Email, what, worker.Name, when),
		}
		if err := s.email.Send(ctx, notice); err != nil {
			s.logger.Error("notify: failed to send salon cancellation notice", "error", err, "to", s.cfg.SalonEmail)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d notification(s) failed", len(errs))
	}
	return nil
}

// AppointmentReminder sends a day-before reminder to the customer.
func (s *Service) AppointmentReminder(ctx context.Context, appt *appointments.Appointment, customer *customers.Customer, services []*catalog.Service, worker *staff.Worker) error {
	if s.email == nil {
		return nil
	}

	what := serviceList(services)
	when := fmt.Sprintf("%s kl. %s", formatDate(appt.Date), appt.Time)
	link := cancelURL(s.cfg.BaseURL, appt.CancellationToken)

	body := fmt.Sprintf(`Hei %s!

En liten påminnelse om timen din hos %s i morgen.

Behandling: %s
Hos: %s
Tid: %s
`, customer.Name, s.cfg.SalonName, what, worker.Name, when)
	if link != "" {
		body += fmt.Sprintf(`
Passer det ikke likevel? Avbestill her:
%s
`, link)
	}
	body += fmt.Sprintf(`
Vi gleder oss til å se deg!

Hilsen %s`, s.cfg.SalonName)

	msg := EmailMessage{
		To:      customer.Email,
		ToName:  customer.Name,
		Subject: fmt.Sprintf("Påminnelse - time i morgen kl. %s", appt.Time),
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to send reminder", "error", err, "to", customer.Email)
		return fmt.Errorf("notify: send reminder: %w", err)
	}
	return nil
}

// Ensure interface compliance
var _ appointments.Notifier = (*Service)(nil)
