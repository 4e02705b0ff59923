package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bellasalong/booking-platform/internal/appointments"
	"github.com/bellasalong/booking-platform/internal/availability"
	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/hours"
	httpmiddleware "github.com/bellasalong/booking-platform/internal/http/middleware"
	"github.com/bellasalong/booking-platform/internal/reports"
	"github.com/bellasalong/booking-platform/internal/staff"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	CatalogHandler      *catalog.Handler
	StaffHandler        *staff.Handler
	HoursHandler        *hours.Handler
	AvailabilityHandler *availability.Handler
	AppointmentsHandler *appointments.Handler
	ReportsHandler      *reports.Handler
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string

	// Booking endpoint rate limit; zero disables the limiter.
	BookingRateLimit float64
	BookingBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (booking widget, health checks)
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		if cfg.CatalogHandler != nil {
			public.Get("/services", cfg.CatalogHandler.ListServices)
			public.Get("/service-groups", cfg.CatalogHandler.ListGroups)
		}
		if cfg.StaffHandler != nil {
			public.Get("/workers", cfg.StaffHandler.ListWorkers)
			public.Get("/workers/{workerID}", cfg.StaffHandler.GetWorker)
		}
		if cfg.HoursHandler != nil {
			public.Get("/business-hours", cfg.HoursHandler.ListBusinessHours)
		}
		if cfg.AvailabilityHandler != nil {
			public.Route("/availability", func(r chi.Router) {
				r.Get("/", cfg.AvailabilityHandler.DaySlots)
				r.Get("/window", cfg.AvailabilityHandler.WindowSlots)
				r.Get("/next", cfg.AvailabilityHandler.NextAvailable)
			})
		}
		if cfg.AppointmentsHandler != nil {
			create := http.HandlerFunc(cfg.AppointmentsHandler.Create)
			if cfg.BookingRateLimit > 0 {
				public.With(httpmiddleware.RateLimit(cfg.BookingRateLimit, cfg.BookingBurst)).
					Post("/appointments", create)
			} else {
				public.Post("/appointments", create)
			}
			public.Post("/appointments/cancel", cfg.AppointmentsHandler.CancelByToken)
		}
	})

	// Admin routes (protected by HMAC JWT)
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

			if cfg.CatalogHandler != nil {
				admin.Get("/services", cfg.CatalogHandler.ListAllServices)
				admin.Post("/services", cfg.CatalogHandler.CreateService)
				admin.Put("/services/{serviceID}", cfg.CatalogHandler.UpdateService)
				admin.Post("/service-groups", cfg.CatalogHandler.CreateGroup)
			}
			if cfg.StaffHandler != nil {
				admin.Post("/workers", cfg.StaffHandler.CreateWorker)
				admin.Put("/workers/{workerID}/hours", cfg.StaffHandler.SetWorkingHours)
				admin.Put("/workers/{workerID}/services", cfg.StaffHandler.SetServices)
			}
			if cfg.HoursHandler != nil {
				admin.Put("/business-hours", cfg.HoursHandler.UpsertBusinessHours)
				admin.Get("/schedule-overrides", cfg.HoursHandler.ListOverrides)
				admin.Post("/schedule-overrides", cfg.HoursHandler.CreateOverride)
				admin.Delete("/schedule-overrides/{overrideID}", cfg.HoursHandler.DeleteOverride)
			}
			if cfg.AppointmentsHandler != nil {
				admin.Get("/appointments", cfg.AppointmentsHandler.List)
				admin.Put("/appointments/{appointmentID}", cfg.AppointmentsHandler.Reschedule)
				admin.Post("/appointments/{appointmentID}/cancel", cfg.AppointmentsHandler.Cancel)
				admin.Post("/appointments/{appointmentID}/complete", cfg.AppointmentsHandler.Complete)
			}
			if cfg.ReportsHandler != nil {
				admin.Get("/reports/summary", cfg.ReportsHandler.GetSummary)
				admin.Get("/reports/utilization", cfg.ReportsHandler.GetWorkerDays)
			}
		})
	}

	return r
}
