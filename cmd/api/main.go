package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bellasalong/booking-platform/internal/api/router"
	"github.com/bellasalong/booking-platform/internal/appointments"
	"github.com/bellasalong/booking-platform/internal/availability"
	"github.com/bellasalong/booking-platform/internal/catalog"
	"github.com/bellasalong/booking-platform/internal/clock"
	appconfig "github.com/bellasalong/booking-platform/internal/config"
	"github.com/bellasalong/booking-platform/internal/customers"
	"github.com/bellasalong/booking-platform/internal/hours"
	"github.com/bellasalong/booking-platform/internal/notify"
	"github.com/bellasalong/booking-platform/internal/observability/metrics"
	"github.com/bellasalong/booking-platform/internal/reports"
	"github.com/bellasalong/booking-platform/internal/staff"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk, err := clock.NewBusiness(cfg.BusinessTimezone)
	if err != nil {
		logger.Error("invalid business timezone", "error", err, "timezone", cfg.BusinessTimezone)
		os.Exit(1)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		catalogRepo  catalog.Repository
		staffRepo    staff.Repository
		hoursRepo    hours.Repository
		customerRepo customers.Repository
		apptRepo     appointments.Repository
		pool         *pgxpool.Pool
		reportsDB    *sql.DB
	)
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		catalogRepo = catalog.NewPostgresRepository(pool)
		staffRepo = staff.NewPostgresRepository(pool)
		hoursRepo = hours.NewPostgresRepository(pool)
		customerRepo = customers.NewPostgresRepository(pool)
		apptRepo = appointments.NewPostgresRepository(pool)

		reportsDB, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open reporting connection", "error", err)
			os.Exit(1)
		}
		defer reportsDB.Close()
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
		catalogRepo = catalog.NewInMemoryRepository()
		staffRepo = staff.NewInMemoryRepository()
		hoursRepo = hours.NewInMemoryRepository()
		customerRepo = customers.NewInMemoryRepository()
		apptRepo = appointments.NewInMemoryRepository()
	}

	// Availability slot cache (optional).
	var cache *availability.Cache
	if cfg.SlotCacheEnabled && cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, slot cache disabled", "error", err)
		} else {
			cache = availability.NewCache(client, cfg.SlotCacheTTL, bookingMetrics)
			defer client.Close()
		}
	}

	emailSender := buildEmailSender(ctx, cfg, logger)
	notifier := notify.NewService(emailSender, notify.Config{
		SalonName:  cfg.SalonName,
		SalonEmail: cfg.SalonEmail,
		BaseURL:    cfg.PublicBaseURL,
	}, logger)

	apptService := appointments.NewService(appointments.Deps{
		Appointments: apptRepo,
		Customers:    customerRepo,
		Catalog:      catalogRepo,
		Staff:        staffRepo,
		Guard:        appointments.NewGuard(apptRepo, catalogRepo, cfg.FallbackDuration),
		Clock:        clk,
		Notifier:     notifier,
		Cache:        cache,
		Metrics:      bookingMetrics,
		Logger:       logger,
	})

	availService := availability.NewService(
		staffRepo, hoursRepo, catalogRepo,
		appointments.BookingSource{Repo: apptRepo},
		clk, cache, bookingMetrics, logger,
		availability.Config{
			SlotIntervalMinutes: cfg.SlotIntervalMinutes,
			SameDayLeadMinutes:  cfg.SameDayLeadMinutes,
			BookingWindowDays:   cfg.BookingWindowDays,
			FallbackDuration:    cfg.FallbackDuration,
		},
	)

	var reportsHandler *reports.Handler
	if pool != nil {
		reportsHandler = reports.NewHandler(
			reports.NewStatsRepository(pool),
			reports.NewWorkerDayRepository(reportsDB),
			nil, clk, logger,
		)
	}

	routerCfg := &router.Config{
		Logger:              logger,
		CatalogHandler:      catalog.NewHandler(catalogRepo, logger),
		StaffHandler:        staff.NewHandler(staffRepo, logger),
		HoursHandler:        hours.NewHandler(hoursRepo, clk, logger),
		AvailabilityHandler: availability.NewHandler(availService, logger),
		AppointmentsHandler: appointments.NewHandler(apptService, logger),
		ReportsHandler:      reportsHandler,
		MetricsHandler:      promhttp.Handler(),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		BookingRateLimit:    cfg.BookingRatePerSec,
		BookingBurst:        cfg.BookingRateBurst,
	}

	if cfg.ReminderEnabled {
		reminder := notify.NewReminderWorker(
			apptRepo, customerRepo, catalogRepo, staffRepo,
			notifier, clk, cfg.ReminderInterval, logger,
		)
		go reminder.Run(ctx)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the configured email backend. Falls back to the
// stub sender when the provider is unconfigured or misconfigured.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			return sender
		}
		logger.Warn("sendgrid API key missing, using stub email sender")
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Warn("failed to load AWS config, using stub email sender", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if sender != nil {
			return sender
		}
	}
	return notify.NewStubEmailSender(logger)
}
