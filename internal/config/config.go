package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	DatabaseURL   string

	// Scheduling
	BusinessTimezone    string
	SlotIntervalMinutes int
	SameDayLeadMinutes  int
	BookingWindowDays   int
	FallbackDuration    int

	// Availability cache
	RedisAddr        string
	RedisPassword    string
	RedisTLS         bool
	SlotCacheTTL     time.Duration
	SlotCacheEnabled bool

	// Email
	EmailProvider     string // "sendgrid", "ses" or "stub"
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	SESFromName       string
	AWSRegion         string
	SalonName         string
	SalonEmail        string

	// Reminder worker
	ReminderEnabled  bool
	ReminderInterval time.Duration

	// HTTP
	AdminJWTSecret     string
	CORSAllowedOrigins []string
	BookingRatePerSec  float64
	BookingRateBurst   int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		BusinessTimezone:    getEnv("BUSINESS_TIMEZONE", "Europe/Oslo"),
		SlotIntervalMinutes: getEnvAsInt("SLOT_INTERVAL_MINUTES", 15),
		SameDayLeadMinutes:  getEnvAsInt("SAME_DAY_LEAD_MINUTES", 30),
		BookingWindowDays:   getEnvAsInt("BOOKING_WINDOW_DAYS", 9),
		FallbackDuration:    getEnvAsInt("FALLBACK_DURATION_MINUTES", 30),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisTLS:         getEnvAsBool("REDIS_TLS", false),
		SlotCacheTTL:     getEnvAsDuration("SLOT_CACHE_TTL", time.Minute),
		SlotCacheEnabled: getEnvAsBool("SLOT_CACHE_ENABLED", true),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "stub"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Bella Salong"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Bella Salong"),
		AWSRegion:         getEnv("AWS_REGION", "eu-north-1"),
		SalonName:         getEnv("SALON_NAME", "Bella Salong"),
		SalonEmail:        getEnv("SALON_EMAIL", ""),

		ReminderEnabled:  getEnvAsBool("REMINDER_ENABLED", true),
		ReminderInterval: getEnvAsDuration("REMINDER_INTERVAL", time.Hour),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
		BookingRatePerSec:  getEnvAsFloat("BOOKING_RATE_PER_SEC", 5),
		BookingRateBurst:   getEnvAsInt("BOOKING_RATE_BURST", 10),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
