package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	Session      SessionConfig
	App          AppConfig
	Company      CompanyConfig
	Leave        LeaveConfig
	Reminder     ReminderConfig
	OAuth2Google OAuth2GoogleConfig
}

// DatabaseConfig holds the SQLite file settings
type DatabaseConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret       string
	Expiration   time.Duration
	CookieName   string
	CookieSecure bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	Version        string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

type CompanyConfig struct {
	Name string
}

// LeaveConfig holds the leave request policy
type LeaveConfig struct {
	EnforceOverlap bool
	EnforceNotice  bool
	PaidNoticeDays int
	SickNoticeDays int
	MaxRequestDays int
}

// ReminderConfig controls the daily check-in reminder job
type ReminderConfig struct {
	Enabled  bool
	Hour     int
	Interval time.Duration
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Enabled reports whether Google sign-in is configured.
func (c OAuth2GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	config.Database = DatabaseConfig{
		Path:        getEnv("DATABASE_PATH", "data/dayflow.db"),
		BusyTimeout: getEnvDuration("DATABASE_BUSY_TIMEOUT", 5*time.Second),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		Version:        getEnv("APP_VERSION", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Session configuration
	config.Session = SessionConfig{
		Secret:       getEnv("JWT_SECRET_KEY", ""),
		Expiration:   getEnvDuration("SESSION_EXPIRATION_TIME", 24*time.Hour),
		CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
		CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
	}

	config.Company = CompanyConfig{
		Name: getEnv("COMPANY_NAME", "Dayflow"),
	}

	config.Leave = LeaveConfig{
		EnforceOverlap: getEnvBool("LEAVE_ENFORCE_OVERLAP", true),
		EnforceNotice:  getEnvBool("LEAVE_ENFORCE_NOTICE", false),
		PaidNoticeDays: getEnvInt("LEAVE_PAID_NOTICE_DAYS", 2),
		SickNoticeDays: getEnvInt("LEAVE_SICK_NOTICE_DAYS", 1),
		MaxRequestDays: getEnvInt("LEAVE_MAX_DAYS", 366),
	}

	config.Reminder = ReminderConfig{
		Enabled:  getEnvBool("ATTENDANCE_REMINDER_ENABLED", true),
		Hour:     getEnvInt("ATTENDANCE_REMINDER_HOUR", 10),
		Interval: getEnvDuration("ATTENDANCE_REMINDER_INTERVAL", 15*time.Minute),
	}

	// OAuth2 Google Configuration, optional
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		Scopes: getEnvSlice("GOOGLE_SCOPES", []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		}),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		return fmt.Errorf("ATTENDANCE_REMINDER_HOUR must be between 0 and 23")
	}
	if c.Reminder.Enabled && c.Reminder.Interval <= 0 {
		return fmt.Errorf("ATTENDANCE_REMINDER_INTERVAL must be positive")
	}
	if c.Leave.MaxRequestDays < 1 {
		return fmt.Errorf("LEAVE_MAX_DAYS must be positive")
	}
	return nil
}

// Location returns the time zone that defines "today" for attendance.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
