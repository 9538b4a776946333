package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/WeAreCode045/wphub-pro-sub001/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server
	APIPort int

	// Platform mailboxes. The global admin inbox/outbox are provisioned
	// exactly once and injected here; they are never looked up per request.
	PlatformInboxID  string
	PlatformOutboxID string

	// Notifications
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	SMTPFromName  string

	// Logging
	LogLevel string

	// Security
	APIKey         string
	AllowedOrigins string
	AppEnv         string

	// Rate Limiting
	RateLimitRequests float64
	RateLimitBurst    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Required: DATABASE_URL
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	// Required: PLATFORM_INBOX_ID / PLATFORM_OUTBOX_ID. Absence is a
	// startup-time configuration error, not a per-request one.
	cfg.PlatformInboxID = os.Getenv("PLATFORM_INBOX_ID")
	if cfg.PlatformInboxID == "" {
		return nil, fmt.Errorf("PLATFORM_INBOX_ID is required: %w", apperrors.ErrConfiguration)
	}
	cfg.PlatformOutboxID = os.Getenv("PLATFORM_OUTBOX_ID")
	if cfg.PlatformOutboxID == "" {
		return nil, fmt.Errorf("PLATFORM_OUTBOX_ID is required: %w", apperrors.ErrConfiguration)
	}

	// API_PORT (default: 8080)
	apiPort := os.Getenv("API_PORT")
	if apiPort == "" {
		cfg.APIPort = 8080
	} else {
		port, err := strconv.Atoi(apiPort)
		if err != nil {
			return nil, fmt.Errorf("API_PORT must be a valid integer: %w", err)
		}
		cfg.APIPort = port
	}

	// SMTP notification settings (optional; notifier is disabled when unset)
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if p := os.Getenv("SMTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT must be a valid integer: %w", err)
		}
		cfg.SMTPPort = port
	} else {
		cfg.SMTPPort = 587
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	cfg.SMTPFromName = os.Getenv("SMTP_FROM_NAME")
	if cfg.SMTPFromName == "" {
		cfg.SMTPFromName = "WP Hub"
	}

	// LOG_LEVEL (default: info)
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// Security configuration
	cfg.APIKey = os.Getenv("API_KEY")
	cfg.AllowedOrigins = os.Getenv("ALLOWED_ORIGINS")
	cfg.AppEnv = os.Getenv("APP_ENV")
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	// Rate limiting configuration
	if rps := os.Getenv("RATE_LIMIT_REQUESTS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			cfg.RateLimitRequests = v
		}
	} else {
		cfg.RateLimitRequests = 10.0
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if v, err := strconv.Atoi(burst); err == nil {
			cfg.RateLimitBurst = v
		}
	} else {
		cfg.RateLimitBurst = 20
	}

	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Production-specific validation
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProduction(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DatabaseURL cannot be empty")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("APIPort must be between 1 and 65535")
	}
	if c.PlatformInboxID == "" || c.PlatformOutboxID == "" {
		return fmt.Errorf("platform mailbox ids cannot be empty: %w", apperrors.ErrConfiguration)
	}
	if c.PlatformInboxID == c.PlatformOutboxID {
		return fmt.Errorf("PLATFORM_INBOX_ID and PLATFORM_OUTBOX_ID must differ: %w", apperrors.ErrConfiguration)
	}
	return nil
}

// ValidateProduction performs additional validation for production environment
func (c *Config) ValidateProduction() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required in production")
	}

	if c.AllowedOrigins == "" {
		return fmt.Errorf("ALLOWED_ORIGINS is required in production")
	}

	// Check for wildcard in production
	if strings.Contains(c.AllowedOrigins, "*") {
		return fmt.Errorf("wildcard (*) origins are not allowed in production")
	}

	// Check for sslmode=disable in database URL
	if strings.Contains(c.DatabaseURL, "sslmode=disable") {
		return fmt.Errorf("sslmode=disable is not allowed in production")
	}

	return nil
}

// NotificationsEnabled reports whether outbound email notifications are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFromEmail != ""
}

// LogConfig logs configuration values (excluding secrets)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.Int("api_port", c.APIPort),
		slog.String("platform_inbox_id", c.PlatformInboxID),
		slog.String("platform_outbox_id", c.PlatformOutboxID),
		slog.String("log_level", c.LogLevel),
		slog.String("app_env", c.AppEnv),
		slog.Bool("api_key_set", c.APIKey != ""),
		slog.Bool("allowed_origins_set", c.AllowedOrigins != ""),
		slog.Bool("notifications_enabled", c.NotificationsEnabled()),
		slog.Float64("rate_limit_rps", c.RateLimitRequests),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
	)
}
