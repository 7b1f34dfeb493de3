// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/scheduler"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/sheets"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Content source. Either a spreadsheet or a CSV directory must be set.
	SpreadsheetID   string `env:"SF360_SPREADSHEET_ID"`
	CredentialsFile string `env:"SF360_CREDENTIALS_FILE" envDefault:"./credentials.json"`
	CSVDir          string `env:"SF360_CSV_DIR"`
	ArticlesRange   string `env:"SF360_ARTICLES_RANGE" envDefault:"Sheet1!A1:Z1000"`
	ThoughtsRange   string `env:"SF360_THOUGHTS_RANGE" envDefault:"Sheet3!A1:C1000"`

	// Output and templates
	OutputDir    string `env:"SF360_OUTPUT_DIR" envDefault:"./public"`
	TemplatesDir string `env:"SF360_TEMPLATES_DIR"` // Optional override of the embedded templates
	SiteFile     string `env:"SF360_SITE_FILE" envDefault:"./site.yaml"`
	SiteURL      string `env:"SF360_SITE_URL" envDefault:"https://smartfinance360.com"`
	SiteName     string `env:"SF360_SITE_NAME" envDefault:"Smart Finance 360"`

	ServerHost string `env:"SF360_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SF360_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SF360_ENV" envDefault:"development"`
	LogLevel   string `env:"SF360_LOG_LEVEL" envDefault:"info"`
	DBPath     string `env:"SF360_DB_PATH" envDefault:"./data/sf360.db"`

	// Cache configuration
	RedisURL     string `env:"SF360_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SF360_CACHE_PREFIX" envDefault:"sf360:"`  // Redis key prefix
	CacheTTL     int    `env:"SF360_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"SF360_CACHE_MAX_SIZE" envDefault:"1000"`  // Max memory cache entries

	// Frontend client
	APIBaseURL    string        `env:"SF360_API_BASE_URL"` // Defaults to this server when empty
	ClientTimeout time.Duration `env:"SF360_CLIENT_TIMEOUT" envDefault:"10s"`
	PageSize      int           `env:"SF360_PAGE_SIZE" envDefault:"6"`

	// Scheduling
	RefreshCron        string `env:"SF360_REFRESH_CRON" envDefault:"*/15 * * * *"`
	EventRetentionDays int    `env:"SF360_EVENT_RETENTION_DAYS" envDefault:"30"`

	// trackView rate limiting, per client IP
	TrackViewRPS   float64 `env:"SF360_TRACKVIEW_RPS" envDefault:"1"`
	TrackViewBurst int     `env:"SF360_TRACKVIEW_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseCSVSource reports whether content is read from a local CSV directory
// instead of the spreadsheet API.
func (c Config) UseCSVSource() bool {
	return c.CSVDir != ""
}

// ContentAPIURL returns the content endpoint the frontend talks to.
func (c Config) ContentAPIURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimSuffix(c.APIBaseURL, "/") + "/api/content"
	}
	return "http://" + c.ServerAddr() + "/api/content"
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel onto a slog level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	u, err := url.Parse(c.SiteURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("SF360_SITE_URL must be an absolute http(s) URL, got %q", c.SiteURL))
	}
	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")

	if c.SpreadsheetID == "" && c.CSVDir == "" {
		errs = append(errs, errors.New("either SF360_SPREADSHEET_ID or SF360_CSV_DIR must be set"))
	}
	if _, err := sheets.ParseRange(c.ArticlesRange); err != nil {
		errs = append(errs, fmt.Errorf("SF360_ARTICLES_RANGE: %w", err))
	}
	if _, err := sheets.ParseRange(c.ThoughtsRange); err != nil {
		errs = append(errs, fmt.Errorf("SF360_THOUGHTS_RANGE: %w", err))
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SF360_SERVER_PORT out of range: %d", c.ServerPort))
	}
	if c.PageSize < 1 || c.PageSize > content.MaxPageSize {
		errs = append(errs, fmt.Errorf("SF360_PAGE_SIZE must be between 1 and %d, got %d", content.MaxPageSize, c.PageSize))
	}
	if c.ClientTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SF360_CLIENT_TIMEOUT must be positive, got %s", c.ClientTimeout))
	}
	if err := scheduler.ValidateSchedule(c.RefreshCron); err != nil {
		errs = append(errs, fmt.Errorf("SF360_REFRESH_CRON: %w", err))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("SF360_OUTPUT_DIR must not be empty"))
	}

	if !c.IsDevelopment() && c.TrackViewRPS <= 0 {
		slog.Warn("view tracking rate limit disabled in production", "rps", c.TrackViewRPS)
	}

	return errors.Join(errs...)
}
