package showcase

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/cache"
)

// SiteConfig holds all configuration for a showcase site.
type SiteConfig struct {
	Name        string // Site name (default "Studio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Organization name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")

	SessionSecret string // Required: session cookie secret
	TokenSecret   string // Verification token secret (defaults to SessionSecret)
	CookieSecure  bool   // Set true for HTTPS
	SessionMaxAge time.Duration

	AllowSignUp   bool   // Allow new admin accounts via /admin/signup/
	AdminEmail    string // Bootstrap admin account, created if missing
	AdminPassword string
	BcryptCost    int // 0 means bcrypt.DefaultCost

	RedisAddr     string // Empty means an in-process cache
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration // Public content cache TTL (default 5min)

	LoginAttempts   int // Per IP and LoginWindow (default 5)
	LoginWindow     time.Duration
	ContactMessages int // Per IP and ContactWindow (default 3)
	ContactWindow   time.Duration

	DisableAnalytics   bool
	AnalyticsRetention time.Duration // default 180 days
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Studio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.TokenSecret == "" {
		c.TokenSecret = c.SessionSecret
	}
	if c.SessionMaxAge == 0 {
		c.SessionMaxAge = 12 * time.Hour
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.LoginAttempts == 0 {
		c.LoginAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
	if c.ContactMessages == 0 {
		c.ContactMessages = 3
	}
	if c.ContactWindow == 0 {
		c.ContactWindow = 10 * time.Minute
	}
	if c.AnalyticsRetention == 0 {
		c.AnalyticsRetention = 180 * 24 * time.Hour
	}
}

func (c SiteConfig) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("showcase: SessionSecret is required")
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("showcase: SessionSecret must be at least 16 bytes")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("showcase: AdminEmail and AdminPassword must be set together")
	}
	return nil
}

// ConfigFromEnv reads a SiteConfig from the environment. Unset variables
// keep their defaults; malformed ones are an error.
func ConfigFromEnv() (SiteConfig, error) {
	cfg := SiteConfig{
		Name:          os.Getenv("SITE_NAME"),
		URL:           os.Getenv("SITE_URL"),
		Description:   os.Getenv("SITE_DESCRIPTION"),
		Author:        os.Getenv("SITE_AUTHOR"),
		Addr:          os.Getenv("ADDR"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		TokenSecret:   os.Getenv("TOKEN_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
	var err error
	if cfg.CookieSecure, err = envBool("COOKIE_SECURE"); err != nil {
		return cfg, err
	}
	if cfg.AllowSignUp, err = envBool("ALLOW_SIGNUP"); err != nil {
		return cfg, err
	}
	if cfg.DisableAnalytics, err = envBool("DISABLE_ANALYTICS"); err != nil {
		return cfg, err
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("showcase: REDIS_DB: %w", err)
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if cfg.CacheTTL, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("showcase: CACHE_TTL: %w", err)
		}
	}
	cfg.setDefaults()
	return cfg, nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("showcase: %s: %w", key, err)
	}
	return b, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// WithCache replaces the cache chosen from the configuration.
func WithCache(c cache.Cache) Option {
	return func(a *App) {
		a.Cache = c
	}
}

// WithMailer sets how verification links are delivered. The default logs
// them.
func WithMailer(m auth.Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}
