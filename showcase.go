// Package showcase is a studio marketing site with an admin content backend,
// built with Go, Echo, and templ.
//
// Public pages (home, pricing, case studies, blog, about, contact) read from
// a SQLite content store through a cache. The admin surface behind a route
// guard edits case studies and blog posts and reads contact submissions.
// Users provide their own templ templates via the ViewFuncs struct; the
// views package ships a default set.
package showcase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/cache"
	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/storage"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(HomePage) templ.Component
	Pricing     func(PricingPage) templ.Component
	About       func(AboutPage) templ.Component
	CaseStudies func(CaseStudyListPage) templ.Component
	CaseStudy   func(CaseStudyPage) templ.Component
	Blog        func(BlogListPage) templ.Component
	BlogPost    func(BlogPostPage) templ.Component
	Contact     func(ContactPage) templ.Component

	AdminLogin         func(AdminLoginPage) templ.Component
	AdminDashboard     func(AdminDashboardPage) templ.Component
	AdminCaseStudyForm func(CaseStudyFormPage) templ.Component
	AdminBlogPostForm  func(BlogPostFormPage) templ.Component
	AdminContacts      func(ContactsPage) templ.Component
	AdminImages        func(ImagesPage) templ.Component

	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central showcase application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Log    *zap.Logger
	DB     *sql.DB
	Store  *content.Store
	Users  *auth.Users
	Cache  cache.Cache
	Public *PublicContent
	Views  ViewFuncs
	Plans  []PricingPlan

	// Analytics is nil when SiteConfig.DisableAnalytics is set.
	Analytics *analytics.Store

	mailer         auth.Mailer
	loginLimiter   *RateLimiter
	contactLimiter *RateLimiter
	customRoutes   []func(*App)
	staticDir      string
	closers        []func() error
	ready          bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Log:       zap.NewNop(),
		Views:     views,
		Plans:     DefaultPlans,
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the database, prepares the stores and cache, and registers
// middleware and routes. Start calls it when needed; tests call it
// directly and drive a.Echo.
func (a *App) Init(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	db, err := storage.Open(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("showcase: open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	if a.Store, err = content.NewStore(db); err != nil {
		return fmt.Errorf("showcase: init content store: %w", err)
	}

	mailer := a.mailer
	if mailer == nil {
		mailer = auth.LogMailer{Log: a.Log}
	}
	a.Users, err = auth.NewUsers(db, auth.UsersConfig{
		AllowSignUp: a.Config.AllowSignUp,
		VerifyURL:   BuildURL(a.Config.URL, "admin", "verify"),
		Tokens:      auth.NewTokens([]byte(a.Config.TokenSecret), a.Config.URL, 48*time.Hour),
		Mailer:      mailer,
		BcryptCost:  a.Config.BcryptCost,
		Logger:      a.Log.Named("auth"),
	})
	if err != nil {
		return fmt.Errorf("showcase: init users: %w", err)
	}
	if err := a.bootstrapAdmin(ctx); err != nil {
		return err
	}

	if err := a.initAnalytics(ctx); err != nil {
		return err
	}

	if err := a.initCache(ctx); err != nil {
		return err
	}
	a.Public = NewPublicContent(a.Store, a.Cache, a.Config.CacheTTL, a.Log.Named("cache"))

	a.loginLimiter = NewRateLimiter(a.Config.LoginAttempts, a.Config.LoginWindow)
	a.contactLimiter = NewRateLimiter(a.Config.ContactMessages, a.Config.ContactWindow)
	a.closers = append(a.closers,
		func() error { a.loginLimiter.Stop(); return nil },
		func() error { a.contactLimiter.Stop(); return nil },
	)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

func (a *App) initAnalytics(ctx context.Context) error {
	if a.Config.DisableAnalytics {
		return nil
	}
	store, err := analytics.NewStore(ctx, a.DB, a.Log.Named("analytics"))
	if err != nil {
		return fmt.Errorf("showcase: init analytics: %w", err)
	}
	a.Analytics = store
	pruneCtx, cancel := context.WithCancel(context.Background())
	go store.KeepFor(pruneCtx, a.Config.AnalyticsRetention, time.Hour)
	a.closers = append(a.closers, func() error { cancel(); return nil })
	return nil
}

func (a *App) initCache(ctx context.Context) error {
	if a.Cache != nil {
		return nil
	}
	if a.Config.RedisAddr == "" {
		a.Cache = cache.NewMemory()
		return nil
	}
	r := cache.NewRedis(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB, "showcase:")
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx); err != nil {
		r.Close()
		return fmt.Errorf("showcase: redis %s: %w", a.Config.RedisAddr, err)
	}
	a.Cache = r
	a.closers = append(a.closers, r.Close)
	a.Log.Info("using redis cache", zap.String("addr", a.Config.RedisAddr))
	return nil
}

// bootstrapAdmin creates the configured admin account if it does not exist.
func (a *App) bootstrapAdmin(ctx context.Context) error {
	if a.Config.AdminEmail == "" {
		return nil
	}
	exists, err := a.Users.Exists(ctx, a.Config.AdminEmail)
	if err != nil {
		return fmt.Errorf("showcase: check admin account: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := a.Users.Add(ctx, a.Config.AdminEmail, a.Config.AdminPassword, true); err != nil {
		return fmt.Errorf("showcase: create admin account: %w", err)
	}
	a.Log.Info("created admin account", zap.String("email", a.Config.AdminEmail))
	return nil
}

// Start initializes the app if needed and serves until the server is shut
// down.
func (a *App) Start() error {
	if err := a.Init(context.Background()); err != nil {
		return err
	}
	a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
