// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/build"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/cache"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/client"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/config"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/frontend"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/handler"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/handler/api"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/logging"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/metrics"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/middleware"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/scheduler"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/service"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/sheets"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/store"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/version"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/watch"
	"github.com/ramendramauryahfh-web/smart-finance360/web"
)

// Build-time variables injected via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const (
	commandBuild = "build"
	commandServe = "serve"

	shutdownTimeout = 30 * time.Second
	pruneSchedule   = "@daily"
)

// app bundles the components shared by the build and serve commands.
type app struct {
	cfg      *config.Config
	site     *config.Site
	version  version.Info
	logger   *slog.Logger
	db       *sql.DB
	events   *service.EventService
	metrics  *metrics.Metrics
	loader   *content.Loader
	renderer *render.Renderer
	builder  *build.Builder
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	watchTemplates := flag.Bool("watch", false, "Rebuild when files in SF360_TEMPLATES_DIR change (serve only)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Smart Finance 360 - content pipeline\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options] [build|serve]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Commands:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  build   Fetch the sheets once and write the static site\n")
		_, _ = fmt.Fprintf(os.Stderr, "  serve   Serve the content API and frontend, refreshing on a schedule (default)\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_SPREADSHEET_ID     Google spreadsheet ID\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_CREDENTIALS_FILE   Service account key file (default: ./credentials.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_CSV_DIR            Read sheets from CSV files instead of the API\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_OUTPUT_DIR         Output directory (default: ./public)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_SITE_URL           Public site URL (default: https://smartfinance360.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SF360_REDIS_URL          Redis URL for the API cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	command := commandServe
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	var err error
	switch command {
	case commandBuild:
		err = runBuild(info)
	case commandServe:
		err = runServe(info, *watchTemplates)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration and wires the storage, logging and build pipeline.
func setup(ctx context.Context, info version.Info) (*app, error) {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	site, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		return nil, fmt.Errorf("loading site file: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(textHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// WARN and ERROR records also go to the event log.
	logger := slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	source, err := newSource(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	renderer, err := render.New(render.Config{TemplatesFS: web.Templates, OverrideDir: cfg.TemplatesDir})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	a := &app{
		cfg:      cfg,
		site:     site,
		version:  info,
		logger:   logger,
		db:       db,
		events:   service.NewEventService(db),
		metrics:  metrics.New(),
		renderer: renderer,
		loader: &content.Loader{
			Source:        source,
			ArticlesRange: cfg.ArticlesRange,
			ThoughtsRange: cfg.ThoughtsRange,
			Normalizer:    content.Normalizer{SiteURL: cfg.SiteURL},
		},
	}

	a.builder = build.New(a.loader, renderer, build.Options{
		OutputDir:    cfg.OutputDir,
		Site:         a.renderSite(),
		SEO:          site.SEO(cfg),
		StaticPages:  site.StaticPages,
		Robots:       site.RobotsConfig(cfg),
		Motivational: site.Motivational,
	}, logger).
		WithEvents(a.events).
		WithMetrics(a.metrics).
		WithViews(store.New(db))

	return a, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	}
}

func (a *app) renderSite() render.Site {
	return render.Site{
		Name:      a.cfg.SiteName,
		URL:       a.cfg.SiteURL,
		LogoURL:   a.site.Logo,
		Favicon:   a.site.Favicon,
		AdsClient: a.site.Ads.Client,
		AdsSlot:   a.site.Ads.Slot,
	}
}

func newSource(ctx context.Context, cfg *config.Config) (sheets.Source, error) {
	if cfg.UseCSVSource() {
		slog.Info("reading content from CSV files", "dir", cfg.CSVDir)
		return sheets.NewCSVSource(cfg.CSVDir), nil
	}
	src, err := sheets.NewGoogleSource(ctx, sheets.GoogleOptions{
		SpreadsheetID:   cfg.SpreadsheetID,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to google sheets: %w", err)
	}
	return src, nil
}

func runBuild(info version.Info) error {
	ctx := context.Background()
	a, err := setup(ctx, info)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.builder.Run(ctx)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	_, _ = fmt.Printf("Wrote %d files (%d articles, %d thoughts) to %s in %s\n",
		len(res.Files), res.Articles, res.Thoughts, a.cfg.OutputDir, res.Duration.Round(time.Millisecond))
	return nil
}

func runServe(info version.Info, watchTemplates bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, info)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	cacheBackend := cache.TypeMemory
	if cfg.UseRedisCache() {
		cacheBackend = cache.TypeRedis
	}
	apiCache, err := cache.New(cache.Config{
		Type:            cacheBackend,
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		slog.Warn("cache unavailable, falling back to memory", "error", err)
		apiCache = cache.NewMemoryCache(cache.MemoryCacheOptions{
			DefaultTTL:      cfg.CacheTTLDuration(),
			MaxSize:         cfg.CacheMaxSize,
			CleanupInterval: time.Minute,
		})
	}
	defer func() { _ = apiCache.Close() }()
	slog.Info("cache initialized", "backend", cacheBackend)

	catalog := content.NewCatalog()

	var limiter *middleware.IPRateLimiter
	if cfg.TrackViewRPS > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.TrackViewRPS, cfg.TrackViewBurst)
	}
	apiHandler := api.NewHandler(catalog, a.db, api.Options{
		Cache:    apiCache,
		CacheTTL: cfg.CacheTTLDuration(),
		Limiter:  limiter,
		Metrics:  a.metrics,
		Logger:   a.logger,
	})

	refresher := &scheduler.Refresher{
		Loader:  a.loader,
		Catalog: catalog,
		Cache:   apiHandler,
		Builder: a.builder,
		Events:  a.events,
		Metrics: a.metrics,
		Logger:  a.logger,
	}
	// A failed first load is retried by the schedule; the API answers
	// from an empty catalog until then.
	if err := refresher.RefreshAndBuild(ctx); err != nil {
		slog.Error("initial content load failed", "error", err)
	}

	sched := scheduler.New(a.logger)
	if err := sched.Add(scheduler.JobRefresh, cfg.RefreshCron, refresher.RefreshAndBuild); err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}
	retention := time.Duration(cfg.EventRetentionDays) * 24 * time.Hour
	if err := sched.Add(scheduler.JobPruneEvent, pruneSchedule, scheduler.PruneEvents(a.events, retention, a.logger)); err != nil {
		return fmt.Errorf("scheduling event retention: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if watchTemplates {
		w, err := startWatcher(a)
		if err != nil {
			return err
		}
		if w != nil {
			defer func() { _ = w.Close() }()
		}
	}

	front := frontend.New(client.New(cfg.ContentAPIURL(), cfg.ClientTimeout, a.logger), a.renderer, frontend.Options{
		Site:      a.renderSite(),
		SEO:       a.site.SEO(cfg),
		PageSize:  cfg.PageSize,
		StaticDir: cfg.OutputDir,
		Logger:    a.logger,
	})
	health := handler.NewHealthHandler(a.db, catalog, cfg.OutputDir, a.version)

	securityCfg := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	securityCfg.ExcludePaths = []string{"/api/", "/metrics"}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(securityCfg))

	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", a.metrics.Handler())
	apiHandler.Routes(r)
	front.Routes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", a.version.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	front.Detail().Wait()

	slog.Info("server stopped")
	return nil
}

// startWatcher reloads templates and rebuilds the site on template edits.
// It returns nil when no override directory is configured.
func startWatcher(a *app) (*watch.Watcher, error) {
	if a.cfg.TemplatesDir == "" {
		slog.Warn("-watch ignored: SF360_TEMPLATES_DIR is not set")
		return nil, nil
	}

	w, err := watch.New(a.cfg.TemplatesDir, watch.DefaultDebounceConfig(), func(ctx context.Context, paths []string) {
		slog.Info("templates changed, rebuilding", "files", len(paths))
		if err := a.renderer.Reload(); err != nil {
			slog.Error("template reload failed", "error", err)
			return
		}
		if _, err := a.builder.Run(ctx); err != nil {
			slog.Error("rebuild failed", "error", err)
		}
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("watching templates: %w", err)
	}
	slog.Info("watching templates", "dir", a.cfg.TemplatesDir)
	return w, nil
}
