package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/magmaminds/admissions/docs/swagger"
	"github.com/magmaminds/admissions/pkg/app"
	"github.com/magmaminds/admissions/pkg/cache"
	"github.com/magmaminds/admissions/pkg/config"
	"github.com/magmaminds/admissions/pkg/database"
	"github.com/magmaminds/admissions/pkg/events"
	"github.com/magmaminds/admissions/pkg/httpx"
	"github.com/magmaminds/admissions/pkg/logger"
	"github.com/magmaminds/admissions/pkg/telemetry"
	admissionsApi "github.com/magmaminds/admissions/services/admissions/application/api"
	catalogApi "github.com/magmaminds/admissions/services/catalog/application/api"
)

const (
	shutdownTimeout = 30 * time.Second
	drainTimeout    = 15 * time.Second
)

// @title			Admissions API
// @version		1.0
// @description	Course catalog and application intake for the admissions site.
// @contact.name	Admissions Support
// @contact.email	support@magmaminds.com
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:3001
// @BasePath		/api
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected", "max_conns", cfg.DBMaxConns)

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// The tally is a convenience read model; the API serves without it.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("redis unavailable, application stats disabled", "error", err)
		redisClient = nil
	} else {
		log.Info("redis connected")
	}
	defer redisClient.Close() //nolint:errcheck

	mailer, messenger := app.NewNotifiers(cfg)
	if !mailer.Configured() {
		log.Warn("smtp credentials missing, staff emails will fail")
	}

	appConfig := &app.Application{
		Config:    cfg,
		Db:        pool,
		Logger:    log,
		EventBus:  eventBus,
		Redis:     redisClient,
		Mailer:    mailer,
		Messenger: messenger,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	checks := httpx.HealthChecks{
		"database":  pool,
		"event_bus": eventBus,
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var drainers []drainer
	r.Route("/api", func(r chi.Router) {
		drainers = registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.Addr(), r)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}

	drain(drainers, drainTimeout, log)
	log.Info("server stopped")
}

// drainer is a service with background work that must finish before exit.
type drainer interface {
	Close()
}

// registerRoutes mounts all service routes under /api.
func registerRoutes(r chi.Router, a *app.Application) []drainer {
	catalogApi.CatalogRoutes(r, a)
	admissions := admissionsApi.AdmissionsRoutes(r, a)
	return []drainer{admissions.Intake}
}

// drain waits for detached notification sends, giving up after timeout.
func drain(ds []drainer, timeout time.Duration, log logger.Logger) {
	done := make(chan struct{})
	go func() {
		for _, d := range ds {
			d.Close()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn("timed out waiting for in-flight notifications")
	}
}
